package theme

import (
	"sort"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// Resolver looks templates up in the compiled theme table
type Resolver struct{}

// NewResolver creates a new theme resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the theme for a template name. Matching ignores case and
// surrounding whitespace; an empty name resolves to the default template.
func (r *Resolver) Resolve(name string) (entities.Theme, error) {
	if name == "" {
		name = entities.DefaultThemeName
	}

	id, ok := entities.ParseThemeID(name)
	if !ok {
		return entities.Theme{}, entities.UnknownTemplateError(name)
	}

	return builtinThemes[id], nil
}

// List returns every built-in theme sorted by id
func (r *Resolver) List() []entities.Theme {
	themes := make([]entities.Theme, 0, len(builtinThemes))
	for _, t := range builtinThemes {
		themes = append(themes, t)
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i].ID < themes[j].ID })
	return themes
}

// Ensure Resolver implements ports.ThemeResolver
var _ ports.ThemeResolver = (*Resolver)(nil)
