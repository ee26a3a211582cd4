package ports

import (
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// ThemeResolver resolves template names to themes
type ThemeResolver interface {
	// Resolve looks a theme up by name, case-insensitively.
	// Unknown names yield an ErrorUnknownTemplate.
	Resolve(name string) (entities.Theme, error)

	// List returns all themes sorted by id
	List() []entities.Theme
}
