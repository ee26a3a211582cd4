package entities

import (
	"path"
	"strings"
)

// SourceDocument is one markdown input identified by its display name
type SourceDocument struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Stem returns the display name without directories and extension
func (d SourceDocument) Stem() string {
	base := path.Base(strings.ReplaceAll(d.Name, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Artifact is one named output blob
type Artifact struct {
	Name string `json:"name"`
	Data []byte `json:"-"`
}

// ArtifactName derives the output name for a document in separate mode.
// The extension is replaced by .pptx and relative directories are kept.
func ArtifactName(displayName string) string {
	name := strings.ReplaceAll(displayName, "\\", "/")
	if ext := path.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	if name == "" {
		name = "presentation"
	}
	return name + ".pptx"
}

// EmptyInputPolicy decides what happens when there is nothing to convert
type EmptyInputPolicy int

const (
	// EmptyInputReject rejects empty input with an ErrorEmptyInput
	EmptyInputReject EmptyInputPolicy = iota

	// EmptyInputAllow produces a zero-slide archive in combined mode and no
	// artifacts in separate mode
	EmptyInputAllow
)

// ConversionOptions controls one conversion run
type ConversionOptions struct {
	// Template names the theme, empty means the default template
	Template string `json:"template"`

	// Combine merges all documents into a single deck
	Combine bool `json:"combine"`

	// Recursive descends into sub-directories during discovery
	Recursive bool `json:"recursive"`

	EmptyInput EmptyInputPolicy `json:"empty_input"`

	// Workers bounds the worker pool, 0 means GOMAXPROCS
	Workers int `json:"workers"`

	// FallbackTitles gives untitled slides the title-cased file stem in combined mode
	FallbackTitles bool `json:"fallback_titles"`

	// Output is the destination path: a file in combined mode, a directory otherwise
	Output string `json:"output"`
}

// TemplateName returns the requested template or the default one
func (o ConversionOptions) TemplateName() string {
	if strings.TrimSpace(o.Template) == "" {
		return DefaultThemeName
	}
	return o.Template
}
