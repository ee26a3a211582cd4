package renderer

import (
	"fmt"

	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/ooxml"
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// Renderer turns slides into DrawingML shape trees
type Renderer struct {
	logger ports.Logger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLogger sets the renderer logger
func WithLogger(logger ports.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer creates a new slide renderer
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{logger: ports.NewNoOpLogger()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderSlide lays out and serializes one slide. The output depends only on
// the slide, its index and the theme.
func (r *Renderer) RenderSlide(slide entities.Slide, index int, theme entities.Theme) (ports.RenderedSlide, error) {
	if err := slide.Validate(); err != nil {
		ce := entities.PackagingError(fmt.Sprintf("ppt/slides/slide%d.xml", index+1), "invalid slide")
		ce.SlideIndex = index
		ce.Source = slide.Source
		ce.Cause = err
		return ports.RenderedSlide{}, ce
	}

	shapes, links := BuildShapes(slide, theme)

	b := ooxml.NewBuilder(false)
	writeShapes(b, shapes)

	r.logger.Debug("slide rendered",
		"slide", index+1,
		"shapes", len(shapes),
		"layout", slide.Layout().String())

	return ports.RenderedSlide{
		Index:         index,
		Layout:        slide.Layout(),
		ShapeCount:    len(shapes),
		XML:           b.Bytes(),
		Relationships: links,
	}, nil
}

// Ensure Renderer implements ports.ElementRenderer
var _ ports.ElementRenderer = (*Renderer)(nil)
