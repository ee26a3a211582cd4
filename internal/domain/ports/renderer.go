package ports

import (
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// RenderedSlide is one slide serialized to DrawingML shapes
type RenderedSlide struct {
	// Index is the 0-based deck position
	Index int

	// Layout is the shape pattern the slide uses
	Layout entities.SlideLayout

	// ShapeCount is the number of shapes emitted, title included
	ShapeCount int

	// XML holds the shape elements that go inside p:spTree, after the group properties
	XML []byte

	// Relationships are extra slide relationships (external links) referenced from XML.
	// Their ids never collide with the layout relationship rId1.
	Relationships []entities.Relationship
}

// ElementRenderer defines the interface for rendering slides to DrawingML
type ElementRenderer interface {
	// RenderSlide renders a slide at the given deck index with the theme
	RenderSlide(slide entities.Slide, index int, theme entities.Theme) (RenderedSlide, error)
}
