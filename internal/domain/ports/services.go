package ports

import (
	"context"
	"iter"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// SlideSegmenter groups a block sequence into slides
type SlideSegmenter interface {
	Segment(blocks iter.Seq[entities.Block], source string) []entities.Slide
}

// ConversionService defines the main service interface for conversions
type ConversionService interface {
	// Convert turns documents into archives. Combined mode yields a single
	// artifact named after opts.Output; separate mode yields one per document.
	Convert(ctx context.Context, docs []entities.SourceDocument, opts entities.ConversionOptions) ([]entities.Artifact, error)

	// BuildDeck extracts and segments a single document
	BuildDeck(ctx context.Context, doc entities.SourceDocument, theme entities.ThemeID) (entities.Deck, error)
}
