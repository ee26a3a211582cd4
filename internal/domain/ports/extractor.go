package ports

import (
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// BlockExtractor defines the interface for turning markdown into blocks
type BlockExtractor interface {
	// Extract splits off front matter and returns a lazy, restartable block sequence.
	// Malformed input is repaired, never rejected.
	Extract(content []byte) entities.ExtractedDocument
}
