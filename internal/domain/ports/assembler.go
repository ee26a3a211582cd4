package ports

import (
	"context"
	"io"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// PackageAssembler defines the interface for building a .pptx archive
type PackageAssembler interface {
	// Assemble renders the deck and returns the archive bytes.
	// Invariant failures are reported as ErrorPackagingInvariantViolation.
	Assemble(ctx context.Context, deck entities.Deck, theme entities.Theme) ([]byte, error)
}

// SlideSummary describes one slide read back from an archive
type SlideSummary struct {
	Number int      `json:"number" yaml:"number"`
	Part   string   `json:"part" yaml:"part"`
	Title  string   `json:"title" yaml:"title"`
	Text   []string `json:"text" yaml:"text"`
	Layout string   `json:"layout" yaml:"layout"`
	Notes  []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ArchiveReport describes an archive read back from bytes
type ArchiveReport struct {
	Title         string         `json:"title,omitempty" yaml:"title,omitempty"`
	Author        string         `json:"author,omitempty" yaml:"author,omitempty"`
	Identifier    string         `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	PartCount     int            `json:"part_count" yaml:"part_count"`
	Relationships int            `json:"relationships" yaml:"relationships"`
	Slides        []SlideSummary `json:"slides" yaml:"slides"`
}

// ArchiveInspector defines the interface for reading archives back
type ArchiveInspector interface {
	Inspect(r io.ReaderAt, size int64) (*ArchiveReport, error)
}
