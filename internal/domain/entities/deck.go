package entities

import (
	"fmt"
	"slices"
)

// DeckMetadata contains document properties written to docProps/core.xml
type DeckMetadata struct {
	Title    string   `json:"title,omitempty"`
	Author   string   `json:"author,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Company  string   `json:"company,omitempty"`
}

// MetadataFromDocument converts front matter into deck metadata
func MetadataFromDocument(m DocumentMetadata) DeckMetadata {
	return DeckMetadata{
		Title:    m.Title,
		Author:   m.Author,
		Subject:  m.Subject,
		Keywords: slices.Clone(m.Keywords),
	}
}

// Deck represents a complete slide deck ready for assembly
type Deck struct {
	// Slides contains all slides in presentation order
	Slides []Slide `json:"slides"`

	// Theme is the template the deck is rendered with
	Theme ThemeID `json:"theme"`

	// Metadata holds document properties
	Metadata DeckMetadata `json:"metadata"`
}

// Validate ensures every slide of the deck is well formed
func (d *Deck) Validate() error {
	for i := range d.Slides {
		if err := d.Slides[i].Validate(); err != nil {
			return fmt.Errorf("slide %d validation failed: %w", i+1, err)
		}
	}
	return nil
}

// SlideCount returns the number of slides
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// MergeDecks concatenates decks in argument order and renumbers SourceOrder
// across the merged deck. The theme comes from the first deck; metadata fields are taken from the first deck that sets them
// and keywords are unioned in order of first appearance.
func MergeDecks(decks ...Deck) Deck {
	var out Deck
	if len(decks) == 0 {
		out.Slides = []Slide{}
		return out
	}

	out.Theme = decks[0].Theme
	total := 0
	for _, d := range decks {
		total += len(d.Slides)
	}
	out.Slides = make([]Slide, 0, total)

	seen := make(map[string]bool)
	for _, d := range decks {
		for _, s := range d.Slides {
			s.SourceOrder = len(out.Slides)
			out.Slides = append(out.Slides, s)
		}

		if out.Metadata.Title == "" {
			out.Metadata.Title = d.Metadata.Title
		}
		if out.Metadata.Author == "" {
			out.Metadata.Author = d.Metadata.Author
		}
		if out.Metadata.Subject == "" {
			out.Metadata.Subject = d.Metadata.Subject
		}
		if out.Metadata.Company == "" {
			out.Metadata.Company = d.Metadata.Company
		}
		for _, kw := range d.Metadata.Keywords {
			if !seen[kw] {
				seen[kw] = true
				out.Metadata.Keywords = append(out.Metadata.Keywords, kw)
			}
		}
	}

	return out
}
