package builders

import (
	"fmt"
	"slices"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// DeckBuilder helps build Deck entities for testing
type DeckBuilder struct {
	deck entities.Deck
}

// NewDeckBuilder creates a new deck builder with sensible defaults
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{
		deck: entities.Deck{
			Theme: entities.ThemeDefault,
			Metadata: entities.DeckMetadata{
				Title:  "Test Deck",
				Author: "Test Author",
			},
			Slides: []entities.Slide{},
		},
	}
}

// WithTitle sets the deck title
func (b *DeckBuilder) WithTitle(title string) *DeckBuilder {
	b.deck.Metadata.Title = title
	return b
}

// WithAuthor sets the deck author
func (b *DeckBuilder) WithAuthor(author string) *DeckBuilder {
	b.deck.Metadata.Author = author
	return b
}

// WithKeywords sets the deck keywords
func (b *DeckBuilder) WithKeywords(keywords ...string) *DeckBuilder {
	b.deck.Metadata.Keywords = keywords
	return b
}

// WithTheme sets the deck theme
func (b *DeckBuilder) WithTheme(id entities.ThemeID) *DeckBuilder {
	b.deck.Theme = id
	return b
}

// WithSlide adds a single slide to the deck
func (b *DeckBuilder) WithSlide(slide entities.Slide) *DeckBuilder {
	slide.SourceOrder = len(b.deck.Slides)
	b.deck.Slides = append(b.deck.Slides, slide)
	return b
}

// WithSlideCount adds the specified number of titled slides with one paragraph each
func (b *DeckBuilder) WithSlideCount(count int) *DeckBuilder {
	for i := 0; i < count; i++ {
		b.WithSlide(NewSlideBuilder().
			WithTitle(fmt.Sprintf("Slide %d", len(b.deck.Slides)+1)).
			WithParagraph("Test content").
			Build())
	}
	return b
}

// Build creates the final Deck entity
func (b *DeckBuilder) Build() entities.Deck {
	// Copy so later builder calls do not mutate returned decks
	out := b.deck
	out.Slides = slices.Clone(b.deck.Slides)
	out.Metadata.Keywords = slices.Clone(b.deck.Metadata.Keywords)
	return out
}

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide entities.Slide
}

// NewSlideBuilder creates an untitled slide builder
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{}
}

// WithTitle sets a plain slide title
func (b *SlideBuilder) WithTitle(title string) *SlideBuilder {
	rt := entities.Plain(title)
	b.slide.Title = &rt
	return b
}

// WithSource sets the display name of the originating document
func (b *SlideBuilder) WithSource(source string) *SlideBuilder {
	b.slide.Source = source
	return b
}

// WithElement appends an arbitrary element
func (b *SlideBuilder) WithElement(el entities.SlideElement) *SlideBuilder {
	b.slide.Elements = append(b.slide.Elements, el)
	return b
}

// WithParagraph appends a plain paragraph
func (b *SlideBuilder) WithParagraph(text string) *SlideBuilder {
	return b.WithElement(entities.Paragraph(entities.Plain(text)))
}

// WithBullets appends a top-level bullet list
func (b *SlideBuilder) WithBullets(items ...string) *SlideBuilder {
	list := make([]entities.ListItem, len(items))
	for i, item := range items {
		list[i] = entities.ListItem{Text: entities.Plain(item)}
	}
	return b.WithElement(entities.BulletList(list...))
}

// WithCode appends a code block
func (b *SlideBuilder) WithCode(language, code string) *SlideBuilder {
	return b.WithElement(entities.CodeElement(language, code))
}

// WithTable appends a table whose first row is the header
func (b *SlideBuilder) WithTable(header []string, rows ...[]string) *SlideBuilder {
	all := make([][]entities.RichText, 0, len(rows)+1)
	all = append(all, plainRow(header))
	for _, row := range rows {
		all = append(all, plainRow(row))
	}
	return b.WithElement(entities.Table(all, 0))
}

// WithImage appends an image placeholder
func (b *SlideBuilder) WithImage(alt, src string) *SlideBuilder {
	return b.WithElement(entities.ImagePlaceholder(alt, src))
}

// Build creates the final Slide entity
func (b *SlideBuilder) Build() entities.Slide {
	out := b.slide
	out.Elements = slices.Clone(b.slide.Elements)
	return out
}

func plainRow(cells []string) []entities.RichText {
	row := make([]entities.RichText, len(cells))
	for i, c := range cells {
		row[i] = entities.Plain(c)
	}
	return row
}

// Common decks for testing

// MinimalDeck creates a one-slide deck for basic tests
func MinimalDeck() entities.Deck {
	return NewDeckBuilder().
		WithTitle("Minimal").
		WithSlideCount(1).
		Build()
}

// LargeDeck creates a deck with many slides for benchmarks
func LargeDeck() entities.Deck {
	return NewDeckBuilder().
		WithTitle("Large Deck").
		WithSlideCount(50).
		Build()
}

// MixedDeck creates a deck exercising every element kind
func MixedDeck() entities.Deck {
	return NewDeckBuilder().
		WithTitle("Mixed").
		WithKeywords("go", "slides").
		WithSlide(NewSlideBuilder().
			WithTitle("Overview").
			WithElement(entities.SubHeading(3, entities.Plain("Scope"))).
			WithBullets("one", "two").
			WithElement(entities.NumberedList(entities.ListItem{Text: entities.Plain("first"), Ordered: true})).
			Build()).
		WithSlide(NewSlideBuilder().
			WithTitle("Details").
			WithCode("go", "fmt.Println(\"<hi>\")").
			WithTable([]string{"Name", "Value"}, []string{"a & b", "1"}).
			WithElement(entities.Quote(entities.Plain("quoted"))).
			Build()).
		WithSlide(NewSlideBuilder().
			WithImage("logo", "https://example.com/logo.png").
			Build()).
		Build()
}
