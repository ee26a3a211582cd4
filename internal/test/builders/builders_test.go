package builders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

func TestDeckBuilder(t *testing.T) {
	t.Run("builds deck with defaults", func(t *testing.T) {
		deck := NewDeckBuilder().Build()

		assert.Equal(t, "Test Deck", deck.Metadata.Title)
		assert.Equal(t, "Test Author", deck.Metadata.Author)
		assert.Equal(t, entities.ThemeDefault, deck.Theme)
		assert.Empty(t, deck.Slides)
		assert.NoError(t, deck.Validate())
	})

	t.Run("builds deck with custom values", func(t *testing.T) {
		deck := NewDeckBuilder().
			WithTitle("Custom").
			WithAuthor("Grace").
			WithTheme(entities.ThemeModern).
			WithKeywords("a", "b").
			WithSlideCount(3).
			Build()

		assert.Equal(t, "Custom", deck.Metadata.Title)
		assert.Equal(t, "Grace", deck.Metadata.Author)
		assert.Equal(t, entities.ThemeModern, deck.Theme)
		assert.Equal(t, []string{"a", "b"}, deck.Metadata.Keywords)
		require.Len(t, deck.Slides, 3)
		for i, s := range deck.Slides {
			assert.Equal(t, i, s.SourceOrder)
		}
		assert.Equal(t, "Slide 3", deck.Slides[2].TitleText())
	})

	t.Run("built decks are independent", func(t *testing.T) {
		b := NewDeckBuilder().WithSlideCount(1)
		first := b.Build()
		b.WithSlideCount(1)

		assert.Len(t, first.Slides, 1)
		assert.Len(t, b.Build().Slides, 2)
	})

	t.Run("helpers", func(t *testing.T) {
		assert.Len(t, MinimalDeck().Slides, 1)
		assert.Len(t, LargeDeck().Slides, 50)

		mixed := MixedDeck()
		require.NoError(t, mixed.Validate())
		require.Len(t, mixed.Slides, 3)
		assert.False(t, mixed.Slides[2].HasTitle())
	})
}

func TestSlideBuilder(t *testing.T) {
	t.Run("untitled by default", func(t *testing.T) {
		slide := NewSlideBuilder().Build()

		assert.False(t, slide.HasTitle())
		assert.Empty(t, slide.Elements)
	})

	t.Run("elements in call order", func(t *testing.T) {
		slide := NewSlideBuilder().
			WithTitle("Title").
			WithSource("talk.md").
			WithParagraph("p").
			WithBullets("x", "y").
			WithCode("go", "x := 1").
			WithTable([]string{"h1", "h2"}, []string{"c1", "c2"}).
			WithImage("alt", "img.png").
			Build()

		assert.Equal(t, "Title", slide.TitleText())
		assert.Equal(t, "talk.md", slide.Source)

		kinds := make([]entities.ElementKind, len(slide.Elements))
		for i, el := range slide.Elements {
			kinds[i] = el.Kind
		}
		assert.Equal(t, []entities.ElementKind{
			entities.ElementParagraph,
			entities.ElementBulletList,
			entities.ElementCode,
			entities.ElementTable,
			entities.ElementImage,
		}, kinds)

		table := slide.Elements[3]
		assert.Equal(t, 0, table.HeaderRow)
		assert.Equal(t, 2, table.Columns())
		assert.Len(t, slide.Elements[1].Items, 2)
	})
}
