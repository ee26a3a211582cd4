package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

func plain(s string) entities.RichText { return entities.Plain(s) }

func TestSegmenter_TitleAndNext(t *testing.T) {
	blocks := entities.BlocksOf(
		entities.HeadingBlock(1, plain("Title")),
		entities.ParagraphBlock(plain("Hello")),
		entities.HeadingBlock(2, plain("Next")),
		entities.ListItemBlock(false, 0, plain("a")),
		entities.ListItemBlock(false, 0, plain("b")),
	)

	slides := NewSegmenter().Segment(blocks, "talk.md")
	require.Len(t, slides, 2)

	assert.Equal(t, "Title", slides[0].TitleText())
	require.Len(t, slides[0].Elements, 1)
	assert.Equal(t, entities.ElementParagraph, slides[0].Elements[0].Kind)
	assert.Equal(t, "Hello", slides[0].Elements[0].Text.String())

	assert.Equal(t, "Next", slides[1].TitleText())
	require.Len(t, slides[1].Elements, 1)
	list := slides[1].Elements[0]
	assert.Equal(t, entities.ElementBulletList, list.Kind)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "a", list.Items[0].Text.String())
	assert.Equal(t, "b", list.Items[1].Text.String())

	assert.Equal(t, 0, slides[0].SourceOrder)
	assert.Equal(t, 1, slides[1].SourceOrder)
	assert.Equal(t, "talk.md", slides[1].Source)
}

func TestSegmenter_NoHeadings(t *testing.T) {
	tests := []struct {
		name   string
		blocks []entities.Block
		kinds  []entities.ElementKind
	}{
		{
			name:   "empty input",
			blocks: nil,
			kinds:  []entities.ElementKind{},
		},
		{
			name: "paragraphs and code",
			blocks: []entities.Block{
				entities.ParagraphBlock(plain("one")),
				entities.CodeBlockOf("go", "x := 1"),
				entities.QuoteBlock(plain("q")),
			},
			kinds: []entities.ElementKind{entities.ElementParagraph, entities.ElementCode, entities.ElementQuote},
		},
		{
			name: "sub headings only",
			blocks: []entities.Block{
				entities.HeadingBlock(3, plain("Three")),
				entities.HeadingBlock(6, plain("Six")),
			},
			kinds: []entities.ElementKind{entities.ElementSubHeading, entities.ElementSubHeading},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slides := NewSegmenter().Segment(entities.BlocksOf(tt.blocks...), "")
			require.Len(t, slides, 1)
			assert.False(t, slides[0].HasTitle())

			kinds := make([]entities.ElementKind, 0, len(slides[0].Elements))
			for _, el := range slides[0].Elements {
				kinds = append(kinds, el.Kind)
			}
			assert.Equal(t, tt.kinds, kinds)
		})
	}
}

func TestSegmenter_ContentBeforeFirstHeading(t *testing.T) {
	blocks := entities.BlocksOf(
		entities.ParagraphBlock(plain("preamble")),
		entities.HeadingBlock(1, plain("First")),
	)

	slides := NewSegmenter().Segment(blocks, "")
	require.Len(t, slides, 2)
	assert.False(t, slides[0].HasTitle())
	assert.Len(t, slides[0].Elements, 1)
	assert.Equal(t, "First", slides[1].TitleText())
}

func TestSegmenter_ConsecutiveHeadingsAreNotCollapsed(t *testing.T) {
	blocks := entities.BlocksOf(
		entities.HeadingBlock(1, plain("A")),
		entities.HeadingBlock(2, plain("B")),
		entities.HeadingBlock(1, plain("C")),
		entities.ParagraphBlock(plain("body")),
	)

	slides := NewSegmenter().Segment(blocks, "")
	require.Len(t, slides, 3)
	assert.Empty(t, slides[0].Elements)
	assert.Empty(t, slides[1].Elements)
	assert.Len(t, slides[2].Elements, 1)
	assert.Equal(t, []string{"A", "B", "C"}, []string{slides[0].TitleText(), slides[1].TitleText(), slides[2].TitleText()})
}

func TestSegmenter_TitledSlidesMatchBoundaryHeadings(t *testing.T) {
	blocks := []entities.Block{
		entities.ParagraphBlock(plain("intro")),
		entities.HeadingBlock(2, plain("one")),
		entities.HeadingBlock(4, plain("detail")),
		entities.HeadingBlock(1, plain("two")),
		entities.ParagraphBlock(plain("x")),
		entities.HeadingBlock(2, plain("three")),
	}

	var want []string
	for _, b := range blocks {
		if b.IsSlideBoundary() {
			want = append(want, b.Text.String())
		}
	}

	var got []string
	for _, s := range NewSegmenter().Segment(entities.BlocksOf(blocks...), "") {
		if s.HasTitle() {
			got = append(got, s.TitleText())
		}
	}
	assert.Equal(t, want, got)
}

func TestSegmenter_EmptyHeadingStillTitled(t *testing.T) {
	slides := NewSegmenter().Segment(entities.BlocksOf(entities.HeadingBlock(1, nil)), "")
	require.Len(t, slides, 1)
	assert.True(t, slides[0].HasTitle())
	assert.Equal(t, "", slides[0].TitleText())
}

func TestSegmenter_ListGrouping(t *testing.T) {
	blocks := entities.BlocksOf(
		entities.HeadingBlock(1, plain("Lists")),
		entities.ListItemBlock(true, 0, plain("one")),
		entities.ListItemBlock(false, 1, plain("nested bullet")),
		entities.ListItemBlock(true, 0, plain("two")),
		entities.ListItemBlock(false, 0, plain("bullet")),
		entities.ParagraphBlock(plain("break")),
		entities.ListItemBlock(false, 0, plain("again")),
	)

	slides := NewSegmenter().Segment(blocks, "")
	require.Len(t, slides, 1)
	els := slides[0].Elements
	require.Len(t, els, 4)

	assert.Equal(t, entities.ElementNumberedList, els[0].Kind)
	require.Len(t, els[0].Items, 3)
	assert.Equal(t, 1, els[0].Items[1].Depth)
	assert.False(t, els[0].Items[1].Ordered)

	assert.Equal(t, entities.ElementBulletList, els[1].Kind)
	assert.Len(t, els[1].Items, 1)
	assert.Equal(t, entities.ElementParagraph, els[2].Kind)
	assert.Equal(t, entities.ElementBulletList, els[3].Kind)
}

func TestSegmenter_TableGrouping(t *testing.T) {
	cells := func(values ...string) []entities.RichText {
		out := make([]entities.RichText, len(values))
		for i, v := range values {
			out[i] = plain(v)
		}
		return out
	}

	t.Run("header table with short and long rows", func(t *testing.T) {
		blocks := entities.BlocksOf(
			entities.TableRowBlock(cells("a", "b", "c"), true),
			entities.TableRowBlock(cells("1"), false),
			entities.TableRowBlock(cells("1", "2", "3", "4"), false),
		)

		slides := NewSegmenter().Segment(blocks, "")
		require.Len(t, slides[0].Elements, 1)
		table := slides[0].Elements[0]
		assert.Equal(t, entities.ElementTable, table.Kind)
		assert.Equal(t, 0, table.HeaderRow)
		require.Len(t, table.Rows, 3)
		for _, row := range table.Rows {
			assert.Len(t, row, 3)
		}
		assert.True(t, table.Rows[1][2].IsEmpty())
		assert.NoError(t, slides[0].Validate())
	})

	t.Run("headerless rows padded to widest", func(t *testing.T) {
		blocks := entities.BlocksOf(
			entities.TableRowBlock(cells("x"), false),
			entities.TableRowBlock(cells("y", "z"), false),
		)

		slides := NewSegmenter().Segment(blocks, "")
		table := slides[0].Elements[0]
		assert.Equal(t, -1, table.HeaderRow)
		assert.Len(t, table.Rows[0], 2)
		assert.Len(t, table.Rows[1], 2)
	})

	t.Run("second header starts a new table", func(t *testing.T) {
		blocks := entities.BlocksOf(
			entities.TableRowBlock(cells("a"), true),
			entities.TableRowBlock(cells("1"), false),
			entities.TableRowBlock(cells("b"), true),
		)

		slides := NewSegmenter().Segment(blocks, "")
		require.Len(t, slides[0].Elements, 2)
		assert.Len(t, slides[0].Elements[0].Rows, 2)
		assert.Len(t, slides[0].Elements[1].Rows, 1)
	})
}

func TestSegmenter_Restartable(t *testing.T) {
	blocks := entities.BlocksOf(
		entities.HeadingBlock(1, plain("A")),
		entities.ImageBlock("chart", "chart.png"),
	)

	seg := NewSegmenter()
	first := seg.Segment(blocks, "a.md")
	second := seg.Segment(blocks, "a.md")
	assert.Equal(t, first, second)
	assert.Equal(t, entities.ElementImage, first[0].Elements[0].Kind)
}

func TestSegmenter_SpeakerNotes(t *testing.T) {
	t.Run("attached to the open slide", func(t *testing.T) {
		blocks := entities.BlocksOf(
			entities.HeadingBlock(1, plain("One")),
			entities.ListItemBlock(false, 0, plain("a")),
			entities.NotesBlock("first"),
			entities.ListItemBlock(false, 0, plain("b")),
			entities.NotesBlock("second"),
			entities.HeadingBlock(2, plain("Two")),
		)

		slides := NewSegmenter().Segment(blocks, "")
		require.Len(t, slides, 2)
		assert.Equal(t, "first\n\nsecond", slides[0].Notes)
		require.Len(t, slides[0].Elements, 1)
		assert.Len(t, slides[0].Elements[0].Items, 2)
		assert.False(t, slides[1].HasNotes())
	})

	t.Run("leading notes wait for the first slide", func(t *testing.T) {
		blocks := entities.BlocksOf(
			entities.NotesBlock("intro"),
			entities.HeadingBlock(1, plain("One")),
		)

		slides := NewSegmenter().Segment(blocks, "")
		require.Len(t, slides, 1)
		assert.Equal(t, "One", slides[0].TitleText())
		assert.Empty(t, slides[0].Elements)
		assert.Equal(t, "intro", slides[0].Notes)
	})

	t.Run("notes alone give one untitled slide", func(t *testing.T) {
		slides := NewSegmenter().Segment(entities.BlocksOf(entities.NotesBlock("only")), "")
		require.Len(t, slides, 1)
		assert.False(t, slides[0].HasTitle())
		assert.Equal(t, "only", slides[0].Notes)
	})
}
