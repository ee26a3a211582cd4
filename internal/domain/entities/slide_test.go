package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlide_Validate(t *testing.T) {
	title := Plain("Title")

	tests := []struct {
		name    string
		slide   Slide
		wantErr string
	}{
		{
			name:  "titled slide with content",
			slide: Slide{Title: &title, Elements: []SlideElement{Paragraph(Plain("x"))}},
		},
		{
			name:  "untitled empty slide",
			slide: Slide{},
		},
		{
			name:    "negative source order",
			slide:   Slide{SourceOrder: -1},
			wantErr: "source order must be non-negative",
		},
		{
			name:    "unknown element kind",
			slide:   Slide{Elements: []SlideElement{{Kind: 99}}},
			wantErr: "unknown kind",
		},
		{
			name:    "empty table",
			slide:   Slide{Elements: []SlideElement{Table(nil, -1)}},
			wantErr: "table has no rows",
		},
		{
			name: "ragged table",
			slide: Slide{Elements: []SlideElement{Table([][]RichText{
				{Plain("a"), Plain("b")},
				{Plain("c")},
			}, 0)}},
			wantErr: "row 1 has 1 cells, want 2",
		},
		{
			name: "header row out of range",
			slide: Slide{Elements: []SlideElement{Table([][]RichText{
				{Plain("a")},
			}, 1)}},
			wantErr: "header row 1 out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slide.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSlide_Title(t *testing.T) {
	untitled := Slide{}
	assert.False(t, untitled.HasTitle())
	assert.Equal(t, "", untitled.TitleText())

	title := RichText{{Text: "Hello "}, {Text: "world", Bold: true}}
	titled := Slide{Title: &title}
	assert.True(t, titled.HasTitle())
	assert.Equal(t, "Hello world", titled.TitleText())
}

func TestSlideElement_Constructors(t *testing.T) {
	assert.Equal(t, -1, Paragraph(Plain("p")).HeaderRow)
	assert.True(t, BulletList(ListItem{Text: Plain("a")}).IsList())
	assert.True(t, NumberedList().IsList())
	assert.False(t, Quote(Plain("q")).IsList())

	code := CodeElement("go", "fmt.Println()")
	assert.Equal(t, ElementCode, code.Kind)
	assert.Equal(t, "go", code.Language)

	img := ImagePlaceholder("diagram", "img/d.png")
	assert.Equal(t, "diagram", img.Alt)
	assert.Equal(t, "img/d.png", img.Src)

	table := Table([][]RichText{{Plain("a"), Plain("b"), Plain("c")}, {Plain("d")}}, -1)
	assert.Equal(t, 3, table.Columns())

	assert.Equal(t, "numbered_list", ElementNumberedList.String())
	assert.Equal(t, "element(0)", ElementKind(0).String())
}

func TestSlide_Layout(t *testing.T) {
	title := Plain("T")
	tests := []struct {
		name  string
		slide Slide
		want  SlideLayout
	}{
		{"title only", Slide{Title: &title}, LayoutTitleOnly},
		{"title and content", Slide{Title: &title, Elements: []SlideElement{Paragraph(Plain("x"))}}, LayoutTitleContent},
		{"untitled with content", Slide{Elements: []SlideElement{Paragraph(Plain("x"))}}, LayoutBlank},
		{"empty", Slide{}, LayoutBlank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slide.Layout())
		})
	}
	assert.Equal(t, "Title and Content", LayoutTitleContent.String())
}
