package renderer

import (
	"strings"

	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/ooxml"
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// ShapeKind identifies how a shape is serialized
type ShapeKind int

const (
	ShapeTitle ShapeKind = iota
	ShapeText
	ShapeCode
	ShapeQuoteBar
	ShapeTable
	ShapeImage
)

// BulletKind selects the paragraph bullet
type BulletKind int

const (
	BulletNone BulletKind = iota
	BulletChar
	BulletNumber
)

// Run is a span of text with resolved styling
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Font   string
	Size   int
	Color  entities.RGB
}

// Paragraph is one a:p of a text body
type Paragraph struct {
	Runs   []Run
	Level  int
	Bullet BulletKind
	Char   string
	Align  string
}

// Cell is one table cell
type Cell struct {
	Paragraphs []Paragraph
	Fill       *entities.RGB
}

// TableGrid describes a DrawingML table
type TableGrid struct {
	Columns   []int64
	RowHeight int64
	Rows      [][]Cell
	HeaderRow int
}

// LineStyle is a shape outline
type LineStyle struct {
	Width int64
	Color entities.RGB
	Dash  string
}

// Shape is a renderable description of one slide shape
type Shape struct {
	ID          int64
	Name        string
	Kind        ShapeKind
	Frame       Rect
	Paragraphs  []Paragraph
	Table       *TableGrid
	Description string
	Fill        *entities.RGB
	Line        *LineStyle
	// LinkRelID references an external hyperlink relationship of the slide
	LinkRelID string
}

var bulletChars = []string{"•", "–", "▪"}

// shapeBuilder lays out one slide. Shape ids come from a per-slide allocator
// starting at 2; 1 is the shape tree group.
type shapeBuilder struct {
	theme  entities.Theme
	ids    *ooxml.Allocator
	rels   *ooxml.RelIDs
	shapes []Shape
	links  []entities.Relationship
}

func newShapeBuilder(theme entities.Theme) *shapeBuilder {
	return &shapeBuilder{
		theme: theme,
		ids:   ooxml.NewAllocator(2),
		rels:  ooxml.NewRelIDs(2),
	}
}

func (b *shapeBuilder) add(s Shape, prefix string) {
	s.ID = b.ids.Next()
	s.Name = shapeName(prefix, s.ID)
	b.shapes = append(b.shapes, s)
}

// BuildShapes lays out a slide's title and elements
func BuildShapes(slide entities.Slide, theme entities.Theme) ([]Shape, []entities.Relationship) {
	b := newShapeBuilder(theme)

	if slide.Title != nil {
		b.add(Shape{
			Kind:  ShapeTitle,
			Frame: titleFrame(theme),
			Paragraphs: []Paragraph{{
				Runs: b.runs(*slide.Title, theme.TitleFont, theme.TitleSize, theme.TextPrimary, false, false),
			}},
		}, "Title")
	}

	area := contentArea(theme, slide.Title != nil)
	y := area.Y
	for _, el := range slide.Elements {
		h := elementHeight(el, theme, area.CX)
		frame := Rect{X: area.X, Y: y, CX: area.CX, CY: h}
		b.element(el, frame)
		y += h + ContentSpacing
	}

	return b.shapes, b.links
}

func (b *shapeBuilder) element(el entities.SlideElement, frame Rect) {
	t := b.theme

	switch el.Kind {
	case entities.ElementSubHeading:
		size := subHeadingSize(t, el.Level)
		b.add(Shape{
			Kind:       ShapeText,
			Frame:      frame,
			Paragraphs: b.lines(el.Text, t.TitleFont, size, t.AccentColor, true, false),
		}, "Heading")

	case entities.ElementParagraph:
		b.add(Shape{
			Kind:       ShapeText,
			Frame:      frame,
			Paragraphs: b.lines(el.Text, t.FontFamily, t.BodySize, t.TextPrimary, false, false),
		}, "TextBox")

	case entities.ElementQuote:
		bar := Rect{X: frame.X, Y: frame.Y, CX: QuoteBarWidth, CY: frame.CY}
		accent := t.AccentColor
		b.add(Shape{Kind: ShapeQuoteBar, Frame: bar, Fill: &accent}, "Quote Bar")

		frame.X += QuoteBarWidth + TextInset
		frame.CX -= QuoteBarWidth + TextInset
		b.add(Shape{
			Kind:       ShapeText,
			Frame:      frame,
			Paragraphs: b.lines(el.Text, t.FontFamily, t.BodySize, t.TextSecondary, false, true),
		}, "Quote")

	case entities.ElementBulletList, entities.ElementNumberedList:
		paras := make([]Paragraph, 0, len(el.Items))
		for _, item := range el.Items {
			p := Paragraph{
				Runs:  b.runs(item.Text, t.FontFamily, t.BodySize, t.TextPrimary, false, false),
				Level: min(item.Depth, 8),
			}
			if item.Ordered {
				p.Bullet = BulletNumber
			} else {
				p.Bullet = BulletChar
				p.Char = bulletChars[item.Depth%len(bulletChars)]
			}
			paras = append(paras, p)
		}
		if len(paras) == 0 {
			paras = append(paras, Paragraph{Runs: []Run{b.emptyRun(t.FontFamily, t.BodySize, t.TextPrimary)}})
		}
		b.add(Shape{Kind: ShapeText, Frame: frame, Paragraphs: paras}, "List")

	case entities.ElementCode:
		fill := codeBackground(t)
		lines := strings.Split(el.Code, "\n")
		paras := make([]Paragraph, 0, len(lines))
		for _, line := range lines {
			paras = append(paras, Paragraph{Runs: []Run{{
				Text:  strings.TrimRight(line, "\r"),
				Font:  t.CodeFont,
				Size:  t.CodeSize,
				Color: t.TextPrimary,
			}}})
		}
		b.add(Shape{
			Kind:        ShapeCode,
			Frame:       frame,
			Paragraphs:  paras,
			Description: el.Language,
			Fill:        &fill,
		}, "Code")

	case entities.ElementTable:
		b.add(Shape{Kind: ShapeTable, Frame: frame, Table: b.table(el, frame)}, "Table")

	case entities.ElementImage:
		s := Shape{
			Kind:        ShapeImage,
			Frame:       frame,
			Description: el.Src,
			Line:        &LineStyle{Width: 12700, Color: t.TextSecondary, Dash: "dash"},
			Paragraphs: []Paragraph{{
				Align: "ctr",
				Runs: []Run{{
					Text:   imageLabel(el.Alt),
					Italic: true,
					Font:   t.FontFamily,
					Size:   t.BodySize,
					Color:  t.TextSecondary,
				}},
			}},
		}
		if isExternal(el.Src) {
			s.LinkRelID = b.rels.Next()
			b.links = append(b.links, entities.Relationship{
				ID:       s.LinkRelID,
				Type:     ooxml.RelHyperlink,
				Target:   el.Src,
				External: true,
			})
		}
		b.add(s, "Image")

	default:
		// unknown kinds still occupy a shape so ids stay dense
		b.add(Shape{
			Kind:       ShapeText,
			Frame:      frame,
			Paragraphs: []Paragraph{{Runs: []Run{b.emptyRun(t.FontFamily, t.BodySize, t.TextPrimary)}}},
		}, "Shape")
	}
}

func (b *shapeBuilder) table(el entities.SlideElement, frame Rect) *TableGrid {
	t := b.theme
	cols := max(1, el.Columns())
	grid := &TableGrid{
		Columns:   columnWidths(frame.CX, cols),
		RowHeight: tableRowHeight(t),
		HeaderRow: el.HeaderRow,
	}

	rows := el.Rows
	if len(rows) == 0 {
		rows = [][]entities.RichText{{}}
	}

	for r, row := range rows {
		header := r == el.HeaderRow
		cells := make([]Cell, cols)
		for c := range cells {
			var text entities.RichText
			if c < len(row) {
				text = row[c]
			}
			color := t.TextPrimary
			if header {
				color = t.Background
				fill := t.AccentColor
				cells[c].Fill = &fill
			}
			cells[c].Paragraphs = []Paragraph{{
				Runs: b.runs(text, t.FontFamily, t.BodySize, color, header, false),
			}}
		}
		grid.Rows = append(grid.Rows, cells)
	}
	return grid
}

// lines splits rich text on newlines into paragraphs
func (b *shapeBuilder) lines(rt entities.RichText, font string, size int, color entities.RGB, bold, italic bool) []Paragraph {
	var (
		paras   []Paragraph
		current entities.RichText
	)
	for _, span := range rt {
		parts := strings.Split(span.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				paras = append(paras, Paragraph{Runs: b.runs(current, font, size, color, bold, italic)})
				current = nil
			}
			if part != "" {
				s := span
				s.Text = part
				current = append(current, s)
			}
		}
	}
	return append(paras, Paragraph{Runs: b.runs(current, font, size, color, bold, italic)})
}

// runs maps spans to runs. Empty text yields a single empty run.
func (b *shapeBuilder) runs(rt entities.RichText, font string, size int, color entities.RGB, bold, italic bool) []Run {
	if len(rt) == 0 {
		r := b.emptyRun(font, size, color)
		r.Bold, r.Italic = bold, italic
		return []Run{r}
	}

	out := make([]Run, 0, len(rt))
	for _, span := range rt {
		r := Run{
			Text:   span.Text,
			Bold:   bold || span.Bold,
			Italic: italic || span.Italic,
			Font:   font,
			Size:   size,
			Color:  color,
		}
		if span.Code {
			r.Font = b.theme.CodeFont
		}
		out = append(out, r)
	}
	return out
}

func (b *shapeBuilder) emptyRun(font string, size int, color entities.RGB) Run {
	return Run{Font: font, Size: size, Color: color}
}

// codeBackground tints the background slightly darker than the slide
func codeBackground(t entities.Theme) entities.RGB {
	shade := func(v uint8) uint8 {
		return uint8(int(v) * 94 / 100)
	}
	return entities.RGB{R: shade(t.Background.R), G: shade(t.Background.G), B: shade(t.Background.B)}
}

func imageLabel(alt string) string {
	if strings.TrimSpace(alt) == "" {
		return "[Image]"
	}
	return "[Image: " + alt + "]"
}

func isExternal(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
