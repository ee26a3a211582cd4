package renderer

import (
	"strings"
	"unicode/utf8"

	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/ooxml"
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// Layout constants in EMU
const (
	TitleHeight    int64 = 1143000
	ContentSpacing int64 = 228600
	TextInset      int64 = 91440
	CellInset      int64 = 45720
	QuoteBarWidth  int64 = 57150
	ImageHeight    int64 = 2743200
	ListIndent     int64 = 457200
	BulletHang     int64 = 342900
	minBoxHeight   int64 = 365760
)

// Rect is a shape frame in EMU
type Rect struct {
	X, Y, CX, CY int64
}

// Bottom returns the lower edge of the frame
func (r Rect) Bottom() int64 {
	return r.Y + r.CY
}

// contentArea returns the box available to content shapes
func contentArea(theme entities.Theme, titled bool) Rect {
	m := theme.Margins()
	area := Rect{
		X:  m.Left,
		Y:  m.Top,
		CX: ooxml.SlideWidth - m.Left - m.Right,
		CY: ooxml.SlideHeight - m.Top - m.Bottom,
	}
	if titled {
		area.Y += TitleHeight + ContentSpacing
		area.CY -= TitleHeight + ContentSpacing
	}
	return area
}

// titleFrame returns the frame of the title placeholder
func titleFrame(theme entities.Theme) Rect {
	m := theme.Margins()
	return Rect{X: m.Left, Y: m.Top, CX: ooxml.SlideWidth - m.Left - m.Right, CY: TitleHeight}
}

// lineHeight returns the height of one text line at a size in hundredths of a point
func lineHeight(size int) int64 {
	return int64(size) * ooxml.EMUPerPoint * 12 / 1000
}

// wrappedLines estimates how many lines text occupies in a box of the given width
func wrappedLines(text string, size int, width int64) int64 {
	charWidth := int64(size) * ooxml.EMUPerPoint / 200
	if charWidth <= 0 {
		charWidth = 1
	}
	perLine := (width - 2*TextInset) / charWidth
	if perLine < 1 {
		perLine = 1
	}

	var lines int64
	for _, line := range strings.Split(text, "\n") {
		n := int64(utf8.RuneCountInString(line))
		lines += max(1, (n+perLine-1)/perLine)
	}
	return lines
}

// boxHeight converts a line count to a text box height
func boxHeight(lines int64, size int) int64 {
	return max(minBoxHeight, lines*lineHeight(size)+2*TextInset)
}

// elementHeight estimates the height an element needs at the given width
func elementHeight(el entities.SlideElement, theme entities.Theme, width int64) int64 {
	switch el.Kind {
	case entities.ElementSubHeading:
		size := subHeadingSize(theme, el.Level)
		return boxHeight(wrappedLines(el.Text.String(), size, width), size)

	case entities.ElementParagraph, entities.ElementQuote:
		return boxHeight(wrappedLines(el.Text.String(), theme.BodySize, width), theme.BodySize)

	case entities.ElementBulletList, entities.ElementNumberedList:
		var lines int64
		for _, item := range el.Items {
			indent := BulletHang + int64(item.Depth)*ListIndent
			lines += wrappedLines(item.Text.String(), theme.BodySize, width-indent)
		}
		return boxHeight(lines, theme.BodySize)

	case entities.ElementCode:
		lines := int64(strings.Count(el.Code, "\n") + 1)
		return boxHeight(lines, theme.CodeSize)

	case entities.ElementTable:
		return int64(max(1, len(el.Rows))) * tableRowHeight(theme)

	case entities.ElementImage:
		return ImageHeight
	}
	return minBoxHeight
}

func tableRowHeight(theme entities.Theme) int64 {
	return lineHeight(theme.BodySize) + 2*CellInset
}

// subHeadingSize scales level 3..6 headings between body and title size
func subHeadingSize(theme entities.Theme, level int) int {
	step := (theme.TitleSize - theme.BodySize) / 4
	return theme.BodySize + max(0, 6-level)*step
}

// columnWidths splits width into n equal columns; the last absorbs the remainder
func columnWidths(width int64, n int) []int64 {
	if n < 1 {
		n = 1
	}
	cols := make([]int64, n)
	each := width / int64(n)
	for i := range cols {
		cols[i] = each
	}
	cols[n-1] += width - each*int64(n)
	return cols
}
