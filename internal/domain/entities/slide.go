package entities

import (
	"errors"
	"fmt"
)

// ElementKind identifies the variant carried by a SlideElement
type ElementKind int

const (
	ElementSubHeading ElementKind = iota + 1
	ElementBulletList
	ElementNumberedList
	ElementCode
	ElementTable
	ElementQuote
	ElementParagraph
	ElementImage
)

// String returns the element kind name
func (k ElementKind) String() string {
	switch k {
	case ElementSubHeading:
		return "sub_heading"
	case ElementBulletList:
		return "bullet_list"
	case ElementNumberedList:
		return "numbered_list"
	case ElementCode:
		return "code"
	case ElementTable:
		return "table"
	case ElementQuote:
		return "quote"
	case ElementParagraph:
		return "paragraph"
	case ElementImage:
		return "image"
	default:
		return fmt.Sprintf("element(%d)", int(k))
	}
}

// ListItem is one entry of a bullet or numbered list
type ListItem struct {
	Text    RichText `json:"text"`
	Depth   int      `json:"depth"`
	Ordered bool     `json:"ordered"`
}

// SlideElement is one renderable unit of slide content.
// Only the fields relevant to Kind are populated.
type SlideElement struct {
	Kind ElementKind `json:"kind"`

	// SubHeading, Quote, Paragraph
	Text  RichText `json:"text,omitempty"`
	Level int      `json:"level,omitempty"`

	// BulletList, NumberedList
	Items []ListItem `json:"items,omitempty"`

	// Code
	Language string `json:"language,omitempty"`
	Code     string `json:"code,omitempty"`

	// Table; HeaderRow is -1 for headerless tables
	Rows      [][]RichText `json:"rows,omitempty"`
	HeaderRow int          `json:"header_row"`

	// ImagePlaceholder
	Alt string `json:"alt,omitempty"`
	Src string `json:"src,omitempty"`
}

// SubHeading creates a sub-heading element for headings of level 3..6
func SubHeading(level int, text RichText) SlideElement {
	return SlideElement{Kind: ElementSubHeading, Level: level, Text: text, HeaderRow: -1}
}

// Paragraph creates a paragraph element
func Paragraph(text RichText) SlideElement {
	return SlideElement{Kind: ElementParagraph, Text: text, HeaderRow: -1}
}

// Quote creates a quote element
func Quote(text RichText) SlideElement {
	return SlideElement{Kind: ElementQuote, Text: text, HeaderRow: -1}
}

// BulletList creates an unordered list element
func BulletList(items ...ListItem) SlideElement {
	return SlideElement{Kind: ElementBulletList, Items: items, HeaderRow: -1}
}

// NumberedList creates an ordered list element
func NumberedList(items ...ListItem) SlideElement {
	return SlideElement{Kind: ElementNumberedList, Items: items, HeaderRow: -1}
}

// CodeElement creates a code block element
func CodeElement(language, code string) SlideElement {
	return SlideElement{Kind: ElementCode, Language: language, Code: code, HeaderRow: -1}
}

// Table creates a table element; headerRow is -1 when the table has no header
func Table(rows [][]RichText, headerRow int) SlideElement {
	return SlideElement{Kind: ElementTable, Rows: rows, HeaderRow: headerRow}
}

// ImagePlaceholder creates an image placeholder element
func ImagePlaceholder(alt, src string) SlideElement {
	return SlideElement{Kind: ElementImage, Alt: alt, Src: src, HeaderRow: -1}
}

// IsList returns true for bullet and numbered lists
func (e SlideElement) IsList() bool {
	return e.Kind == ElementBulletList || e.Kind == ElementNumberedList
}

// Columns returns the table width (widest row)
func (e SlideElement) Columns() int {
	width := 0
	for _, row := range e.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Slide is one slide of the deck
type Slide struct {
	// Title is nil for untitled slides
	Title *RichText `json:"title,omitempty"`

	// Elements contains the slide content in source order
	Elements []SlideElement `json:"elements"`

	// SourceOrder is the 0-based position of the slide within its source document
	SourceOrder int `json:"source_order"`

	// Source is the display name of the document the slide came from
	Source string `json:"source,omitempty"`

	// Notes holds the speaker notes, one paragraph per line
	Notes string `json:"notes,omitempty"`
}

// HasTitle returns true if the slide was opened by a title-bearing heading
func (s *Slide) HasTitle() bool {
	return s.Title != nil
}

// TitleText returns the plain title text, empty for untitled slides
func (s *Slide) TitleText() string {
	if s.Title == nil {
		return ""
	}
	return s.Title.String()
}

// Validate ensures the slide model is well formed
func (s *Slide) Validate() error {
	if s.SourceOrder < 0 {
		return errors.New("slide source order must be non-negative")
	}

	for i, el := range s.Elements {
		if el.Kind < ElementSubHeading || el.Kind > ElementImage {
			return fmt.Errorf("element %d has unknown kind %d", i, int(el.Kind))
		}
		if el.Kind == ElementTable {
			if len(el.Rows) == 0 {
				return fmt.Errorf("element %d: table has no rows", i)
			}
			if el.HeaderRow >= len(el.Rows) {
				return fmt.Errorf("element %d: header row %d out of range", i, el.HeaderRow)
			}
			width := len(el.Rows[0])
			for r, row := range el.Rows {
				if len(row) != width {
					return fmt.Errorf("element %d: table row %d has %d cells, want %d", i, r, len(row), width)
				}
			}
		}
	}

	return nil
}

// SlideLayout is the shape pattern a slide uses; one layout part exists per pattern in use
type SlideLayout int

const (
	LayoutTitleOnly SlideLayout = iota
	LayoutTitleContent
	LayoutBlank
)

// String returns the layout name written to the layout part
func (l SlideLayout) String() string {
	switch l {
	case LayoutTitleOnly:
		return "Title Only"
	case LayoutTitleContent:
		return "Title and Content"
	default:
		return "Blank"
	}
}

// Layout derives the slide's shape pattern from its title and content
func (s *Slide) Layout() SlideLayout {
	switch {
	case s.Title != nil && len(s.Elements) > 0:
		return LayoutTitleContent
	case s.Title != nil:
		return LayoutTitleOnly
	default:
		return LayoutBlank
	}
}
