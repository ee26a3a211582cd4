package entities

import (
	"fmt"
	"iter"
	"strings"
)

// Span is a run of text sharing one set of inline style flags
type Span struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	Code   bool   `json:"code,omitempty"`
}

// sameStyle reports whether two spans carry identical style flags
func (s Span) sameStyle(other Span) bool {
	return s.Bold == other.Bold && s.Italic == other.Italic && s.Code == other.Code
}

// RichText is an ordered sequence of styled spans
type RichText []Span

// Plain builds an unstyled RichText from a string
func Plain(text string) RichText {
	return RichText{{Text: text}}
}

// NormalizeRichText merges adjacent spans with equal style and drops empty spans.
// A fully empty input yields an empty (non-nil) RichText.
func NormalizeRichText(spans []Span) RichText {
	out := make(RichText, 0, len(spans))
	for _, span := range spans {
		if span.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].sameStyle(span) {
			out[n-1].Text += span.Text
			continue
		}
		out = append(out, span)
	}
	return out
}

// String returns the concatenated text of all spans
func (r RichText) String() string {
	var sb strings.Builder
	for _, span := range r {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// IsEmpty returns true if the text is empty after trimming whitespace
func (r RichText) IsEmpty() bool {
	return strings.TrimSpace(r.String()) == ""
}

// TrimSpace trims leading whitespace of the first span and trailing whitespace of the last span
func (r RichText) TrimSpace() RichText {
	out := append(RichText(nil), r...)
	for len(out) > 0 {
		out[0].Text = strings.TrimLeft(out[0].Text, " \t\r\n")
		if out[0].Text != "" {
			break
		}
		out = out[1:]
	}
	for len(out) > 0 {
		last := len(out) - 1
		out[last].Text = strings.TrimRight(out[last].Text, " \t\r\n")
		if out[last].Text != "" {
			break
		}
		out = out[:last]
	}
	if out == nil {
		out = RichText{}
	}
	return out
}

// BlockKind identifies the variant carried by a Block
type BlockKind int

const (
	BlockHeading BlockKind = iota + 1
	BlockParagraph
	BlockListItem
	BlockCode
	BlockTableRow
	BlockQuote
	BlockImage
	BlockNotes
)

// String returns the block kind name
func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	case BlockListItem:
		return "list_item"
	case BlockCode:
		return "code"
	case BlockTableRow:
		return "table_row"
	case BlockQuote:
		return "quote"
	case BlockImage:
		return "image"
	case BlockNotes:
		return "notes"
	default:
		return fmt.Sprintf("block(%d)", int(k))
	}
}

// Block is one structural unit extracted from a markdown document.
// Only the fields relevant to Kind are populated; use the constructors.
type Block struct {
	Kind BlockKind

	// Heading
	Level int

	// Heading, Paragraph, ListItem, Quote
	Text RichText

	// ListItem
	Ordered bool
	Depth   int

	// Code, Notes
	Language string
	Raw      string

	// TableRow
	Cells    []RichText
	IsHeader bool

	// Image
	Alt string
	Src string
}

// HeadingBlock creates a heading block; levels outside 1..6 are clamped
func HeadingBlock(level int, text RichText) Block {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Block{Kind: BlockHeading, Level: level, Text: text}
}

// ParagraphBlock creates a paragraph block
func ParagraphBlock(text RichText) Block {
	return Block{Kind: BlockParagraph, Text: text}
}

// ListItemBlock creates a list item block
func ListItemBlock(ordered bool, depth int, text RichText) Block {
	if depth < 0 {
		depth = 0
	}
	return Block{Kind: BlockListItem, Ordered: ordered, Depth: depth, Text: text}
}

// CodeBlockOf creates a code block. An empty language means none was given.
func CodeBlockOf(language, raw string) Block {
	return Block{Kind: BlockCode, Language: language, Raw: raw}
}

// TableRowBlock creates a table row block
func TableRowBlock(cells []RichText, isHeader bool) Block {
	return Block{Kind: BlockTableRow, Cells: cells, IsHeader: isHeader}
}

// QuoteBlock creates a block quote block
func QuoteBlock(text RichText) Block {
	return Block{Kind: BlockQuote, Text: text}
}

// ImageBlock creates an image reference block
func ImageBlock(alt, src string) Block {
	return Block{Kind: BlockImage, Alt: alt, Src: src}
}

// NotesBlock creates a speaker notes block attached to the surrounding slide
func NotesBlock(text string) Block {
	return Block{Kind: BlockNotes, Raw: text}
}

// IsSlideBoundary returns true for headings that open a new slide
func (b Block) IsSlideBoundary() bool {
	return b.Kind == BlockHeading && b.Level <= 2
}

// BlockSequence is a lazy, restartable stream of blocks in source order
type BlockSequence = iter.Seq[Block]

// BlocksOf adapts a slice into a BlockSequence
func BlocksOf(blocks ...Block) BlockSequence {
	return func(yield func(Block) bool) {
		for _, b := range blocks {
			if !yield(b) {
				return
			}
		}
	}
}

// DocumentMetadata holds document-level properties taken from front matter
type DocumentMetadata struct {
	Title    string   `yaml:"title" json:"title,omitempty"`
	Author   string   `yaml:"author" json:"author,omitempty"`
	Subject  string   `yaml:"subject" json:"subject,omitempty"`
	Keywords []string `yaml:"keywords" json:"keywords,omitempty"`
	Template string   `yaml:"template" json:"template,omitempty"`
}

// IsZero returns true when no metadata field is set
func (m DocumentMetadata) IsZero() bool {
	return m.Title == "" && m.Author == "" && m.Subject == "" && len(m.Keywords) == 0 && m.Template == ""
}

// ExtractedDocument is the result of block extraction for one source document
type ExtractedDocument struct {
	Metadata DocumentMetadata
	Blocks   BlockSequence
}
