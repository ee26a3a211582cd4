package parser

import (
	"bytes"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// GoldmarkExtractor implements the BlockExtractor interface using Goldmark
type GoldmarkExtractor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	logger ports.Logger
}

// Option configures a GoldmarkExtractor
type Option func(*GoldmarkExtractor)

// WithLogger sets the logger used to report recovered input problems
func WithLogger(logger ports.Logger) Option {
	return func(x *GoldmarkExtractor) {
		if logger != nil {
			x.logger = logger
		}
	}
}

// NewGoldmarkExtractor creates a new Goldmark-based block extractor
func NewGoldmarkExtractor(opts ...Option) *GoldmarkExtractor {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // tables, strikethrough, task lists, linkify
		),
	)

	x := &GoldmarkExtractor{
		md:     md,
		policy: bluemonday.StrictPolicy(),
		logger: ports.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Extract splits off front matter, parses the body and returns a lazy block
// sequence. Each range over the sequence walks the document again.
func (x *GoldmarkExtractor) Extract(content []byte) entities.ExtractedDocument {
	content = trimBOM(content)
	if !utf8.Valid(content) {
		x.logger.Debug("invalid UTF-8 replaced", "kind", entities.ErrorParseRecoverable)
		content = bytes.ToValidUTF8(content, []byte("\uFFFD"))
	}

	meta, body := x.splitFrontMatter(content)
	body = norm.NFC.Bytes(body)

	doc := x.md.Parser().Parse(text.NewReader(body))

	return entities.ExtractedDocument{
		Metadata: meta,
		Blocks: func(yield func(entities.Block) bool) {
			x.walkDocument(doc, body, yield)
		},
	}
}

// walkDocument emits the top-level blocks. Blocks between an empty notes
// comment and its end marker are folded into one notes block; a region left
// open runs to the end of the document.
func (x *GoldmarkExtractor) walkDocument(doc ast.Node, source []byte, yield func(entities.Block) bool) {
	var region notesRegion
	collect := func(b entities.Block) bool {
		region.add(b)
		return true
	}

	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		if h, ok := child.(*ast.HTMLBlock); ok {
			raw := htmlBlockRaw(h, source)
			if region.open && isEndNotes(raw) {
				if b, ok := region.flush(); ok && !yield(b) {
					return
				}
				continue
			}
			if text, ok := notesComment(raw); ok && text == "" && !region.open {
				region.open = true
				continue
			}
		}

		if region.open {
			x.emitBlock(child, source, 0, collect)
			continue
		}
		if !x.emitBlock(child, source, 0, yield) {
			return
		}
	}

	if region.open {
		if b, ok := region.flush(); ok {
			yield(b)
		}
	}
}

// walkBlocks emits every child block of node; it returns false once the consumer stops
func (x *GoldmarkExtractor) walkBlocks(node ast.Node, source []byte, depth int, yield func(entities.Block) bool) bool {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if !x.emitBlock(child, source, depth, yield) {
			return false
		}
	}
	return true
}

func (x *GoldmarkExtractor) emitBlock(node ast.Node, source []byte, depth int, yield func(entities.Block) bool) bool {
	switch n := node.(type) {
	case *ast.Heading:
		return yield(entities.HeadingBlock(n.Level, inlineText(n, source)))

	case *ast.Paragraph, *ast.TextBlock:
		if images := imagesOnly(n, source); len(images) > 0 {
			for _, img := range images {
				if !yield(img) {
					return false
				}
			}
			return true
		}
		rt := inlineText(n, source)
		if rt.IsEmpty() {
			return true
		}
		return yield(entities.ParagraphBlock(rt))

	case *ast.List:
		return x.emitList(n, source, depth, yield)

	case *ast.FencedCodeBlock:
		return yield(entities.CodeBlockOf(string(n.Language(source)), blockLines(n, source)))

	case *ast.CodeBlock:
		return yield(entities.CodeBlockOf("", blockLines(n, source)))

	case *ast.Blockquote:
		return yield(entities.QuoteBlock(quoteText(n, source)))

	case *east.Table:
		return x.emitTable(n, source, yield)

	case *ast.HTMLBlock:
		raw := htmlBlockRaw(n, source)
		if text, ok := notesComment(raw); ok {
			if text == "" {
				return true
			}
			return yield(entities.NotesBlock(text))
		}
		if isEndNotes(raw) {
			return true
		}
		plain := x.htmlToText(raw)
		if plain == "" {
			return true
		}
		return yield(entities.ParagraphBlock(entities.Plain(plain)))

	case *ast.ThematicBreak:
		return true

	default:
		return x.walkBlocks(node, source, depth, yield)
	}
}

// emitList yields one ListItem per item; nested lists follow their parent item one level deeper
func (x *GoldmarkExtractor) emitList(list *ast.List, source []byte, depth int, yield func(entities.Block) bool) bool {
	ordered := list.IsOrdered()

	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}

		var parts []entities.RichText
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				parts = append(parts, inlineText(c, source))
			}
		}
		if !yield(entities.ListItemBlock(ordered, depth, joinRichText(parts, " "))) {
			return false
		}

		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch n := c.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				continue
			case *ast.List:
				if !x.emitList(n, source, depth+1, yield) {
					return false
				}
			default:
				if !x.emitBlock(n, source, depth, yield) {
					return false
				}
			}
		}
	}
	return true
}

// emitTable yields the header row and body rows squared to the header width
func (x *GoldmarkExtractor) emitTable(table *east.Table, source []byte, yield func(entities.Block) bool) bool {
	width := len(table.Alignments)

	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		cells := make([]entities.RichText, 0, width)
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, inlineText(cell, source))
		}

		_, isHeader := row.(*east.TableHeader)
		if isHeader && width == 0 {
			width = len(cells)
		}

		if !isHeader && len(cells) != width {
			x.logger.Debug("table row squared to header width",
				"kind", entities.ErrorParseRecoverable, "cells", len(cells), "width", width)
			for len(cells) < width {
				cells = append(cells, entities.RichText{})
			}
			cells = cells[:width]
		}

		if !yield(entities.TableRowBlock(cells, isHeader)) {
			return false
		}
	}
	return true
}

// htmlToText strips every tag from an HTML block and collapses whitespace
func (x *GoldmarkExtractor) htmlToText(raw string) string {
	sanitized := x.policy.Sanitize(raw)
	return strings.Join(strings.Fields(html.UnescapeString(sanitized)), " ")
}

// quoteText joins the text of every leaf block inside a quote with newlines
func quoteText(quote ast.Node, source []byte) entities.RichText {
	var parts []entities.RichText

	var collect func(node ast.Node)
	collect = func(node ast.Node) {
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			switch n := c.(type) {
			case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
				if rt := inlineText(n, source); !rt.IsEmpty() {
					parts = append(parts, rt)
				}
			case *ast.FencedCodeBlock, *ast.CodeBlock:
				parts = append(parts, entities.RichText{{Text: blockLines(n, source), Code: true}})
			case *ast.ThematicBreak, *ast.HTMLBlock:
				continue
			default:
				collect(n)
			}
		}
	}
	collect(quote)

	return joinRichText(parts, "\n")
}

// blockLines concatenates the raw lines of a block without the final newline
func blockLines(node ast.Node, source []byte) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimRight(sb.String(), "\r\n")
}

func joinRichText(parts []entities.RichText, sep string) entities.RichText {
	var spans []entities.Span
	for i, p := range parts {
		if i > 0 {
			spans = append(spans, entities.Span{Text: sep})
		}
		spans = append(spans, p...)
	}
	return entities.NormalizeRichText(spans)
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}

// Ensure GoldmarkExtractor implements ports.BlockExtractor
var _ ports.BlockExtractor = (*GoldmarkExtractor)(nil)
