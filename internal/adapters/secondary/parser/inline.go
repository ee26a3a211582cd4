package parser

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

type inlineStyle struct {
	bold, italic, code bool
}

type spanBuilder struct {
	spans []entities.Span
}

func (b *spanBuilder) add(s string, style inlineStyle) {
	if s == "" {
		return
	}
	b.spans = append(b.spans, entities.Span{Text: s, Bold: style.bold, Italic: style.italic, Code: style.code})
}

// inlineText resolves the inline children of a block into styled spans
func inlineText(node ast.Node, source []byte) entities.RichText {
	var b spanBuilder
	appendInline(&b, node, source, inlineStyle{})
	return entities.NormalizeRichText(b.spans).TrimSpace()
}

func appendInline(b *spanBuilder, node ast.Node, source []byte, style inlineStyle) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Text:
			b.add(textValue(n, source), style)
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.add(" ", style)
			}

		case *ast.String:
			b.add(string(n.Value), style)

		case *ast.Emphasis:
			s := style
			if n.Level >= 2 {
				s.bold = true
			} else {
				s.italic = true
			}
			appendInline(b, n, source, s)

		case *ast.CodeSpan:
			s := style
			s.code = true
			b.add(rawText(n, source), s)

		case *ast.AutoLink:
			b.add(string(n.Label(source)), style)

		case *ast.Image:
			b.add("["+plainText(n, source)+"]", style)

		case *east.TaskCheckBox:
			if n.IsChecked {
				b.add("☑ ", style)
			} else {
				b.add("☐ ", style)
			}

		case *ast.RawHTML:
			continue

		default:
			// links, strikethrough and unknown inlines contribute their text
			appendInline(b, n, source, style)
		}
	}
}

// imagesOnly returns one Image block per image when a paragraph holds nothing but images
func imagesOnly(node ast.Node, source []byte) []entities.Block {
	var images []entities.Block
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Image:
			images = append(images, entities.ImageBlock(plainText(n, source), string(n.Destination)))
		case *ast.Text:
			if strings.TrimSpace(string(n.Segment.Value(source))) != "" {
				return nil
			}
		default:
			return nil
		}
	}
	return images
}

// plainText concatenates the unstyled text below node
func plainText(node ast.Node, source []byte) string {
	var sb strings.Builder
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				sb.WriteString(textValue(t, source))
				if t.SoftLineBreak() || t.HardLineBreak() {
					sb.WriteByte(' ')
				}
			case *ast.String:
				sb.Write(t.Value)
			default:
				walk(c)
			}
		}
	}
	walk(node)
	return sb.String()
}

// rawText returns code span content verbatim
func rawText(node ast.Node, source []byte) string {
	var sb strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
	}
	return sb.String()
}

// textValue resolves backslash escapes and character references in a text segment
func textValue(t *ast.Text, source []byte) string {
	v := t.Segment.Value(source)
	if t.IsRaw() {
		return string(v)
	}
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	v = util.ResolveEntityNames(v)
	return string(v)
}
