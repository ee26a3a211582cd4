package parser

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

var (
	// <!-- notes: text --> carries the notes inside the comment
	inlineNotes = regexp.MustCompile(`(?is)^<!--\s*notes\s*:(.*?)-->\s*$`)

	// <!-- END NOTES --> closes a notes region opened by an empty notes comment
	endNotes = regexp.MustCompile(`(?is)^<!--\s*end\s+notes\s*-->\s*$`)
)

// notesComment classifies an HTML block. It returns the inline notes text
// and whether the block is a notes marker at all; an empty text opens a region.
func notesComment(raw string) (text string, ok bool) {
	m := inlineNotes.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func isEndNotes(raw string) bool {
	return endNotes.MatchString(strings.TrimSpace(raw))
}

func htmlBlockRaw(n *ast.HTMLBlock, source []byte) string {
	raw := blockLines(n, source)
	if n.HasClosure() {
		raw += "\n" + string(n.ClosureLine.Value(source))
	}
	return raw
}

// notesText renders a block as the plain text written to a notes page
func notesText(b entities.Block) string {
	switch b.Kind {
	case entities.BlockCode, entities.BlockNotes:
		return b.Raw
	case entities.BlockListItem:
		return strings.Repeat("  ", b.Depth) + "- " + b.Text.String()
	case entities.BlockTableRow:
		cells := make([]string, len(b.Cells))
		for i, c := range b.Cells {
			cells[i] = c.String()
		}
		return strings.Join(cells, " | ")
	case entities.BlockImage:
		return b.Alt
	default:
		return b.Text.String()
	}
}

// notesRegion collects the blocks of a notes region until its end marker
type notesRegion struct {
	open  bool
	lines []string
}

func (r *notesRegion) add(b entities.Block) {
	text := strings.TrimRight(notesText(b), " \t\r\n")
	if strings.TrimSpace(text) != "" {
		r.lines = append(r.lines, text)
	}
}

// flush closes the region and returns its notes block, if any
func (r *notesRegion) flush() (entities.Block, bool) {
	text := strings.Join(r.lines, "\n")
	r.open = false
	r.lines = nil
	if strings.TrimSpace(text) == "" {
		return entities.Block{}, false
	}
	return entities.NotesBlock(text), true
}
