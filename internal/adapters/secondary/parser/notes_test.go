package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

func TestNotesComment(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantText string
		wantOK   bool
	}{
		{name: "inline", raw: "<!-- notes: speak slowly -->", wantText: "speak slowly", wantOK: true},
		{name: "upper case", raw: "<!-- NOTES: Pause -->", wantText: "Pause", wantOK: true},
		{name: "multi line", raw: "<!-- notes:\nfirst\nsecond\n-->\n", wantText: "first\nsecond", wantOK: true},
		{name: "region opener", raw: "<!-- NOTES: -->", wantText: "", wantOK: true},
		{name: "plain comment", raw: "<!-- hidden -->", wantOK: false},
		{name: "not a comment", raw: "<p>notes: x</p>", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := notesComment(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantText, text)
		})
	}

	assert.True(t, isEndNotes("<!-- END NOTES -->\n"))
	assert.True(t, isEndNotes("<!--end notes-->"))
	assert.False(t, isEndNotes("<!-- end -->"))
}

func TestGoldmarkExtractor_InlineNotes(t *testing.T) {
	blocks := collect(t, "# Title\n\n<!-- notes: remember the demo -->\n\nbody\n")
	require.Len(t, blocks, 3)

	assert.Equal(t, entities.BlockNotes, blocks[1].Kind)
	assert.Equal(t, "remember the demo", blocks[1].Raw)
	assert.Equal(t, entities.BlockParagraph, blocks[2].Kind)
}

func TestGoldmarkExtractor_NotesRegion(t *testing.T) {
	content := "# Title\n\nshown\n\n<!-- NOTES: -->\n\nSay **hello**\n\n- point one\n  - detail\n\n<!-- END NOTES -->\n\nalso shown\n"
	blocks := collect(t, content)
	require.Len(t, blocks, 4)

	assert.Equal(t, "shown", blocks[1].Text.String())
	assert.Equal(t, entities.BlockNotes, blocks[2].Kind)
	assert.Equal(t, "Say hello\n- point one\n  - detail", blocks[2].Raw)
	assert.Equal(t, "also shown", blocks[3].Text.String())
}

func TestGoldmarkExtractor_NotesRegionRunsToEnd(t *testing.T) {
	blocks := collect(t, "# Title\n\n<!-- NOTES: -->\n\ntrailing notes\n")
	require.Len(t, blocks, 2)
	assert.Equal(t, entities.NotesBlock("trailing notes"), blocks[1])
}

func TestGoldmarkExtractor_EmptyNotesRegion(t *testing.T) {
	blocks := collect(t, "# Title\n\n<!-- NOTES: -->\n\n<!-- END NOTES -->\n")
	require.Len(t, blocks, 1)
	assert.Equal(t, entities.BlockHeading, blocks[0].Kind)
}
