package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

func TestInspector_RoundTrip(t *testing.T) {
	deck := sampleDeck()
	deck.Metadata.Title = "Quarterly"

	data, err := NewAssembler(pinned()).Assemble(context.Background(), deck, resolveTheme(t, "minimal"))
	require.NoError(t, err)

	report, err := NewInspector().Inspect(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	assert.Equal(t, "Quarterly", report.Title)
	assert.Equal(t, "Ada & Co", report.Author)
	assert.Equal(t, pinnedID, report.Identifier)
	assert.Equal(t, 26, report.PartCount)
	require.Len(t, report.Slides, 4)

	assert.Equal(t, 1, report.Slides[0].Number)
	assert.Equal(t, "Intro", report.Slides[0].Title)
	assert.Equal(t, []string{"Hello <world>"}, report.Slides[0].Text)
	assert.Equal(t, "Title and Content", report.Slides[0].Layout)

	assert.Equal(t, []string{"a", "b"}, report.Slides[1].Text)
	assert.Equal(t, "", report.Slides[2].Title)
	assert.Equal(t, []string{"[Image: logo]"}, report.Slides[2].Text)
	assert.Equal(t, "Blank", report.Slides[2].Layout)
	assert.Equal(t, "Title Only", report.Slides[3].Layout)
	assert.Equal(t, "ppt/slides/slide4.xml", report.Slides[3].Part)
}

func TestInspector_Rejects(t *testing.T) {
	build := func(entries ...entry) []byte {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		for _, e := range entries {
			w, err := zw.Create(e.name)
			require.NoError(t, err)
			_, err = w.Write(e.body)
			require.NoError(t, err)
		}
		require.NoError(t, zw.Close())
		return buf.Bytes()
	}

	manifest := []byte(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="r"/><Default Extension="xml" ContentType="x"/></Types>`)

	tests := []struct {
		name     string
		data     []byte
		wantPart string
	}{
		{
			name:     "manifest not first",
			data:     build(entry{"_rels/.rels", []byte(`<Relationships/>`)}, entry{contentTypesPath, manifest}),
			wantPart: contentTypesPath,
		},
		{
			name: "dangling relationship",
			data: build(
				entry{contentTypesPath, manifest},
				entry{"_rels/.rels", []byte(`<Relationships><Relationship Id="rId1" Type="t" Target="ppt/presentation.xml"/></Relationships>`)},
			),
			wantPart: "_rels/.rels",
		},
		{
			name: "undeclared content type",
			data: build(
				entry{contentTypesPath, manifest},
				entry{"media/image1.png", []byte("png")},
			),
			wantPart: "media/image1.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInspector().Inspect(bytes.NewReader(tt.data), int64(len(tt.data)))
			require.Error(t, err)

			var ce *entities.ConvertError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.wantPart, ce.PartPath)
		})
	}
}

func TestInspector_NotAnArchive(t *testing.T) {
	data := []byte("plain text")
	_, err := NewInspector().Inspect(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening archive")
}

func TestSourceOfRels(t *testing.T) {
	assert.Equal(t, "", sourceOfRels("_rels/.rels"))
	assert.Equal(t, "ppt/presentation.xml", sourceOfRels("ppt/_rels/presentation.xml.rels"))
	assert.Equal(t, "ppt/slides/slide2.xml", sourceOfRels("ppt/slides/_rels/slide2.xml.rels"))
}
