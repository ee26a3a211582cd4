package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
)

// entryTime is stamped on every archive entry so output does not depend on the clock
var entryTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// writeArchive streams entries into a ZIP container in the given order
func writeArchive(entries []entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: entryTime,
		})
		if err != nil {
			return nil, fmt.Errorf("creating archive entry %s: %w", e.name, err)
		}
		if _, err := w.Write(e.body); err != nil {
			return nil, fmt.Errorf("writing archive entry %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}
