// Package filesystem discovers markdown inputs on disk and persists
// conversion artifacts.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// markdownExts are the extensions picked up during directory discovery
var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
}

// IsMarkdown reports whether path has a markdown extension
func IsMarkdown(path string) bool {
	return markdownExts[strings.ToLower(filepath.Ext(path))]
}

// Source implements ports.DocumentSource over a ports.FileSystem
type Source struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// SourceOption configures a Source
type SourceOption func(*Source)

// WithSourceFileSystem replaces the real file system
func WithSourceFileSystem(fs ports.FileSystem) SourceOption {
	return func(s *Source) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// WithSourceLogger sets the source logger
func WithSourceLogger(logger ports.Logger) SourceOption {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSource creates a new document source
func NewSource(opts ...SourceOption) *Source {
	s := &Source{
		fs:     ports.NewRealFileSystem(),
		logger: ports.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Discover lists markdown files under root. Without recursive only the
// top level is scanned. Display names use forward slashes.
func (s *Source) Discover(ctx context.Context, root string, recursive bool) ([]ports.DiscoveredFile, error) {
	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", root, err)
	}

	if !info.IsDir() {
		return []ports.DiscoveredFile{{Path: root, Name: filepath.Base(root)}}, nil
	}

	var files []ports.DiscoveredFile
	err = s.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if info.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsMarkdown(path) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}
		files = append(files, ports.DiscoveredFile{Path: path, Name: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	s.logger.Debug("markdown files discovered", "root", root, "count", len(files), "recursive", recursive)
	return files, nil
}

// Load reads every file as UTF-8. A byte order mark is dropped and invalid
// sequences become U+FFFD.
func (s *Source) Load(ctx context.Context, files []ports.DiscoveredFile) ([]entities.SourceDocument, error) {
	docs := make([]entities.SourceDocument, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := s.fs.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Path, err)
		}

		text, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", f.Path, err)
		}

		docs = append(docs, entities.SourceDocument{Name: f.Name, Content: string(text)})
	}
	return docs, nil
}

// Ensure Source implements ports.DocumentSource
var _ ports.DocumentSource = (*Source)(nil)
