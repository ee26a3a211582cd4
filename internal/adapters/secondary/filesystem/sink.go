package filesystem

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// Sink writes artifacts atomically. Every artifact is first staged to a
// temp file beside its destination; only when all are staged are they
// renamed into place.
type Sink struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// SinkOption configures a Sink
type SinkOption func(*Sink)

// WithSinkFileSystem replaces the real file system
func WithSinkFileSystem(fs ports.FileSystem) SinkOption {
	return func(s *Sink) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// WithSinkLogger sets the sink logger
func WithSinkLogger(logger ports.Logger) SinkOption {
	return func(s *Sink) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSink creates a new artifact sink
func NewSink(opts ...SinkOption) *Sink {
	s := &Sink{
		fs:     ports.NewRealFileSystem(),
		logger: ports.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type staged struct {
	temp   string
	target string
}

// Persist writes each artifact to dest/<artifact name>
func (s *Sink) Persist(ctx context.Context, dest string, artifacts []entities.Artifact) error {
	var pending []staged

	rollback := func() {
		for _, st := range pending {
			if err := s.fs.Remove(st.temp); err != nil {
				s.logger.Warn("removing staged file failed", "path", st.temp, "error", err)
			}
		}
	}

	for _, artifact := range artifacts {
		if err := ctx.Err(); err != nil {
			rollback()
			return entities.PersistenceError("persist cancelled", err)
		}

		target, err := targetPath(dest, artifact.Name)
		if err != nil {
			rollback()
			return entities.PersistenceError(fmt.Sprintf("invalid artifact name %q", artifact.Name), err)
		}

		temp, err := s.stage(target, artifact.Data)
		if temp != "" {
			pending = append(pending, staged{temp: temp, target: target})
		}
		if err != nil {
			rollback()
			return entities.PersistenceError("staging "+target, err)
		}
	}

	for i, st := range pending {
		if err := s.fs.Rename(st.temp, st.target); err != nil {
			pending = pending[i:]
			rollback()
			return entities.PersistenceError("committing "+st.target, err)
		}
		s.logger.Debug("artifact written", "path", st.target)
	}

	return nil
}

// stage writes data to a temp file in target's directory. The temp path is
// returned whenever the file was created, even on failure.
func (s *Sink) stage(target string, data []byte) (string, error) {
	dir := filepath.Dir(target)
	if err := s.fs.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	f, err := s.fs.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	temp := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return temp, fmt.Errorf("writing %s: %w", temp, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return temp, fmt.Errorf("syncing %s: %w", temp, err)
	}
	if err := f.Close(); err != nil {
		return temp, fmt.Errorf("closing %s: %w", temp, err)
	}
	return temp, nil
}

// targetPath joins dest and a slash separated artifact name, refusing names
// that leave dest
func targetPath(dest, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if name == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.New("artifact name must be relative to the output directory")
	}
	return filepath.Join(dest, clean), nil
}

// Ensure Sink implements ports.ArtifactSink
var _ ports.ArtifactSink = (*Sink)(nil)
