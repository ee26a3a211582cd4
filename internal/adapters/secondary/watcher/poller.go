package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// PollingWatcher implements file watching using polling. Watched paths may
// be files or directories; directories are rescanned every tick so new
// inputs are picked up.
type PollingWatcher struct {
	interval  time.Duration
	debounce  time.Duration
	clock     ports.TimeProvider
	logger    ports.Logger
	filter    func(path string) bool
	recursive bool

	mu       sync.Mutex
	roots    []string
	snapshot map[string]FileInfo
	started  bool

	events   chan ports.FileChangeEvent
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// FileInfo stores information about a file
type FileInfo struct {
	Size     int64
	ModTime  time.Time
	Checksum string
}

// Option configures a PollingWatcher
type Option func(*PollingWatcher)

// WithClock replaces the real time provider
func WithClock(clock ports.TimeProvider) Option {
	return func(w *PollingWatcher) {
		if clock != nil {
			w.clock = clock
		}
	}
}

// WithLogger sets the watcher logger
func WithLogger(logger ports.Logger) Option {
	return func(w *PollingWatcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithFilter restricts files found under watched directories. Explicitly
// watched files are always tracked.
func WithFilter(filter func(path string) bool) Option {
	return func(w *PollingWatcher) {
		w.filter = filter
	}
}

// WithRecursive descends into sub-directories of watched directories
func WithRecursive(recursive bool) Option {
	return func(w *PollingWatcher) {
		w.recursive = recursive
	}
}

// NewPollingWatcher creates a new polling-based file watcher
func NewPollingWatcher(interval, debounce time.Duration, opts ...Option) *PollingWatcher {
	w := &PollingWatcher{
		interval: interval,
		debounce: debounce,
		clock:    ports.NewRealTimeProvider(),
		logger:   ports.NewNoOpLogger(),
		filter:   func(string) bool { return true },
		snapshot: make(map[string]FileInfo),
		events:   make(chan ports.FileChangeEvent, 16),
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch starts polling paths. It may be called once per watcher; the
// returned channel is closed when ctx ends or Stop is called.
func (w *PollingWatcher) Watch(ctx context.Context, paths ...string) (<-chan ports.FileChangeEvent, error) {
	if len(paths) == 0 {
		return nil, errors.New("no paths to watch")
	}

	roots := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}
		if _, err := os.Stat(abs); err != nil {
			return nil, fmt.Errorf("initial scan: %w", err)
		}
		roots = append(roots, abs)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return nil, errors.New("watcher already started")
	}
	w.roots = roots

	current, err := w.scan()
	if err != nil {
		return nil, fmt.Errorf("initial scan: %w", err)
	}
	for path, info := range current {
		sum, err := calculateChecksum(path)
		if err != nil {
			return nil, fmt.Errorf("initial scan: %w", err)
		}
		info.Checksum = sum
		w.snapshot[path] = info
	}
	w.started = true

	w.logger.Debug("watching inputs", "roots", len(roots), "files", len(w.snapshot), "interval", w.interval)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer close(w.events)
		w.pollLoop(ctx)
	}()

	return w.events, nil
}

// Stop stops the file watcher and waits for the poll loop to exit
func (w *PollingWatcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	w.wg.Wait()
	return nil
}

// pollLoop diffs the watched tree every tick. Changes are held until no
// new change was seen for the debounce period, then delivered sorted by path.
func (w *PollingWatcher) pollLoop(ctx context.Context) {
	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	pending := make(map[string]ports.ChangeType)
	var lastChange time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C():
			changes, err := w.checkForChanges()
			if err != nil {
				w.logger.Warn("watch error", "error", err)
				continue
			}
			if len(changes) > 0 {
				for path, kind := range changes {
					if prev, ok := pending[path]; ok && prev == ports.Created && kind == ports.Modified {
						continue
					}
					pending[path] = kind
				}
				lastChange = w.clock.Now()
			}

			if len(pending) == 0 || w.clock.Since(lastChange) < w.debounce {
				continue
			}

			if !w.flush(ctx, pending) {
				return
			}
			pending = make(map[string]ports.ChangeType)
		}
	}
}

func (w *PollingWatcher) flush(ctx context.Context, pending map[string]ports.ChangeType) bool {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	now := w.clock.Now()
	for _, p := range paths {
		event := ports.FileChangeEvent{Path: p, Type: pending[p], Timestamp: now}
		select {
		case w.events <- event:
		case <-ctx.Done():
			return false
		case <-w.stopCh:
			return false
		}
	}
	return true
}

// scan stats every tracked file without hashing
func (w *PollingWatcher) scan() (map[string]FileInfo, error) {
	out := make(map[string]FileInfo)

	for _, root := range w.roots {
		info, err := os.Stat(root)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			out[root] = FileInfo{Size: info.Size(), ModTime: info.ModTime()}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && !w.recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if !w.filter(path) {
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				return err
			}
			out[path] = FileInfo{Size: fi.Size(), ModTime: fi.ModTime()}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
	}

	return out, nil
}

// checkForChanges compares a fresh scan with the snapshot. Checksums are
// only computed when size or modification time moved.
func (w *PollingWatcher) checkForChanges() (map[string]ports.ChangeType, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	current, err := w.scan()
	if err != nil {
		return nil, err
	}

	changes := make(map[string]ports.ChangeType)
	for path, info := range current {
		old, exists := w.snapshot[path]

		if exists && old.Size == info.Size && old.ModTime.Equal(info.ModTime) {
			current[path] = old
			continue
		}

		sum, err := calculateChecksum(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				delete(current, path)
				continue
			}
			return nil, fmt.Errorf("calculate checksum: %w", err)
		}
		info.Checksum = sum
		current[path] = info

		switch {
		case !exists:
			changes[path] = ports.Created
		case old.Checksum != sum:
			changes[path] = ports.Modified
		}
	}

	for path := range w.snapshot {
		if _, ok := current[path]; !ok {
			changes[path] = ports.Deleted
		}
	}

	w.snapshot = current
	return changes, nil
}

// calculateChecksum calculates SHA256 checksum of a file
func calculateChecksum(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 - path comes from the watched tree
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// Ensure PollingWatcher implements ports.FileWatcher
var _ ports.FileWatcher = (*PollingWatcher)(nil)
