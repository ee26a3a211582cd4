package ports

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// DocumentSource discovers markdown inputs
type DocumentSource interface {
	// Discover returns the markdown files under root sorted by display name.
	// A file root is returned as-is.
	Discover(ctx context.Context, root string, recursive bool) ([]DiscoveredFile, error)

	// Load reads discovered files into source documents
	Load(ctx context.Context, files []DiscoveredFile) ([]entities.SourceDocument, error)
}

// DiscoveredFile is one markdown input on disk
type DiscoveredFile struct {
	// Path is the filesystem path
	Path string

	// Name is the display name relative to the discovery root
	Name string
}

// ArtifactSink persists conversion output
type ArtifactSink interface {
	// Persist writes every artifact under dest or none of them
	Persist(ctx context.Context, dest string, artifacts []entities.Artifact) error
}

//go:generate mockery --name FileSystem --output ../../../test/mocks --outpkg mocks

// FileSystem abstracts file system operations for testability
type FileSystem interface {
	// File operations
	Open(name string) (File, error)
	Create(name string) (File, error)
	Remove(name string) error
	RemoveAll(path string) error

	// Directory operations
	MkdirAll(path string, perm os.FileMode) error

	// File information
	Stat(name string) (os.FileInfo, error)
	Exists(path string) bool

	// File content operations
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm os.FileMode) error

	// Temporary files
	CreateTemp(dir, pattern string) (File, error)

	// Path operations
	Rename(oldpath, newpath string) error
	Walk(root string, walkFn func(path string, info os.FileInfo, err error) error) error
}

// File abstracts file operations for testability
type File interface {
	io.ReadWriter
	io.Closer
	io.Seeker

	Name() string
	Stat() (os.FileInfo, error)
	Sync() error
	Truncate(size int64) error
	Chmod(mode os.FileMode) error
}

// RealFileSystem implements FileSystem using actual OS operations
type RealFileSystem struct{}

// NewRealFileSystem creates a new real file system implementation
func NewRealFileSystem() FileSystem {
	return &RealFileSystem{}
}

// Open opens a file for reading
func (fs *RealFileSystem) Open(name string) (File, error) {
	// #nosec G304 - File paths are controlled by the application for reading markdown inputs
	// This filesystem interface is used for legitimate file operations in a CLI tool
	return os.Open(name)
}

// Create creates a file for writing
func (fs *RealFileSystem) Create(name string) (File, error) {
	// #nosec G304 - File paths are controlled by the application for creating output files
	// This filesystem interface is used for legitimate file operations in a CLI tool
	return os.Create(name)
}

// Remove removes a file
func (fs *RealFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// RemoveAll removes a directory and all its contents
func (fs *RealFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// MkdirAll creates a directory and all parent directories
func (fs *RealFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Stat returns file information
func (fs *RealFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Exists checks if a file or directory exists
func (fs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads the entire file content
func (fs *RealFileSystem) ReadFile(filename string) ([]byte, error) {
	// #nosec G304 - File paths are controlled by the application for reading configuration and markdown files
	// This filesystem interface is used for legitimate file operations in a CLI tool
	return os.ReadFile(filename)
}

// WriteFile writes data to a file
func (fs *RealFileSystem) WriteFile(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}

// CreateTemp creates a temporary file
func (fs *RealFileSystem) CreateTemp(dir, pattern string) (File, error) {
	return os.CreateTemp(dir, pattern)
}

// Rename moves a file, replacing the destination
func (fs *RealFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Walk walks the file tree
func (fs *RealFileSystem) Walk(root string, walkFn func(path string, info os.FileInfo, err error) error) error {
	return filepath.Walk(root, walkFn)
}

// FileOpener hands a written file to the desktop application registered for it
type FileOpener interface {
	Open(path string) error
}
