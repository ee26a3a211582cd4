package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// localNames are the project configuration files, in lookup order
var localNames = []string{"mdpptx.toml", "mdpptx.yaml", "mdpptx.yml"}

// FileLoader implements the ConfigLoader interface over TOML and YAML files
type FileLoader struct {
	globalPath string
	localNames []string
	envName    string
}

// NewFileLoader creates a loader for ~/.config/mdpptx/config.toml and the
// project files next to the inputs
func NewFileLoader() *FileLoader {
	homeDir, _ := os.UserHomeDir()
	return NewFileLoaderAt(filepath.Join(homeDir, ".config", "mdpptx", "config.toml"))
}

// NewFileLoaderAt creates a loader with an explicit global config path
func NewFileLoaderAt(globalPath string) *FileLoader {
	return &FileLoader{
		globalPath: globalPath,
		localNames: localNames,
		envName:    ".env",
	}
}

// LoadGlobal loads the global configuration file
func (l *FileLoader) LoadGlobal(ctx context.Context) (*entities.Config, error) {
	if !fileExists(l.globalPath) {
		return nil, nil
	}
	return l.loadConfig(l.globalPath)
}

// LoadLocal loads the first project configuration file found in dir
func (l *FileLoader) LoadLocal(ctx context.Context, dir string) (*entities.Config, error) {
	for _, name := range l.localNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return l.loadConfig(path)
		}
	}
	return nil, nil // Local config is optional
}

// LoadEnvFile loads dir/.env when present
func (l *FileLoader) LoadEnvFile(ctx context.Context, dir string) error {
	path := filepath.Join(dir, l.envName)
	if !fileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// CreateDefaults creates a default configuration file at the specified path
func (l *FileLoader) CreateDefaults(ctx context.Context, path string) error {
	if err := ensureConfigDir(path); err != nil {
		return err
	}

	file, err := os.Create(path) // #nosec G304 - path is the configured global config path
	if err != nil {
		return fmt.Errorf("creating config file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	encoder := toml.NewEncoder(file)
	encoder.Indent = "  "

	if err := encoder.Encode(GetDefaultConfig()); err != nil {
		return fmt.Errorf("encoding config to %s: %w", path, err)
	}

	return nil
}

// GetGlobalPath returns the path to the global configuration file
func (l *FileLoader) GetGlobalPath() string {
	return l.globalPath
}

// GetLocalPath returns the existing project config in dir, or the TOML
// name when there is none
func (l *FileLoader) GetLocalPath(dir string) string {
	for _, name := range l.localNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return filepath.Join(dir, l.localNames[0])
}

// loadConfig decodes a TOML or YAML file by extension and validates it
func (l *FileLoader) loadConfig(path string) (*entities.Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is from controlled sources (global/local config)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var config entities.Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parsing YAML from %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parsing TOML from %s: %w", path, err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}

	return &config, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ensureConfigDir ensures the configuration directory exists
func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)

	// 0750 = owner and group only
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	return nil
}

// Ensure FileLoader implements ports.ConfigLoader
var _ ports.ConfigLoader = (*FileLoader)(nil)
