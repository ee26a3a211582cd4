package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// ConfigService resolves the effective configuration for a run
type ConfigService struct {
	loader ports.ConfigLoader
	merger ports.ConfigMerger
	logger ports.Logger
}

// ConfigOption configures a ConfigService
type ConfigOption func(*ConfigService)

// WithConfigLogger sets the service logger
func WithConfigLogger(logger ports.Logger) ConfigOption {
	return func(s *ConfigService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewConfigService creates a new configuration service
func NewConfigService(loader ports.ConfigLoader, merger ports.ConfigMerger, opts ...ConfigOption) *ConfigService {
	s := &ConfigService{
		loader: loader,
		merger: merger,
		logger: ports.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadConfig layers defaults, the global file, the project file in
// workingDir, MDPPTX_* variables (including workingDir/.env) and flags
func (s *ConfigService) LoadConfig(ctx context.Context, workingDir string, flags map[string]interface{}) (*entities.Config, error) {
	defaultConfig := s.GetDefaultConfig()

	globalConfig, err := s.loader.LoadGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	localConfig, err := s.loader.LoadLocal(ctx, workingDir)
	if err != nil {
		return nil, fmt.Errorf("loading local config: %w", err)
	}

	configs := []*entities.Config{defaultConfig}
	if globalConfig != nil {
		s.logger.Debug("global config loaded", "path", s.loader.GetGlobalPath())
		configs = append(configs, globalConfig)
	}
	if localConfig != nil {
		s.logger.Debug("local config loaded", "path", s.loader.GetLocalPath(workingDir))
		configs = append(configs, localConfig)
	}

	mergedConfig := s.merger.Merge(configs...)

	if err := s.loader.LoadEnvFile(ctx, workingDir); err != nil {
		return nil, fmt.Errorf("loading env file: %w", err)
	}
	envConfig := s.merger.ApplyEnvVars(mergedConfig)

	finalConfig := s.merger.ApplyFlags(envConfig, flags)

	if err := s.ValidateConfig(finalConfig); err != nil {
		return nil, fmt.Errorf("final config validation: %w", err)
	}

	return finalConfig, nil
}

// GetDefaultConfig returns the default configuration. A merge of nothing
// yields the adapter's defaults.
func (s *ConfigService) GetDefaultConfig() *entities.Config {
	return s.merger.Merge()
}

// ValidateConfig validates a configuration
func (s *ConfigService) ValidateConfig(config *entities.Config) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}

	return config.Validate()
}

// GlobalPath returns where the global configuration file lives
func (s *ConfigService) GlobalPath() string {
	return s.loader.GetGlobalPath()
}

// CreateGlobalConfig writes the defaults to the global configuration path
func (s *ConfigService) CreateGlobalConfig(ctx context.Context) error {
	globalPath := s.loader.GetGlobalPath()
	if err := s.loader.CreateDefaults(ctx, globalPath); err != nil {
		return err
	}
	s.logger.Info("global config created", "path", globalPath)
	return nil
}

// Ensure ConfigService implements ports.ConfigService
var _ ports.ConfigService = (*ConfigService)(nil)
