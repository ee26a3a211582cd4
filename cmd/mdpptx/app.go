package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/config"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/filesystem"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/logging"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/monitoring"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/opener"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/parser"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/theme"
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
	"github.com/fredcamaral/mdpptx/internal/domain/services"
)

// app holds the wired components shared by the commands
type app struct {
	config    *entities.Config
	logs      *logging.Provider
	logger    ports.Logger
	themes    *theme.Resolver
	assembler *pptx.Assembler
	converter *services.ConversionService
	source    *filesystem.Source
	sink      *filesystem.Sink
	monitor   *monitoring.Monitor
	opener    ports.FileOpener
}

// stringFlags, boolFlags and intFlags list the flags forwarded to the
// config merger when set on the command line
var (
	stringFlags = []string{config.FlagTemplate, config.FlagHost, config.FlagLogFormat}
	boolFlags   = []string{config.FlagRecursive, config.FlagSeparate, config.FlagAllowEmpty, config.FlagFallbackTitles, config.FlagVerbose}
	intFlags    = []string{config.FlagWorkers, config.FlagPort}
)

// collectFlags returns the values of flags the user explicitly set
func collectFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	fs := cmd.Flags()

	for _, name := range stringFlags {
		if f := fs.Lookup(name); f != nil && f.Changed {
			if v, err := fs.GetString(name); err == nil {
				flags[name] = v
			}
		}
	}
	for _, name := range boolFlags {
		if f := fs.Lookup(name); f != nil && f.Changed {
			if v, err := fs.GetBool(name); err == nil {
				flags[name] = v
			}
		}
	}
	for _, name := range intFlags {
		if f := fs.Lookup(name); f != nil && f.Changed {
			if v, err := fs.GetInt(name); err == nil {
				flags[name] = v
			}
		}
	}

	return flags
}

// newConfigService builds the config service honoring --config
func newConfigService(cmd *cobra.Command, logger ports.Logger) *services.ConfigService {
	loader := config.NewFileLoader()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loader = config.NewFileLoaderAt(path)
	}
	return services.NewConfigService(loader, config.NewConfigMerger(), services.WithConfigLogger(logger))
}

// loadConfig resolves the effective configuration for a command whose
// project files live in workingDir
func loadConfig(cmd *cobra.Command, workingDir string) (*entities.Config, error) {
	cfg, err := newConfigService(cmd, nil).LoadConfig(cmd.Context(), workingDir, collectFlags(cmd))
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// newApp wires the conversion pipeline from cfg
func newApp(cfg *entities.Config) (*app, error) {
	logs, err := logging.NewProvider(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}

	themes := theme.NewResolver()
	assembler := pptx.NewAssembler(
		pptx.WithLogger(logs.GetLogger("pptx")),
		pptx.WithRenderer(renderer.NewRenderer(renderer.WithLogger(logs.GetLogger("renderer")))),
		pptx.WithPartCache(pptx.NewPartCache(64, 30*time.Minute)),
	)

	converter := services.NewConversionService(
		parser.NewGoldmarkExtractor(parser.WithLogger(logs.GetLogger("parser"))),
		services.NewSegmenter(),
		themes,
		assembler,
		services.WithConversionLogger(logs.GetLogger("convert")),
		services.WithMetadataDefaults(cfg.Metadata),
	)

	return &app{
		config:    cfg,
		logs:      logs,
		logger:    logs.GetLogger("mdpptx"),
		themes:    themes,
		assembler: assembler,
		converter: converter,
		source:    filesystem.NewSource(filesystem.WithSourceLogger(logs.GetLogger("source"))),
		sink:      filesystem.NewSink(filesystem.WithSinkLogger(logs.GetLogger("sink"))),
		monitor:   monitoring.NewMonitor(monitoring.WithCacheStats(assembler.CacheStats)),
		opener:    opener.NewOpener(),
	}, nil
}

// exitCode maps conversion error kinds to process exit codes
func exitCode(err error) int {
	switch {
	case entities.IsKind(err, entities.ErrorUnknownTemplate):
		return 2
	case entities.IsKind(err, entities.ErrorEmptyInput):
		return 3
	case entities.IsKind(err, entities.ErrorPackagingInvariantViolation):
		return 4
	case entities.IsKind(err, entities.ErrorPersistenceFailure):
		return 5
	default:
		return 1
	}
}
