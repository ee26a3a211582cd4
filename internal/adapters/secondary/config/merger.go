package config

import (
	"slices"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// Flag keys understood by ApplyFlags
const (
	FlagTemplate       = "template"
	FlagRecursive      = "recursive"
	FlagSeparate       = "separate"
	FlagAllowEmpty     = "allow-empty"
	FlagWorkers        = "workers"
	FlagFallbackTitles = "fallback-titles"
	FlagHost           = "host"
	FlagPort           = "port"
	FlagVerbose        = "verbose"
	FlagLogFormat      = "log-format"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	result := deepCopy(configs[0])
	if result == nil {
		result = GetDefaultConfig()
	}

	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration. Only keys
// present in flags are applied, so booleans can be switched off here.
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if template, ok := flags[FlagTemplate].(string); ok && template != "" {
		result.Conversion.Template = template
	}
	if recursive, ok := flags[FlagRecursive].(bool); ok {
		result.Conversion.Recursive = recursive
	}
	if separate, ok := flags[FlagSeparate].(bool); ok {
		result.Conversion.Separate = separate
	}
	if allowEmpty, ok := flags[FlagAllowEmpty].(bool); ok {
		result.Conversion.AllowEmpty = allowEmpty
	}
	if workers, ok := flags[FlagWorkers].(int); ok && workers >= 0 {
		result.Conversion.Workers = workers
	}
	if fallback, ok := flags[FlagFallbackTitles].(bool); ok {
		result.Conversion.FallbackTitles = fallback
	}

	if host, ok := flags[FlagHost].(string); ok && host != "" {
		result.Server.Host = host
	}
	if port, ok := flags[FlagPort].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if verbose, ok := flags[FlagVerbose].(bool); ok && verbose {
		result.Logging.Verbose = true
	}
	if format, ok := flags[FlagLogFormat].(string); ok && format != "" {
		result.Logging.Format = format
	}

	return result
}

// ApplyEnvVars applies MDPPTX_* environment overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	// Conversion
	if template, ok := lookupString(EnvTemplate); ok {
		result.Conversion.Template = template
	}
	if recursive, ok := lookupBool(EnvRecursive); ok {
		result.Conversion.Recursive = recursive
	}
	if separate, ok := lookupBool(EnvSeparate); ok {
		result.Conversion.Separate = separate
	}
	if allowEmpty, ok := lookupBool(EnvAllowEmpty); ok {
		result.Conversion.AllowEmpty = allowEmpty
	}
	if workers, ok := lookupInt(EnvWorkers); ok && workers >= 0 {
		result.Conversion.Workers = workers
	}
	if fallback, ok := lookupBool(EnvFallbackTitles); ok {
		result.Conversion.FallbackTitles = fallback
	}

	// Server
	if host, ok := lookupString(EnvHost); ok {
		result.Server.Host = host
	}
	if port, ok := lookupInt(EnvPort); ok && port > 0 {
		result.Server.Port = port
	}
	if env, ok := lookupString(EnvEnvironment); ok {
		result.Server.Environment = env
	}
	if origins, ok := lookupList(EnvCORSOrigins); ok {
		result.Server.CORSOrigins = origins
	}
	if limit, ok := lookupInt(EnvMaxBodyBytes); ok && limit > 0 {
		result.Server.MaxBodyBytes = int64(limit)
	}

	// Watcher
	if interval, ok := lookupInt(EnvWatchInterval); ok && interval > 0 {
		result.Watcher.IntervalMs = interval
	}
	if debounce, ok := lookupInt(EnvWatchDebounce); ok && debounce >= 0 {
		result.Watcher.DebounceMs = debounce
	}

	// Metadata
	if author, ok := lookupString(EnvAuthor); ok {
		result.Metadata.Author = author
	}
	if company, ok := lookupString(EnvCompany); ok {
		result.Metadata.Company = company
	}
	if keywords, ok := lookupList(EnvKeywords); ok {
		result.Metadata.Keywords = keywords
	}

	// Logging
	if level, ok := lookupString(EnvLogLevel); ok {
		result.Logging.Level = level
	}
	if format, ok := lookupString(EnvLogFormat); ok {
		result.Logging.Format = format
	}
	if verbose, ok := lookupBool(EnvLogVerbose); ok {
		result.Logging.Verbose = verbose
	}

	return result
}

// mergeInto merges source configuration into target configuration.
// Files cannot tell false from unset, so a later file can switch a
// boolean on but never off; environment and flags can do both.
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Conversion
	if source.Conversion.Template != "" {
		target.Conversion.Template = source.Conversion.Template
	}
	if source.Conversion.Workers != 0 {
		target.Conversion.Workers = source.Conversion.Workers
	}
	target.Conversion.Recursive = target.Conversion.Recursive || source.Conversion.Recursive
	target.Conversion.Separate = target.Conversion.Separate || source.Conversion.Separate
	target.Conversion.AllowEmpty = target.Conversion.AllowEmpty || source.Conversion.AllowEmpty
	target.Conversion.FallbackTitles = target.Conversion.FallbackTitles || source.Conversion.FallbackTitles

	// Server
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if source.Server.MaxBodyBytes != 0 {
		target.Server.MaxBodyBytes = source.Server.MaxBodyBytes
	}
	if source.Server.Environment != "" {
		target.Server.Environment = source.Server.Environment
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = slices.Clone(source.Server.CORSOrigins)
	}

	// Watcher
	if source.Watcher.IntervalMs != 0 {
		target.Watcher.IntervalMs = source.Watcher.IntervalMs
	}
	if source.Watcher.DebounceMs != 0 {
		target.Watcher.DebounceMs = source.Watcher.DebounceMs
	}

	// Metadata
	if source.Metadata.Author != "" {
		target.Metadata.Author = source.Metadata.Author
	}
	if source.Metadata.Company != "" {
		target.Metadata.Company = source.Metadata.Company
	}
	if len(source.Metadata.Keywords) > 0 {
		target.Metadata.Keywords = slices.Clone(source.Metadata.Keywords)
	}

	// Logging
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	if source.Logging.Format != "" {
		target.Logging.Format = source.Logging.Format
	}
	target.Logging.Verbose = target.Logging.Verbose || source.Logging.Verbose
	target.Logging.AddSource = target.Logging.AddSource || source.Logging.AddSource
}

// deepCopy creates a deep copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := *src
	dst.Server.CORSOrigins = slices.Clone(src.Server.CORSOrigins)
	dst.Metadata.Keywords = slices.Clone(src.Metadata.Keywords)
	return &dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
