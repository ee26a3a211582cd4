package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// Environment variables read by ApplyEnvVars
const (
	EnvTemplate       = "MDPPTX_TEMPLATE"
	EnvRecursive      = "MDPPTX_RECURSIVE"
	EnvSeparate       = "MDPPTX_SEPARATE"
	EnvAllowEmpty     = "MDPPTX_ALLOW_EMPTY"
	EnvWorkers        = "MDPPTX_WORKERS"
	EnvFallbackTitles = "MDPPTX_FALLBACK_TITLES"
	EnvHost           = "MDPPTX_HOST"
	EnvPort           = "MDPPTX_PORT"
	EnvEnvironment    = "MDPPTX_ENV"
	EnvCORSOrigins    = "MDPPTX_CORS_ORIGINS"
	EnvMaxBodyBytes   = "MDPPTX_MAX_BODY_BYTES"
	EnvWatchInterval  = "MDPPTX_WATCH_INTERVAL"
	EnvWatchDebounce  = "MDPPTX_WATCH_DEBOUNCE"
	EnvAuthor         = "MDPPTX_AUTHOR"
	EnvCompany        = "MDPPTX_COMPANY"
	EnvKeywords       = "MDPPTX_KEYWORDS"
	EnvLogLevel       = "MDPPTX_LOG_LEVEL"
	EnvLogFormat      = "MDPPTX_LOG_FORMAT"
	EnvLogVerbose     = "MDPPTX_LOG_VERBOSE"
)

// GetDefaultConfig returns the built-in configuration
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Conversion: entities.ConversionConfig{
			Template: entities.DefaultThemeName,
		},
		Server: entities.ServerConfig{
			Host:            "localhost",
			Port:            8080,
			ReadTimeout:     30,
			WriteTimeout:    60,
			ShutdownTimeout: 5,
			MaxBodyBytes:    10 << 20,
			Environment:     "development",
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://localhost:8080",
				"http://127.0.0.1:8080",
			},
		},
		Watcher: entities.WatcherConfig{
			IntervalMs: 200,
			DebounceMs: 500,
		},
		Metadata: entities.Metadata{
			Keywords: []string{},
		},
		Logging: entities.LoggingConfig{
			Level:  string(entities.LogLevelInfo),
			Format: string(entities.LogFormatConsole),
		},
	}
}

// lookupString returns the trimmed variable value when set and non-empty
func lookupString(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

// lookupInt returns the variable as an int when it parses
func lookupInt(key string) (int, bool) {
	value, ok := lookupString(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}

// lookupBool returns the variable as a bool when it parses
func lookupBool(key string) (bool, bool) {
	value, ok := lookupString(key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}
	return b, true
}

// lookupList splits a comma separated variable, dropping empty items
func lookupList(key string) ([]string, bool) {
	value, ok := lookupString(key)
	if !ok {
		return nil, false
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result, len(result) > 0
}
