package entities

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the complete application configuration
type Config struct {
	Conversion ConversionConfig `toml:"conversion" yaml:"conversion"`
	Server     ServerConfig     `toml:"server" yaml:"server"`
	Watcher    WatcherConfig    `toml:"watcher" yaml:"watcher"`
	Metadata   Metadata         `toml:"metadata" yaml:"metadata"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Conversion.Validate(); err != nil {
		return fmt.Errorf("conversion config: %w", err)
	}

	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Watcher.Validate(); err != nil {
		return fmt.Errorf("watcher config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ConversionConfig contains defaults for the convert command
type ConversionConfig struct {
	Template       string `toml:"template" yaml:"template"`
	Recursive      bool   `toml:"recursive" yaml:"recursive"`
	Separate       bool   `toml:"separate" yaml:"separate"`
	AllowEmpty     bool   `toml:"allow_empty" yaml:"allow_empty"`
	Workers        int    `toml:"workers" yaml:"workers"`
	FallbackTitles bool   `toml:"fallback_titles" yaml:"fallback_titles"`
}

// Validate validates conversion configuration. An unknown template is
// reported as an ErrorUnknownTemplate.
func (c ConversionConfig) Validate() error {
	if name := strings.TrimSpace(c.Template); name != "" {
		if _, ok := ParseThemeID(name); !ok {
			return UnknownTemplateError(name)
		}
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.Workers, validation.Min(0), validation.Max(256)),
	)
}

// Options converts the configuration into conversion options
func (c ConversionConfig) Options() ConversionOptions {
	policy := EmptyInputReject
	if c.AllowEmpty {
		policy = EmptyInputAllow
	}
	return ConversionOptions{
		Template:       c.Template,
		Combine:        !c.Separate,
		Recursive:      c.Recursive,
		EmptyInput:     policy,
		Workers:        c.Workers,
		FallbackTitles: c.FallbackTitles,
	}
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string   `toml:"host" yaml:"host"`
	Port            int      `toml:"port" yaml:"port"`
	ReadTimeout     int      `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxBodyBytes    int64    `toml:"max_body_bytes" yaml:"max_body_bytes"`
	Environment     string   `toml:"environment" yaml:"environment"`
	CORSOrigins     []string `toml:"cors_origins" yaml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Port, validation.Min(0), validation.Max(65535)),
		validation.Field(&s.Host, validation.By(func(value any) error {
			host, _ := value.(string)
			if host == "" || host == "localhost" {
				return nil
			}
			if net.ParseIP(host) == nil && strings.ContainsAny(host, " /:") {
				return errors.New("must be an IP address or host name")
			}
			return nil
		})),
		validation.Field(&s.ReadTimeout, validation.Min(0)),
		validation.Field(&s.WriteTimeout, validation.Min(0)),
		validation.Field(&s.ShutdownTimeout, validation.Min(0)),
		validation.Field(&s.MaxBodyBytes, validation.Min(int64(0))),
		validation.Field(&s.CORSOrigins, validation.Each(validation.By(validateOrigin))),
	)
}

func validateOrigin(value any) error {
	origin, _ := value.(string)
	if origin == "" {
		return errors.New("CORS origin cannot be empty")
	}
	// Allow wildcard origin for development
	if origin == "*" {
		return nil
	}
	if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
		return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
	}
	return nil
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GetMaxBodyBytes returns the request body limit (default 10MB)
func (s ServerConfig) GetMaxBodyBytes() int64 {
	if s.MaxBodyBytes <= 0 {
		return 10 << 20
	}
	return s.MaxBodyBytes
}

// GetCORSOrigins returns CORS origins with defaults if empty
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:8080",
			"http://127.0.0.1:8080",
		}
	}
	return s.CORSOrigins
}

// IsDevelopment returns true if the server is running in development mode
func (s ServerConfig) IsDevelopment() bool {
	return s.Environment == "development" || s.Environment == ""
}

// WatcherConfig contains file watcher configuration
type WatcherConfig struct {
	IntervalMs int `toml:"interval_ms" yaml:"interval_ms"`
	DebounceMs int `toml:"debounce_ms" yaml:"debounce_ms"`
}

// Validate validates watcher configuration
func (w WatcherConfig) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.IntervalMs, validation.Min(50).Error("watcher interval must be at least 50ms")),
		validation.Field(&w.DebounceMs, validation.Min(0)),
	)
}

// GetInterval returns the watcher interval as a duration
func (w WatcherConfig) GetInterval() time.Duration {
	if w.IntervalMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(w.IntervalMs) * time.Millisecond
}

// GetDebounce returns the debounce time as a duration
func (w WatcherConfig) GetDebounce() time.Duration {
	if w.DebounceMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// Metadata contains document property defaults applied when front matter is silent
type Metadata struct {
	Author   string   `toml:"author" yaml:"author"`
	Company  string   `toml:"company" yaml:"company"`
	Keywords []string `toml:"keywords" yaml:"keywords"`
}

// Apply fills empty deck metadata fields from the defaults
func (m Metadata) Apply(meta DeckMetadata) DeckMetadata {
	if meta.Author == "" {
		meta.Author = m.Author
	}
	if meta.Company == "" {
		meta.Company = m.Company
	}
	if len(meta.Keywords) == 0 && len(m.Keywords) > 0 {
		meta.Keywords = append([]string(nil), m.Keywords...)
	}
	return meta
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat selects the log output encoder
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
	LogFormatPretty  LogFormat = "pretty"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level     string `toml:"level" yaml:"level"`           // debug, info, warn, error
	Format    string `toml:"format" yaml:"format"`         // console, json, pretty
	Verbose   bool   `toml:"verbose" yaml:"verbose"`       // Enable verbose logging
	AddSource bool   `toml:"add_source" yaml:"add_source"` // Include caller file:line
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error").
			Error("must be debug, info, warn, or error")),
		validation.Field(&l.Format, validation.In("console", "json", "pretty").
			Error("must be console, json, or pretty")),
	)
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Verbose {
		return LogLevelDebug
	}
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}

// GetFormat returns the log format with default
func (l LoggingConfig) GetFormat() LogFormat {
	if l.Format == "" {
		return LogFormatConsole
	}
	return LogFormat(l.Format)
}
