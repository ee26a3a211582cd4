// Package logging backs ports.Logger with go-logger.
package logging

import (
	"context"
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// Provider hands out named loggers sharing one root configuration
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds a go-logger root from the logging configuration
func NewProvider(cfg entities.LoggingConfig) (*Provider, error) {
	options := []glog.Option{}

	if level := normalizeLevel(string(cfg.GetLevel())); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch cfg.GetFormat() {
	case entities.LogFormatJSON:
		options = append(options, glog.WithLoggerTypeJSON())
	case entities.LogFormatConsole:
		options = append(options, glog.WithLoggerTypeConsole())
	case entities.LogFormatPretty:
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	return &Provider{root: glog.NewLogger(options...)}, nil
}

// GetLogger returns a child logger scoped to name
func (p *Provider) GetLogger(name string) ports.Logger {
	if p == nil {
		return ports.NewNoOpLogger()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return wrap(p.root)
	}
	return wrap(p.root.GetLogger(name))
}

func wrap(inner glog.Logger) ports.Logger {
	if inner == nil {
		return ports.NewNoOpLogger()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

func (l *adapter) WithContext(ctx context.Context) ports.Logger {
	if ctx == nil {
		return l
	}
	return wrap(l.inner.WithContext(ctx))
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	default:
		return ""
	}
}
