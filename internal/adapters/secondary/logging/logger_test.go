package logging

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     entities.LoggingConfig
		wantErr bool
	}{
		{"defaults", entities.LoggingConfig{}, false},
		{"verbose json", entities.LoggingConfig{Verbose: true, Format: string(entities.LogFormatJSON)}, false},
		{"pretty with source", entities.LoggingConfig{Level: string(entities.LogLevelWarn), Format: string(entities.LogFormatPretty), AddSource: true}, false},
		{"unknown format", entities.LoggingConfig{Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			logger := p.GetLogger("mdpptx.test")
			require.NotNil(t, logger)
			assert.NotPanics(t, func() {
				logger.WithContext(context.Background()).Debug("provider ready", "format", string(tt.cfg.GetFormat()))
			})
		})
	}
}

func TestNilProviderReturnsNoOp(t *testing.T) {
	var p *Provider
	assert.NotPanics(t, func() { p.GetLogger("x").Info("dropped") })
}

func TestAdapterDelegates(t *testing.T) {
	stub := &stubLogger{}
	adapted := wrap(stub)

	adapted.Debug("debug", "k", "v")
	adapted.Info("info")
	adapted.Warn("warn")
	adapted.Error("error")

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	adapted.WithContext(ctx)

	assert.Equal(t, []string{"debug", "info", "warn", "error"}, stub.calls)
	require.Len(t, stub.contexts, 1)
	assert.Equal(t, ctx, stub.contexts[0])
}

func TestNormalizeLevel(t *testing.T) {
	assert.Equal(t, glog.Warn, normalizeLevel(" WARNING "))
	assert.Equal(t, glog.Debug, normalizeLevel("debug"))
	assert.Equal(t, "", normalizeLevel("verbose"))
}

type stubLogger struct {
	calls    []string
	contexts []context.Context
}

var _ glog.Logger = (*stubLogger)(nil)

func (s *stubLogger) Trace(string, ...any) { s.calls = append(s.calls, "trace") }
func (s *stubLogger) Debug(string, ...any) { s.calls = append(s.calls, "debug") }
func (s *stubLogger) Info(string, ...any)  { s.calls = append(s.calls, "info") }
func (s *stubLogger) Warn(string, ...any)  { s.calls = append(s.calls, "warn") }
func (s *stubLogger) Error(string, ...any) { s.calls = append(s.calls, "error") }
func (s *stubLogger) Fatal(string, ...any) { s.calls = append(s.calls, "fatal") }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}
