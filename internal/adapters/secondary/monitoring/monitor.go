// Package monitoring keeps running counters for conversions and HTTP traffic.
package monitoring

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// ewmaAlpha weights the newest sample of the average conversion time
const ewmaAlpha = 0.1

// Monitor collects conversion and request counters. It is safe for
// concurrent use.
type Monitor struct {
	clock      ports.TimeProvider
	cacheStats func() entities.CacheStats

	mu      sync.RWMutex
	stats   entities.RuntimeStats
	running bool
	stopCh  chan struct{}
}

// Option configures a Monitor
type Option func(*Monitor)

// WithClock sets the time source
func WithClock(clock ports.TimeProvider) Option {
	return func(m *Monitor) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithCacheStats includes part cache statistics in snapshots
func WithCacheStats(fn func() entities.CacheStats) Option {
	return func(m *Monitor) {
		m.cacheStats = fn
	}
}

// NewMonitor creates a new monitor
func NewMonitor(opts ...Option) *Monitor {
	m := &Monitor{clock: ports.NewRealTimeProvider()}
	for _, opt := range opts {
		opt(m)
	}
	m.stats.StartedAt = m.clock.Now()
	m.stats.FailuresBy = make(map[string]int64)
	return m
}

// Start samples runtime memory figures every interval until ctx ends or Stop is called
func (m *Monitor) Start(ctx context.Context, interval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running || interval <= 0 {
		return
	}
	m.running = true
	m.stopCh = make(chan struct{})

	ticker := m.clock.NewTicker(interval)
	go m.sample(ctx, ticker, m.stopCh)
}

// Stop ends sampling
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	m.running = false
	close(m.stopCh)
}

func (m *Monitor) sample(ctx context.Context, ticker ports.Ticker, stop <-chan struct{}) {
	defer ticker.Stop()
	m.updateRuntime()
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C():
			m.updateRuntime()
		}
	}
}

func (m *Monitor) updateRuntime() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.MemoryBytes = safeUint64ToInt64(mem.Alloc)
	m.stats.GoroutineCount = runtime.NumGoroutine()
	m.stats.GCCount = mem.NumGC
}

// RecordConversion records one conversion run. A failed run counts under its
// error kind, or "internal" when the error is not a conversion error.
func (m *Monitor) RecordConversion(duration time.Duration, documents int, artifacts []entities.Artifact, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Conversions++
	m.stats.Documents += int64(documents)
	m.stats.LastDuration = duration
	m.stats.LastConverted = m.clock.Now()

	if m.stats.AverageTime == 0 {
		m.stats.AverageTime = duration
	} else {
		m.stats.AverageTime = time.Duration(float64(m.stats.AverageTime)*(1-ewmaAlpha) + float64(duration)*ewmaAlpha)
	}

	if err != nil {
		m.stats.Failures++
		m.stats.FailuresBy[failureKind(err)]++
		return
	}

	m.stats.Artifacts += int64(len(artifacts))
	for _, a := range artifacts {
		m.stats.BytesWritten += int64(len(a.Data))
	}
}

// RecordRequest counts one HTTP request
func (m *Monitor) RecordRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.HTTPRequests++
}

// Snapshot returns a copy of the current counters
func (m *Monitor) Snapshot() entities.RuntimeStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := m.stats
	if m.cacheStats != nil {
		out.PartCache = m.cacheStats()
	}
	out.Uptime = m.clock.Since(m.stats.StartedAt)
	out.FailuresBy = make(map[string]int64, len(m.stats.FailuresBy))
	for k, v := range m.stats.FailuresBy {
		out.FailuresBy[k] = v
	}
	return out
}

// Ensure Monitor implements ports.ConversionMonitor
var _ ports.ConversionMonitor = (*Monitor)(nil)

func failureKind(err error) string {
	var ce *entities.ConvertError
	if errors.As(err, &ce) {
		return string(ce.Kind)
	}
	return "internal"
}

// safeUint64ToInt64 converts uint64 to int64, capping at the max int64 value
func safeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(val)
}
