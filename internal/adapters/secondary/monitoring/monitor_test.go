package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

type stepClock struct {
	ports.RealTimeProvider
	now time.Time
}

func (c *stepClock) Now() time.Time                  { return c.now }
func (c *stepClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }

func TestMonitor_RecordConversion(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	m := NewMonitor(WithClock(clock))

	m.RecordConversion(100*time.Millisecond, 2, []entities.Artifact{{Name: "a.pptx", Data: make([]byte, 10)}}, nil)
	clock.now = clock.now.Add(time.Minute)
	m.RecordConversion(200*time.Millisecond, 1, []entities.Artifact{{Name: "b.pptx", Data: make([]byte, 5)}, {Name: "c.pptx", Data: make([]byte, 1)}}, nil)

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.Conversions)
	assert.Equal(t, int64(3), s.Documents)
	assert.Equal(t, int64(3), s.Artifacts)
	assert.Equal(t, int64(16), s.BytesWritten)
	assert.InDelta(t, float64(110*time.Millisecond), float64(s.AverageTime), float64(time.Microsecond))
	assert.Equal(t, 200*time.Millisecond, s.LastDuration)
	assert.Equal(t, clock.now, s.LastConverted)
	assert.Equal(t, time.Minute, s.Uptime)
	assert.Zero(t, s.Failures)
}

func TestMonitor_RecordFailures(t *testing.T) {
	m := NewMonitor()

	m.RecordConversion(time.Millisecond, 1, nil, entities.UnknownTemplateError("glitter"))
	m.RecordConversion(time.Millisecond, 1, nil, entities.UnknownTemplateError("sparkle"))
	m.RecordConversion(time.Millisecond, 0, nil, errors.New("boom"))

	s := m.Snapshot()
	assert.Equal(t, int64(3), s.Failures)
	assert.Equal(t, int64(2), s.FailuresBy[string(entities.ErrorUnknownTemplate)])
	assert.Equal(t, int64(1), s.FailuresBy["internal"])
	assert.Zero(t, s.Artifacts)

	// snapshots are copies
	s.FailuresBy["internal"] = 99
	assert.Equal(t, int64(1), m.Snapshot().FailuresBy["internal"])
}

func TestMonitor_RecordRequest(t *testing.T) {
	m := NewMonitor()
	for i := 0; i < 3; i++ {
		m.RecordRequest()
	}
	assert.Equal(t, int64(3), m.Snapshot().HTTPRequests)
}

func TestMonitor_StartStop(t *testing.T) {
	t.Run("samples runtime figures", func(t *testing.T) {
		m := NewMonitor()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		m.Start(ctx, 10*time.Millisecond)
		require.Eventually(t, func() bool {
			return m.Snapshot().GoroutineCount > 0
		}, time.Second, 10*time.Millisecond)
		assert.Positive(t, m.Snapshot().MemoryBytes)
		m.Stop()
	})

	t.Run("multiple starts and stops do nothing", func(t *testing.T) {
		m := NewMonitor()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		m.Stop()
		m.Start(ctx, time.Hour)
		m.Start(ctx, time.Hour)
		m.Stop()
		m.Stop()
		assert.False(t, m.running)
	})

	t.Run("non-positive interval is ignored", func(t *testing.T) {
		m := NewMonitor()
		m.Start(context.Background(), 0)
		assert.False(t, m.running)
	})
}

func TestMonitor_CacheStats(t *testing.T) {
	m := NewMonitor(WithCacheStats(func() entities.CacheStats {
		return entities.CacheStats{Hits: 3, Misses: 1, HitRate: 0.75}
	}))

	s := m.Snapshot()
	assert.Equal(t, int64(3), s.PartCache.Hits)
	assert.InDelta(t, 0.75, s.PartCache.HitRate, 1e-9)
}
