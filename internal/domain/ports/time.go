package ports

import "time"

// TimeProvider is the clock used by the watcher, the monitor and the HTTP
// middleware. Tests replace it to pin timestamps and durations.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers the poll and sampling ticks
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// RealTimeProvider reads the wall clock
type RealTimeProvider struct{}

// NewRealTimeProvider returns the wall clock
func NewRealTimeProvider() TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current time
func (tp *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t
func (tp *RealTimeProvider) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// NewTicker starts a ticker firing every d
func (tp *RealTimeProvider) NewTicker(d time.Duration) Ticker {
	return &realTicker{ticker: time.NewTicker(d)}
}

type realTicker struct {
	ticker *time.Ticker
}

func (t *realTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t *realTicker) Stop() {
	t.ticker.Stop()
}
