package entities

import "time"

// CacheStats reports rendered part cache statistics
type CacheStats struct {
	// Hits is the number of lookups served from the cache
	Hits int64 `json:"hits"`

	// Misses is the number of lookups that had to render the part
	Misses int64 `json:"misses"`

	// Evictions is the number of entries dropped to respect MaxSize
	Evictions int64 `json:"evictions"`

	Size    int `json:"size"`
	MaxSize int `json:"max_size"`

	// HitRate is Hits over all lookups, 0 before the first lookup
	HitRate float64 `json:"hit_rate"`
}

// RuntimeStats is a point-in-time copy of the conversion counters
type RuntimeStats struct {
	StartedAt time.Time     `json:"started_at"`
	Uptime    time.Duration `json:"uptime_ns"`

	Conversions   int64            `json:"conversions"`
	Failures      int64            `json:"failures"`
	FailuresBy    map[string]int64 `json:"failures_by_kind,omitempty"`
	Documents     int64            `json:"documents"`
	Artifacts     int64            `json:"artifacts"`
	BytesWritten  int64            `json:"bytes_written"`
	AverageTime   time.Duration    `json:"average_time_ns"`
	LastDuration  time.Duration    `json:"last_duration_ns"`
	LastConverted time.Time        `json:"last_converted,omitempty"`

	HTTPRequests int64 `json:"http_requests"`

	MemoryBytes    int64  `json:"memory_bytes"`
	GoroutineCount int    `json:"goroutines"`
	GCCount        uint32 `json:"gc_cycles"`

	PartCache CacheStats `json:"part_cache"`
}
