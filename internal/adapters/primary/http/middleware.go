package http

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// createLoggingMiddleware logs one line per request
func createLoggingMiddleware(next http.Handler, logger ports.Logger, clock ports.TimeProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := clock.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		logger.WithContext(r.Context()).Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"bytes", wrapped.size,
			"duration", clock.Since(start),
		)
	})
}

// countingMiddleware counts every request reaching the server
func countingMiddleware(next http.Handler, monitor ports.ConversionMonitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		monitor.RecordRequest()
		next.ServeHTTP(w, r)
	})
}

// securityHeadersMiddleware adds security headers to all responses
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Nothing served here is meant to be rendered by a browser
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}

// bodyLimitMiddleware caps request bodies at limit bytes
func bodyLimitMiddleware(next http.Handler, limit int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > limit {
			w.Header().Set("Connection", "close")
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		next.ServeHTTP(w, r)
	})
}

// rateLimiter manages a sliding window of requests per client
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	limit   int
	window  time.Duration
	clock   ports.TimeProvider
	swept   time.Time
}

type clientInfo struct {
	lastSeen time.Time
	requests []time.Time
}

func newRateLimiter(limit int, window time.Duration, clock ports.TimeProvider) *rateLimiter {
	return &rateLimiter{
		clients: make(map[string]*clientInfo),
		limit:   limit,
		window:  window,
		clock:   clock,
		swept:   clock.Now(),
	}
}

// isAllowed records a request for ip and reports whether it fits the window
func (rl *rateLimiter) isAllowed(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	cutoff := now.Add(-rl.window)

	// Idle clients are forgotten once per window
	if now.Sub(rl.swept) >= rl.window {
		for key, info := range rl.clients {
			if info.lastSeen.Before(cutoff) {
				delete(rl.clients, key)
			}
		}
		rl.swept = now
	}

	client, exists := rl.clients[ip]
	if !exists {
		rl.clients[ip] = &clientInfo{lastSeen: now, requests: []time.Time{now}}
		return true
	}
	client.lastSeen = now

	valid := client.requests[:0]
	for _, at := range client.requests {
		if at.After(cutoff) {
			valid = append(valid, at)
		}
	}
	client.requests = valid

	if len(valid) >= rl.limit {
		return false
	}
	client.requests = append(client.requests, now)
	return true
}

// rateLimitMiddleware rejects clients exceeding the limiter's window
func rateLimitMiddleware(next http.Handler, limiter *rateLimiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		if !limiter.isAllowed(getClientIP(r)) {
			w.Header().Set("Retry-After", strconv.Itoa(int(limiter.window.Seconds())))
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getClientIP extracts the real client IP address
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// createRecoveryMiddleware turns handler panics into 500 responses
func createRecoveryMiddleware(next http.Handler, logger ports.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered in HTTP handler", "panic", err, "path", r.URL.Path)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
