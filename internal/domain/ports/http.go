package ports

import (
	"context"
)

// HTTPServer is the conversion endpoint's lifecycle: Start binds and serves
// in the background, Stop drains in-flight conversions.
type HTTPServer interface {
	Start(ctx context.Context, port int, host string) error
	Stop(ctx context.Context) error
	IsRunning() bool
}

// ServerService runs the conversion endpoint in the foreground
type ServerService interface {
	// Serve starts the HTTP server and blocks until ctx is cancelled
	Serve(ctx context.Context, host string, port int) error
}
