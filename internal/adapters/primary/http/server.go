package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// Server exposes the conversion service over HTTP
type Server struct {
	converter ports.ConversionService
	themes    ports.ThemeResolver
	config    entities.ServerConfig
	defaults  entities.ConversionOptions
	logger    ports.Logger
	clock     ports.TimeProvider
	monitor   ports.ConversionMonitor

	rateLimit  int
	rateWindow time.Duration
	limiter    *rateLimiter

	mu       sync.RWMutex
	server   *http.Server
	listener net.Listener
	running  bool
	serveErr chan error
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the server logger
func WithLogger(logger ports.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces the real time provider
func WithClock(clock ports.TimeProvider) Option {
	return func(s *Server) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithMonitor records conversions and requests and serves GET /api/stats
func WithMonitor(monitor ports.ConversionMonitor) Option {
	return func(s *Server) {
		s.monitor = monitor
	}
}

// WithConversionDefaults sets the options every request starts from.
// Requests may only override the template.
func WithConversionDefaults(opts entities.ConversionOptions) Option {
	return func(s *Server) {
		s.defaults = opts
	}
}

// WithRateLimit allows limit requests per client within window. A limit
// of zero disables rate limiting.
func WithRateLimit(limit int, window time.Duration) Option {
	return func(s *Server) {
		s.rateLimit = limit
		s.rateWindow = window
	}
}

// NewServer creates a new HTTP server
func NewServer(converter ports.ConversionService, themes ports.ThemeResolver, config entities.ServerConfig, opts ...Option) *Server {
	s := &Server{
		converter: converter,
		themes:    themes,
		config:    config,
		logger:    ports.NewNoOpLogger(),
		clock:     ports.NewRealTimeProvider(),

		rateLimit:  60,
		rateWindow: time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rateLimit > 0 {
		s.limiter = newRateLimiter(s.rateLimit, s.rateWindow, s.clock)
	}
	return s
}

// Start binds the listener and serves in the background
func (s *Server) Start(ctx context.Context, port int, host string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}

	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	listener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.config.GetReadTimeout(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.config.GetWriteTimeout(),
		IdleTimeout:       60 * time.Second,
	}
	s.listener = listener
	s.serveErr = make(chan error, 1)
	s.running = true

	srv, errCh := s.server, s.serveErr
	go func() {
		s.logger.Info("HTTP server starting", "addr", listener.Addr().String())
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", "error", err)
			errCh <- err
		}
		close(errCh)
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	s.running = false
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// Serve runs the server until ctx is cancelled or serving fails
func (s *Server) Serve(ctx context.Context, host string, port int) error {
	if err := s.Start(ctx, port, host); err != nil {
		return err
	}

	s.mu.RLock()
	errCh := s.serveErr
	s.mu.RUnlock()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutting down")
		return s.Stop(context.WithoutCancel(ctx))
	case err, ok := <-errCh:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		if ok && err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	}
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the bound listener address, or "" when stopped
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler returns the routed handler with the middleware chain applied
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/convert", s.handleConvert).Methods(http.MethodPost)
	api.HandleFunc("/themes", s.handleThemes).Methods(http.MethodGet)
	if s.monitor != nil {
		api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	}

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handleError(w, fmt.Errorf("no route for %s", r.URL.Path), http.StatusNotFound)
	})
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handleError(w, fmt.Errorf("%s not allowed on %s", r.Method, r.URL.Path), http.StatusMethodNotAllowed)
	})
	// subrouters answer their own mismatches
	for _, rt := range []*mux.Router{router, api} {
		rt.NotFoundHandler = notFound
		rt.MethodNotAllowedHandler = notAllowed
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	// Applied inside out: body limit, security headers, rate limit, CORS,
	// logging, request counting, recovery.
	var handler http.Handler = router
	handler = bodyLimitMiddleware(handler, s.config.GetMaxBodyBytes())
	handler = securityHeadersMiddleware(handler)
	if s.limiter != nil {
		handler = rateLimitMiddleware(handler, s.limiter)
	}
	handler = c.Handler(handler)
	handler = createLoggingMiddleware(handler, s.logger, s.clock)
	if s.monitor != nil {
		handler = countingMiddleware(handler, s.monitor)
	}
	handler = createRecoveryMiddleware(handler, s.logger)

	return handler
}

// Ensure Server implements the HTTP ports
var (
	_ ports.HTTPServer    = (*Server)(nil)
	_ ports.ServerService = (*Server)(nil)
)
