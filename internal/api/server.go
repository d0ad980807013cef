// Package api provides the HTTP front end of the chatbot.
//
// Endpoints:
//
//	POST /chat    answer one query within a session
//	GET  /health  liveness probe
//	GET  /ready   readiness probe (pings the vector index)
//
// Every request flows through recovery, logging, and per-IP rate limiting
// before reaching a handler.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Swuzz123/Tourism-chatbot-demo/internal/conversation"
)

const (
	// DefaultAddr is where the server listens when no address is configured.
	DefaultAddr = "0.0.0.0:8080"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout bounds header reads to resist slowloris clients.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	// Generation calls dominate, so this exceeds the generation timeout.
	WriteTimeout = 90 * time.Second

	// IdleTimeout bounds keep-alive connections between requests.
	IdleTimeout = 120 * time.Second
)

// ServerConfig contains the server's dependencies and settings.
type ServerConfig struct {
	Logger     *slog.Logger
	Answerer   Answerer            // Required
	Sessions   *conversation.Store // Required
	Index      Pinger              // Optional: nil degrades /ready to 503
	TrustProxy bool                // Trust X-Real-IP/X-Forwarded-For headers
	RateBurst  int                 // Rate limiter burst per IP (0 = default 60)
}

// Server is the chatbot's HTTP server.
type Server struct {
	handler http.Handler
	logger  *slog.Logger
}

// NewServer creates a server with all routes and middleware configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Answerer == nil {
		return nil, errors.New("answerer is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ch := &chatHandler{answerer: cfg.Answerer, sessions: cfg.Sessions, logger: logger}
	hh := &healthHandler{index: cfg.Index, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", ch.handleChat)
	mux.HandleFunc("GET /health", hh.liveness)
	mux.HandleFunc("GET /ready", hh.readiness)

	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 60
	}
	rl := newRateLimiter(1.0, burst)

	handler := chain(mux,
		recoveryMiddleware(logger),
		loggingMiddleware(logger),
		rateLimitMiddleware(rl, cfg.TrustProxy, logger),
	)

	return &Server{handler: handler, logger: logger}, nil
}

// Handler returns the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run starts the server and blocks until the context is cancelled or the
// listener fails, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
