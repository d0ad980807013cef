package api

import (
	"context"
	"log/slog"
	"net/http"
)

// Pinger reports whether the vector index is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// healthHandler serves the liveness and readiness probes.
type healthHandler struct {
	index  Pinger
	logger *slog.Logger
}

// liveness returns 200 whenever the process is alive.
func (h *healthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readiness returns 200 only when the vector index answers a ping.
func (h *healthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	if h.index == nil {
		http.Error(w, "vector index not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.index.Ping(r.Context()); err != nil {
		h.logger.Error("readiness check failed", "error", err)
		http.Error(w, "vector index not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
