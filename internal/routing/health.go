package routing

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
)

const checkTimeout = 2 * time.Second

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type componentHealth struct {
	Status    string  `json:"status"`
	Message   string  `json:"message,omitempty"`
	LatencyMs float64 `json:"latencyMs"`
}

type health struct {
	Status     string                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]componentHealth `json:"components"`
}

func ServeHealth(r *mux.Router, checks map[string]Check, logger *slog.Logger) {
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), checkTimeout)
		defer cancel()

		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		sort.Strings(names)

		h := health{Status: "healthy", Timestamp: time.Now().UTC(), Components: make(map[string]componentHealth, len(checks))}
		for _, name := range names {
			start := time.Now()
			err := checks[name](ctx)
			c := componentHealth{Status: "up", LatencyMs: float64(time.Since(start).Microseconds()) / 1000}
			if err != nil {
				logger.Warn("health check failed", "component", name, "error", err)
				c.Status, c.Message = "down", err.Error()
				h.Status = "unhealthy"
			}
			h.Components[name] = c
		}

		status := http.StatusOK
		if h.Status != "healthy" {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(h); err != nil {
			logger.Error("write health", "error", err)
		}
	}).Methods(http.MethodGet).Name("healthz")
}

func ServeMetrics(r *mux.Router, handler http.Handler) {
	r.Handle("/metrics", handler).Methods(http.MethodGet).Name("metrics")
}
