// Package status serves a small HTTP view of a running restart loop:
//
//	GET /healthz    liveness
//	GET /highwater  current mark as JSON
//	GET /metrics    Prometheus exposition
package status

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/valveflow/restart"
)

// Info describes the run being served.
type Info struct {
	Agents  int    `json:"agents"`
	Minutes int    `json:"minutes"`
	Entry   string `json:"entry"`
}

// HighWaterResponse is the body of GET /highwater.
type HighWaterResponse struct {
	Info
	HighWater int    `json:"high_water"`
	Uptime    string `json:"uptime"`
}

// NewHandler returns the status router. gatherer may be nil, in which case
// /metrics is not mounted.
func NewHandler(hw restart.HighWater, info Info, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	var start = time.Now()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	r.Get("/highwater", func(w http.ResponseWriter, req *http.Request) {
		mark, err := hw.Load(req.Context())
		if err != nil {
			if logger != nil {
				logger.Error("status: load high-water mark", "error", err)
			}
			http.Error(w, "high-water mark unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(HighWaterResponse{
			Info:      info,
			HighWater: mark,
			Uptime:    time.Since(start).Round(time.Second).String(),
		})
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
