// Package api serves component fault states and Prometheus metrics.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nalxnet/openWB/internal/component"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type StatusSource interface {
	Statuses() []component.Status
	Healthy() bool
}

type handlers struct {
	source StatusSource
	logger zerolog.Logger
}

func NewRouter(source StatusSource, gatherer prometheus.Gatherer, logger zerolog.Logger) chi.Router {
	r := chi.NewRouter()
	h := &handlers{source: source, logger: logger.With().Str("component", "api").Logger()}

	r.Get("/healthz", h.handleHealth)
	r.Get("/status", h.handleStatuses)
	r.Get("/status/{type}/{id}", h.handleStatus)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn().Err(err).Msg("writing response failed")
	}
}

func (h *handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if !h.source.Healthy() {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) handleStatuses(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.source.Statuses())
}

func (h *handlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	typ := chi.URLParam(r, "type")
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	for _, st := range h.source.Statuses() {
		if st.Type == typ && st.ID == id {
			h.writeJSON(w, http.StatusOK, st)
			return
		}
	}
	h.writeError(w, http.StatusNotFound, "unknown component")
}
