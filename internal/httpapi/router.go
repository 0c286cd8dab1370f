// Package httpapi exposes read-only introspection of a service container
// over HTTP.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/xraph/services"
)

type handler struct {
	container *services.Container
	logger    *zap.Logger
}

// NewRouter returns a chi router serving container introspection. No handler
// ever constructs a service.
func NewRouter(c *services.Container, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{container: c, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", h.health)
	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{name}", h.inspect)
	})

	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	if h.container.IsDestroyed() {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "destroyed"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	state := services.ServiceState(r.URL.Query().Get("state"))
	switch state {
	case "", services.StateDefined, services.StateActive, services.StateDisabled:
	default:
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown state: " + string(state)})
		return
	}

	infos := services.Query(h.container, services.ServiceQuery{State: state})
	if infos == nil {
		infos = []services.ServiceInfo{}
	}
	h.writeJSON(w, http.StatusOK, infos)
}

func (h *handler) inspect(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	info := h.container.Inspect(name)
	if info.State == services.StateUnknown {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such service: " + name})
		return
	}
	h.writeJSON(w, http.StatusOK, info)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("response encode failed", zap.Error(err))
	}
}
