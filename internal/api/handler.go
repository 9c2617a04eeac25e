package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/wirelab/internal/config"
	"github.com/gyaneshwarpardhi/wirelab/internal/engine"
	"github.com/gyaneshwarpardhi/wirelab/internal/event"
	"github.com/gyaneshwarpardhi/wirelab/internal/metrics"
)

// Handler holds all HTTP handler dependencies.
type Handler struct {
	eng    *engine.Engine
	loader *config.Loader
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(eng *engine.Engine, loader *config.Loader) http.Handler {
	h := &Handler{eng: eng, loader: loader, mux: http.NewServeMux()}

	h.mux.HandleFunc("GET /v1/levels", h.listLevels)
	h.mux.HandleFunc("GET /v1/levels/{id}", h.getLevel)
	h.mux.HandleFunc("POST /v1/levels/reload", h.reloadLevels)
	h.mux.HandleFunc("POST /v1/sessions", h.createSession)
	h.mux.HandleFunc("GET /v1/sessions/{id}", h.getSession)
	h.mux.HandleFunc("DELETE /v1/sessions/{id}", h.deleteSession)
	h.mux.HandleFunc("POST /v1/sessions/{id}/events", h.postEvent)
	h.mux.HandleFunc("GET /v1/sessions/{id}/stream", h.stream)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// GET /v1/levels
func (h *Handler) listLevels(w http.ResponseWriter, r *http.Request) {
	levels := h.eng.Catalog().List()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(levels),
		"levels": levels,
	})
}

// GET /v1/levels/{id}
func (h *Handler) getLevel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	lv, ok := h.eng.Catalog().Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("level %s: %s", id, engine.ErrLevelNotFound))
		return
	}
	writeJSON(w, http.StatusOK, lv)
}

// POST /v1/levels/reload: re-read the catalog from disk.
func (h *Handler) reloadLevels(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	cat, err := h.eng.ApplyConfig(cfg)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded":     true,
		"levels_count": cat.Len(),
	})
}

type createSessionRequest struct {
	LevelID string `json:"level_id"`
}

// POST /v1/sessions. The body is optional.
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	info, err := h.eng.CreateSession(req.LevelID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

// GET /v1/sessions/{id}
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	info, err := h.eng.Session(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// DELETE /v1/sessions/{id}
func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.eng.DeleteSession(r.PathValue("id")); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /v1/sessions/{id}/events: apply one interaction synchronously.
func (h *Handler) postEvent(w http.ResponseWriter, r *http.Request) {
	var ev event.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if ev.Type == "" {
		writeError(w, http.StatusBadRequest, "event type is required")
		return
	}
	ev.SessionID = r.PathValue("id")
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	ev.ReceivedAt = time.Now()

	res, err := h.eng.ProcessSync(r.Context(), &ev)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if res.Error != "" {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /healthz: always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz: 503 if the shard queues are more than 80% full.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	util := h.eng.QueueUtilization()
	metrics.QueueUtilization.Set(util)
	body := map[string]interface{}{
		"status":            "ready",
		"queue_utilization": util,
		"sessions":          h.eng.SessionCount(),
	}
	if util > 0.8 {
		body["status"] = "overloaded"
		writeJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	writeJSON(w, http.StatusOK, body)
}
