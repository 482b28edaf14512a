package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/logger"
)

// StatusReader provides the snapshot served by the status endpoint.
type StatusReader interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
}

// Handler wires admin endpoints to the security service.
type Handler struct {
	service  StatusReader
	gatherer prometheus.Gatherer
}

// New constructs an admin handler.
func New(service StatusReader, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		service:  service,
		gatherer: gatherer,
	}
}

// Register mounts admin endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.HandleHealth)
	r.Get("/api/v1/status", h.HandleStatus)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
}

// Router returns a chi router with every admin endpoint mounted.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	h.Register(r)

	return r
}

// HandleHealth handles GET /healthz requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// HandleStatus handles GET /api/v1/status requests.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithName(r.Context(), "admin")

	snapshot, err := h.service.Snapshot(ctx)
	if err != nil {
		logger.Errorf(ctx, "Failed to read status: %v", err)
		writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "unable to read state"})

		return
	}

	writeJSON(ctx, w, http.StatusOK, toStatusResponse(snapshot))
}

// statusResponse is the JSON form of a snapshot.
type statusResponse struct {
	AlarmStatus      string           `json:"alarm_status"`
	AlarmDescription string           `json:"alarm_description"`
	ArmingStatus     string           `json:"arming_status"`
	CatDetected      bool             `json:"cat_detected"`
	Sensors          []sensorResponse `json:"sensors"`
}

type sensorResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toStatusResponse(snapshot *domain.Snapshot) statusResponse {
	sensors := make([]sensorResponse, 0, len(snapshot.Sensors))
	for _, sensor := range snapshot.Sensors {
		sensors = append(sensors, sensorResponse{
			ID:     sensor.ID.String(),
			Name:   sensor.Name,
			Type:   sensor.Type.String(),
			Active: sensor.Active,
		})
	}

	return statusResponse{
		AlarmStatus:      snapshot.AlarmStatus.String(),
		AlarmDescription: snapshot.AlarmStatus.Description(),
		ArmingStatus:     snapshot.ArmingStatus.String(),
		CatDetected:      snapshot.CatDetected,
		Sensors:          sensors,
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warnf(ctx, "Failed to write response: %v", err)
	}
}
