// Package http serves the operational endpoints of the bot: Prometheus metrics and a health check.
package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// ConversationCounter reports the number of conversations held in memory.
type ConversationCounter interface {
	Len() int
}

// HealthResponse is the body of the health check.
type HealthResponse struct {
	Status        string `json:"status"`
	Conversations int    `json:"conversations"`
	Uptime        string `json:"uptime"`
}

type Handler struct {
	conversations ConversationCounter
	startedAt     time.Time
}

func NewHandler(conversations ConversationCounter) *Handler {
	return &Handler{
		conversations: conversations,
		startedAt:     time.Now(),
	}
}

// NewRouter mounts /metrics and /healthz.
func NewRouter(h *Handler) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(LogrusLog())

	router.Get("/healthz", h.Health)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return router
}

// Health answers with the service status.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{
		Status:        "ok",
		Conversations: h.conversations.Len(),
		Uptime:        time.Since(h.startedAt).Round(time.Second).String(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.WithError(err).Error("Failed to encode health response")
	}
}

// LogrusLog logs every request at debug level.
func LogrusLog() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logrus.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start),
			}).Debug("HTTP request")
		})
	}
}
