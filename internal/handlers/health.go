package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/npc-engine/internal/services"
)

type HealthResponse struct {
	OK         bool              `json:"ok"`
	Time       time.Time         `json:"time"`
	Components map[string]string `json:"components"`
}

type HealthHandler struct {
	storage services.Storage
	logger  *slog.Logger
}

func NewHealthHandler(storage services.Storage, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := make(map[string]string)
	ok := true

	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Warn("Storage health check failed", "error", err)
		components["storage"] = "unhealthy"
		ok = false
	} else {
		components["storage"] = "healthy"
	}

	response := HealthResponse{
		OK:         ok,
		Time:       time.Now(),
		Components: components,
	}

	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}

	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding health response", "error", err)
	}
}
