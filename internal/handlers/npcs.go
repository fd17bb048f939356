package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/npc-engine/internal/services"
)

// NPCsHandler lists the ids of authored NPC profiles, for clients that
// need to offer a roster.
type NPCsHandler struct {
	storage services.Storage
	logger  *slog.Logger
}

func NewNPCsHandler(storage services.Storage, logger *slog.Logger) *NPCsHandler {
	return &NPCsHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *NPCsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ids, err := h.storage.ListProfiles(r.Context())
	if err != nil {
		h.logger.Error("Failed to list profiles", "error", err)
		http.Error(w, "Failed to list NPCs", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string][]string{"npcs": ids}); err != nil {
		h.logger.Error("Error encoding NPC list", "error", err)
	}
}
