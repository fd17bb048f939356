package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/npc-engine/internal/orchestrator"
	"github.com/jwebster45206/npc-engine/pkg/interaction"
	"github.com/jwebster45206/npc-engine/pkg/npc"
)

// UnknownPersonDialogue is returned when the request path names no
// resolvable NPC id.
const UnknownPersonDialogue = "I don't know that person."

// InteractHandler handles POST /interact/{npcId}.
type InteractHandler struct {
	orchestrator *orchestrator.Orchestrator
	logger       *slog.Logger
}

// NewInteractHandler creates a new interact handler.
func NewInteractHandler(o *orchestrator.Orchestrator, logger *slog.Logger) *InteractHandler {
	return &InteractHandler{
		orchestrator: o,
		logger:       logger,
	}
}

func (h *InteractHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeResponse(w, h.logger, http.StatusMethodNotAllowed, &interaction.Response{
			Dialogue: "Only POST is supported.",
			Metadata: map[string]any{},
		})
		return
	}

	npcID := strings.TrimPrefix(r.URL.Path, "/interact/")
	if npcID == "" || !npc.IsValidID(npcID) {
		writeResponse(w, h.logger, http.StatusNotFound, &interaction.Response{
			Dialogue: UnknownPersonDialogue,
			Metadata: map[string]any{},
		})
		return
	}

	var req interaction.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid interact request body", "npc", npcID, "error", err)
		writeResponse(w, h.logger, http.StatusBadRequest, &interaction.Response{
			Dialogue: "Speak plainly.",
			Metadata: map[string]any{"error": "invalid request body"},
		})
		return
	}

	h.logger.Info("Interaction requested", "npc", npcID, "text_length", len(req.Text))

	resp := h.orchestrator.Interact(r.Context(), npcID, req.Text)

	status := http.StatusOK
	if resp.Dialogue == orchestrator.ServerErrorDialogue {
		status = http.StatusInternalServerError
	}
	writeResponse(w, h.logger, status, resp)
}

func writeResponse(w http.ResponseWriter, logger *slog.Logger, status int, resp *interaction.Response) {
	resp.Normalize()
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Error encoding interaction response", "error", err)
	}
}
