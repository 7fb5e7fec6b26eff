package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/mychoreapp/choretribe/internal/model"
	"github.com/mychoreapp/choretribe/internal/service"
	"github.com/mychoreapp/choretribe/internal/websocket"
)

type CompletionHandler struct {
	completions *service.CompletionService
	hub         *websocket.Hub
}

func NewCompletionHandler(completions *service.CompletionService, hub *websocket.Hub) *CompletionHandler {
	return &CompletionHandler{completions: completions, hub: hub}
}

func (h *CompletionHandler) broadcast(ev websocket.Event) {
	if h.hub != nil {
		h.hub.Broadcast(ev)
	}
}

type completeRequest struct {
	CompletionDate *time.Time `json:"completion_date"`
}

// Record handles POST /api/chore-completions/{choreId}/complete-by/{userId}.
// The body is optional; when present it may backdate the completion.
func (h *CompletionHandler) Record(w http.ResponseWriter, r *http.Request) {
	choreID, err := parsePathInt(r, "choreId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid chore id"})
		return
	}
	userID, err := parsePathInt(r, "userId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	completion, err := h.completions.Record(choreID, userID, req.CompletionDate)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.Event{
		Entity: "chore_completion",
		Action: "created",
		ID:     completion.ID,
		Extra: map[string]any{
			"chore_id":       completion.ChoreID,
			"completed_by":   completion.CompletedBy,
			"points_awarded": completion.PointsAwarded,
		},
	})
	writeJSON(w, http.StatusCreated, completion)
}

func (h *CompletionHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	completions, err := h.completions.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeCompletions(w, completions)
}

func (h *CompletionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	completion, err := h.completions.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if completion == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "chore completion not found"})
		return
	}
	writeJSON(w, http.StatusOK, completion)
}

func (h *CompletionHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parsePathInt(r, "userId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	completions, err := h.completions.ListByUser(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCompletions(w, completions)
}

func (h *CompletionHandler) ListByChore(w http.ResponseWriter, r *http.Request) {
	choreID, err := parsePathInt(r, "choreId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid chore id"})
		return
	}

	completions, err := h.completions.ListByChore(choreID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCompletions(w, completions)
}

func (h *CompletionHandler) ListByTribeAndRange(w http.ResponseWriter, r *http.Request) {
	tribeID, err := parsePathInt(r, "tribeId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tribe id"})
		return
	}
	start, end, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start and end must be YYYY-MM-DD dates"})
		return
	}

	completions, err := h.completions.ListByTribeAndDateRange(tribeID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCompletions(w, completions)
}

func (h *CompletionHandler) ListByUserAndRange(w http.ResponseWriter, r *http.Request) {
	userID, err := parsePathInt(r, "userId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}
	start, end, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start and end must be YYYY-MM-DD dates"})
		return
	}

	completions, err := h.completions.ListByUserAndDateRange(userID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCompletions(w, completions)
}

// Delete removes the completion record only. Awarded points stay with the
// user.
func (h *CompletionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.completions.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.Event{Entity: "chore_completion", Action: "deleted", ID: id})
	w.WriteHeader(http.StatusNoContent)
}

func writeCompletions(w http.ResponseWriter, completions []model.ChoreCompletion) {
	if completions == nil {
		completions = []model.ChoreCompletion{}
	}
	writeJSON(w, http.StatusOK, completions)
}
