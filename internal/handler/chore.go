package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mychoreapp/choretribe/internal/model"
	"github.com/mychoreapp/choretribe/internal/service"
	"github.com/mychoreapp/choretribe/internal/websocket"
)

type ChoreHandler struct {
	chores *service.ChoreService
	hub    *websocket.Hub
}

func NewChoreHandler(chores *service.ChoreService, hub *websocket.Hub) *ChoreHandler {
	return &ChoreHandler{chores: chores, hub: hub}
}

func (h *ChoreHandler) broadcast(ev websocket.Event) {
	if h.hub != nil {
		h.hub.Broadcast(ev)
	}
}

func choreEvent(action string, c *model.Chore) websocket.Event {
	return websocket.Event{Entity: "chore", Action: action, ID: c.ID, TribeID: c.TribeID}
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	tribeID, err := parsePathInt(r, "tribeId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tribe id"})
		return
	}

	var in service.ChoreInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	chore, err := h.chores.Create(tribeID, in)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(choreEvent("created", chore))
	writeJSON(w, http.StatusCreated, chore)
}

func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	chores, err := h.chores.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeChores(w, chores)
}

func (h *ChoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	chore, err := h.chores.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if chore == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "chore not found"})
		return
	}
	writeJSON(w, http.StatusOK, chore)
}

func (h *ChoreHandler) ListByTribe(w http.ResponseWriter, r *http.Request) {
	tribeID, err := parsePathInt(r, "tribeId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tribe id"})
		return
	}

	chores, err := h.chores.ListByTribe(tribeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeChores(w, chores)
}

func (h *ChoreHandler) ListActiveByTribe(w http.ResponseWriter, r *http.Request) {
	tribeID, err := parsePathInt(r, "tribeId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tribe id"})
		return
	}

	chores, err := h.chores.ListActiveByTribe(tribeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeChores(w, chores)
}

func (h *ChoreHandler) ListByAssignee(w http.ResponseWriter, r *http.Request) {
	userID, err := parsePathInt(r, "userId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	chores, err := h.chores.ListByAssignee(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeChores(w, chores)
}

func (h *ChoreHandler) ListActiveByAssignee(w http.ResponseWriter, r *http.Request) {
	userID, err := parsePathInt(r, "userId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	chores, err := h.chores.ListActiveByAssignee(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeChores(w, chores)
}

func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var in service.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	chore, err := h.chores.Update(id, in)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(choreEvent("updated", chore))
	writeJSON(w, http.StatusOK, chore)
}

func (h *ChoreHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	userID, err := parsePathInt(r, "userId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	chore, err := h.chores.Assign(id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(choreEvent("updated", chore))
	writeJSON(w, http.StatusOK, chore)
}

func (h *ChoreHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	chore, err := h.chores.Unassign(id)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(choreEvent("updated", chore))
	writeJSON(w, http.StatusOK, chore)
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.chores.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.Event{Entity: "chore", Action: "deleted", ID: id})
	w.WriteHeader(http.StatusNoContent)
}

func writeChores(w http.ResponseWriter, chores []model.Chore) {
	if chores == nil {
		chores = []model.Chore{}
	}
	writeJSON(w, http.StatusOK, chores)
}
