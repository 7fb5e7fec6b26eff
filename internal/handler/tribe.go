package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mychoreapp/choretribe/internal/model"
	"github.com/mychoreapp/choretribe/internal/service"
	"github.com/mychoreapp/choretribe/internal/websocket"
)

type TribeHandler struct {
	tribes *service.TribeService
	hub    *websocket.Hub
}

func NewTribeHandler(tribes *service.TribeService, hub *websocket.Hub) *TribeHandler {
	return &TribeHandler{tribes: tribes, hub: hub}
}

func (h *TribeHandler) broadcast(ev websocket.Event) {
	if h.hub != nil {
		h.hub.Broadcast(ev)
	}
}

type tribeRequest struct {
	Name string `json:"name"`
}

func (h *TribeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	tribe, err := h.tribes.Create(req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.Event{Entity: "tribe", Action: "created", ID: tribe.ID, TribeID: tribe.ID})
	writeJSON(w, http.StatusCreated, tribe)
}

func (h *TribeHandler) List(w http.ResponseWriter, r *http.Request) {
	tribes, err := h.tribes.List()
	if err != nil {
		writeError(w, err)
		return
	}
	if tribes == nil {
		tribes = []model.Tribe{}
	}
	writeJSON(w, http.StatusOK, tribes)
}

func (h *TribeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	tribe, err := h.tribes.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if tribe == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tribe not found"})
		return
	}
	writeJSON(w, http.StatusOK, tribe)
}

func (h *TribeHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	tribe, err := h.tribes.GetByName(r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	if tribe == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tribe not found"})
		return
	}
	writeJSON(w, http.StatusOK, tribe)
}

func (h *TribeHandler) GetByJoinCode(w http.ResponseWriter, r *http.Request) {
	tribe, err := h.tribes.GetByJoinCode(r.PathValue("joinCode"))
	if err != nil {
		writeError(w, err)
		return
	}
	if tribe == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tribe not found"})
		return
	}
	writeJSON(w, http.StatusOK, tribe)
}

func (h *TribeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req tribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	tribe, err := h.tribes.Update(id, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.Event{Entity: "tribe", Action: "updated", ID: tribe.ID, TribeID: tribe.ID})
	writeJSON(w, http.StatusOK, tribe)
}

func (h *TribeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.tribes.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.Event{Entity: "tribe", Action: "deleted", ID: id, TribeID: id})
	w.WriteHeader(http.StatusNoContent)
}
