package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mychoreapp/choretribe/internal/model"
	"github.com/mychoreapp/choretribe/internal/service"
	"github.com/mychoreapp/choretribe/internal/websocket"
)

type UserHandler struct {
	users *service.UserService
	hub   *websocket.Hub
}

func NewUserHandler(users *service.UserService, hub *websocket.Hub) *UserHandler {
	return &UserHandler{users: users, hub: hub}
}

func (h *UserHandler) broadcast(ev websocket.Event) {
	if h.hub != nil {
		h.hub.Broadcast(ev)
	}
}

func userEvent(action string, u *model.User) websocket.Event {
	ev := websocket.Event{Entity: "user", Action: action, ID: u.ID}
	if u.TribeID != nil {
		ev.TribeID = *u.TribeID
	}
	return ev
}

type registerRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email"`
	GoogleID *string `json:"google_id"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	user, err := h.users.Register(req.Username, req.Password, req.Email, req.GoogleID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(userEvent("created", user))
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	user, err := h.users.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByUsername(r.PathValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByEmail(r.PathValue("email"))
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetByGoogleID(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByGoogleID(r.PathValue("googleId"))
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) AddPoints(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	points, err := parsePathInt(r, "points")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid points"})
		return
	}

	user, err := h.users.AddPoints(id, int(points))
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(userEvent("updated", user))
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) JoinTribe(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	user, err := h.users.JoinTribe(id, r.PathValue("joinCode"))
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(userEvent("updated", user))
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) LeaveTribe(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	user, err := h.users.LeaveTribe(id)
	if err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(userEvent("updated", user))
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.users.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	h.broadcast(websocket.Event{Entity: "user", Action: "deleted", ID: id})
	w.WriteHeader(http.StatusNoContent)
}
