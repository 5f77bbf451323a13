package handlers

import (
	"net/http"

	"github.com/username/networth/src/logger"
	"github.com/username/networth/src/store"
	"github.com/username/networth/src/utils"
)

const successResponse = "Success"

type UserHandler struct {
	store *store.Store
}

func NewUserHandler(s *store.Store) *UserHandler {
	return &UserHandler{store: s}
}

func (h *UserHandler) HandleAddUser(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		sendError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		sendError(w, r, err)
		return
	}

	u, err := h.store.AddUser(req.FirstName, req.LastName, *req.Age, req.Email)
	if err != nil {
		sendError(w, r, err)
		return
	}
	logger.L.Debug("HandleAddUser succeeded", "id", u.ID, "email", u.Email)
	utils.WriteJSON(w, http.StatusOK, successResponse)
}

func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	email, err := emailQuery(r)
	if err != nil {
		sendError(w, r, err)
		return
	}
	u, err := h.store.GetUser(email)
	if err != nil {
		sendError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}
