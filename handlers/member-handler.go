package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flalji123/commodify-backend/models"
	"github.com/flalji123/commodify-backend/services"
)

type MemberRequest struct {
	UserID int64             `json:"userId"`
	Role   models.MemberRole `json:"role"`
}

type MemberHandler struct {
	Service *services.MemberService
}

func NewMemberHandler(service *services.MemberService) *MemberHandler {
	return &MemberHandler{Service: service}
}

func (h *MemberHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	projectID, err := pathID(r, "projectID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	member, err := h.Service.Add(r.Context(), user, projectID, req.UserID, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	user, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	projectID, err := pathID(r, "projectID")
	if err != nil {
		writeError(w, err)
		return
	}

	members, err := h.Service.ListByProject(r.Context(), user, projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.Remove(r.Context(), user, id); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w)
}
