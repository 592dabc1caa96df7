package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flalji123/commodify-backend/services"
)

type CommentRequest struct {
	Body string `json:"body"`
}

type CommentHandler struct {
	Service *services.CommentService
}

func NewCommentHandler(service *services.CommentService) *CommentHandler {
	return &CommentHandler{Service: service}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	comment, err := h.Service.Create(r.Context(), user, taskID, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) ListByTask(w http.ResponseWriter, r *http.Request) {
	user, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		writeError(w, err)
		return
	}

	comments, err := h.Service.ListByTask(r.Context(), user, taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Service.Delete(r.Context(), user, id); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w)
}
