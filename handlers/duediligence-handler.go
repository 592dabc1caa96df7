package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flalji123/commodify-backend/services"
)

type DueDiligenceRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type DueDiligenceHandler struct {
	Service *services.DueDiligenceService
}

func NewDueDiligenceHandler(service *services.DueDiligenceService) *DueDiligenceHandler {
	return &DueDiligenceHandler{Service: service}
}

func (h *DueDiligenceHandler) Screen(w http.ResponseWriter, r *http.Request) {
	if _, err := principal(r); err != nil {
		writeError(w, err)
		return
	}

	var req DueDiligenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	result, err := h.Service.Screen(r.Context(), req.Name, req.Country)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
