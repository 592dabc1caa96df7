package handlers

import (
	"net/http"
	"strconv"

	"github.com/flalji123/commodify-backend/services"
)

type ActivityHandler struct {
	Service *services.ActivityService
}

func NewActivityHandler(service *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: service}
}

// ListRecent serves the global feed. Any authenticated user may read it.
func (h *ActivityHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	if _, err := principal(r); err != nil {
		writeError(w, err)
		return
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	activities, err := h.Service.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}
