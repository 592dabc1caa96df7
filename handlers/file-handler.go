package handlers

import (
	"net/http"

	"github.com/flalji123/commodify-backend/services"
)

// maxUploadBytes bounds a single multipart upload held in memory before
// spilling to temp files.
const maxUploadBytes = 32 << 20

type FileHandler struct {
	Service *services.FileService
}

func NewFileHandler(service *services.FileService) *FileHandler {
	return &FileHandler{Service: service}
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart payload", http.StatusBadRequest)
		return
	}
	upload, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file field", http.StatusBadRequest)
		return
	}
	defer upload.Close()

	file, err := h.Service.Upload(r.Context(), user, projectID, header.Filename, upload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, file)
}

func (h *FileHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
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

	files, err := h.Service.ListByProject(r.Context(), user, projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
