package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload handles POST /api/upload: a multipart "image" field, image/* mime
// only, bounded by maxUpload. The file lands in uploadDir under a generated
// name to avoid collisions and path tricks from client-supplied filenames.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		respondMessage(w, http.StatusBadRequest, "file too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		respondMessage(w, http.StatusBadRequest, "only image files are allowed")
		return
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		respondInternal(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Message  string `json:"message"`
		Filename string `json:"filename"`
		Path     string `json:"path"`
	}{"File uploaded successfully", name, "/uploads/" + name})
}
