package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lodgewise/homestay-backend/internal/auth"
)

const (
	maxUploadMemory = 32 << 20
	maxImageSize    = 5 << 20
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// POST /api/properties/{propertyID}/images
func (h *Handler) UploadPropertyImages(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}
	propertyID, ok := pathID(w, chi.URLParam(r, "propertyID"), "property_id")
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Expected multipart form data")
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_body", "No images attached under the images field")
		return
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		if header.Size > maxImageSize {
			writeError(w, http.StatusBadRequest, "file_too_large", "Each image must be at most 5 MB")
			return
		}
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedImageExts[ext] {
			writeError(w, http.StatusBadRequest, "unsupported_type", "Only jpg, jpeg, png and webp images are accepted")
			return
		}

		name := uuid.NewString() + ext
		url, err := h.saveUpload(header, name)
		if err != nil {
			h.log.Error().Err(err).Str("filename", header.Filename).Msg("image upload failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to store image")
			return
		}
		urls = append(urls, url)
	}

	p, err := h.properties.AppendImages(r.Context(), propertyID, claims.UserID, claims.Role, urls)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, UploadResponse{URLs: urls, Property: p})
}

func (h *Handler) saveUpload(header *multipart.FileHeader, name string) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
