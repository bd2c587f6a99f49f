package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// GET /api/admin/users
func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	page, size := parsePage(r)
	users, total, err := h.admin.ListUsers(r.Context(), page, size)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PageResponse{Records: users, Page: page, Size: size, Total: total})
}

// PUT /api/admin/users/{userID}/enabled
func (h *Handler) AdminSetUserEnabled(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, chi.URLParam(r, "userID"), "user_id")
	if !ok {
		return
	}

	var req UserEnabledRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.admin.SetUserEnabled(r.Context(), userID, *req.Enabled); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user_id": userID, "enabled": *req.Enabled})
}

// GET /api/admin/stats
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /api/admin/recommendations/batch
func (h *Handler) AdminBatchRecommendations(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 10000 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid page parameter")
			return
		}
		page = parsed
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	result, err := h.recs.Batch(r.Context(), page, limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
