package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/lodgewise/homestay-backend/internal/auth"
	"github.com/lodgewise/homestay-backend/internal/service"
)

// parseLimit validates the optional limit query parameter. Out-of-range
// values are rejected rather than clamped so clients learn the bounds.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return 0, false
		}
		limit = parsed
	}
	return limit, true
}

func (h *Handler) serveRecommendations(
	w http.ResponseWriter,
	r *http.Request,
	algorithm string,
	compute func(ctx context.Context, userID int64, limit int) (*service.RecommendationResult, error),
) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	result, err := compute(r.Context(), claims.UserID, limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendationResponse{
		UserID:     claims.UserID,
		Properties: result.Properties,
		Metadata: RecommendationMeta{
			Algorithm:   algorithm,
			CacheHit:    result.CacheHit,
			TotalCount:  len(result.Properties),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// GET /api/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	h.serveRecommendations(w, r, "hybrid", h.recs.Hybrid)
}

// GET /api/recommendations/collaborative
func (h *Handler) GetCollaborativeRecommendations(w http.ResponseWriter, r *http.Request) {
	h.serveRecommendations(w, r, "collaborative", h.recs.Collaborative)
}

// GET /api/recommendations/content-based
func (h *Handler) GetContentBasedRecommendations(w http.ResponseWriter, r *http.Request) {
	h.serveRecommendations(w, r, "content-based", h.recs.ContentBased)
}
