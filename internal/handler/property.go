package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lodgewise/homestay-backend/internal/auth"
	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/lodgewise/homestay-backend/internal/repository"
)

const dateLayout = "2006-01-02"

// availability queries are capped to a quarter to bound the response.
const maxAvailabilityDays = 92

// GET /api/properties
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	page, size := parsePage(r)
	props, total, err := h.properties.List(r.Context(), page, size)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PageResponse{Records: props, Page: page, Size: size, Total: total})
}

// GET /api/properties/search
func (h *Handler) SearchProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := repository.PropertySearch{City: q.Get("city")}

	if raw := q.Get("min_price"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid min_price parameter")
			return
		}
		search.MinPrice = &d
	}
	if raw := q.Get("max_price"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid max_price parameter")
			return
		}
		search.MaxPrice = &d
	}
	if raw := q.Get("bedrooms"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid bedrooms parameter")
			return
		}
		search.MinBedrooms = &n
	}

	page, size := parsePage(r)
	props, total, err := h.properties.Search(r.Context(), search, page, size)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PageResponse{Records: props, Page: page, Size: size, Total: total})
}

// GET /api/properties/popular
func (h *Handler) PopularProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.properties.Popular(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// GET /api/properties/top-rated
func (h *Handler) TopRatedProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.properties.TopRated(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// GET /api/properties/{propertyID}
func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathID(w, chi.URLParam(r, "propertyID"), "property_id")
	if !ok {
		return
	}

	p, err := h.properties.Get(r.Context(), propertyID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	// Signed-in views feed the recommendation signal; anonymous ones
	// only bump the counter.
	if claims, ok := auth.FromContext(r.Context()); ok {
		if _, err := h.recs.RecordInteraction(r.Context(), claims.UserID, propertyID, domain.InteractionView, nil); err != nil {
			h.log.Warn().Err(err).Int64("user_id", claims.UserID).Int64("property_id", propertyID).Msg("view interaction not recorded")
		}
	}

	writeJSON(w, http.StatusOK, p)
}

// GET /api/properties/{propertyID}/availability
func (h *Handler) PropertyAvailability(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathID(w, chi.URLParam(r, "propertyID"), "property_id")
	if !ok {
		return
	}

	q := r.URL.Query()
	from := time.Now().UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 1, 0)
	if raw := q.Get("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid from parameter, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if raw := q.Get("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid to parameter, expected YYYY-MM-DD")
			return
		}
		to = parsed
	}
	if !to.After(from) || to.Sub(from) > maxAvailabilityDays*24*time.Hour {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Date range must be positive and at most 92 days")
		return
	}

	days, err := h.properties.DailyAvailability(r.Context(), propertyID, from, to)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func propertyFromRequest(req PropertyRequest) *domain.Property {
	p := &domain.Property{
		Title:        req.Title,
		Description:  req.Description,
		City:         req.City,
		District:     req.District,
		Address:      req.Address,
		Price:        req.Price,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		MaxGuests:    req.MaxGuests,
		PropertyType: req.PropertyType,
		Amenities:    req.Amenities,
		Images:       req.Images,
		Available:    true,
	}
	if req.Available != nil {
		p.Available = *req.Available
	}
	return p
}

// POST /api/properties
func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}

	var req PropertyRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	if !req.Price.IsPositive() {
		writeError(w, http.StatusBadRequest, "validation_failed", "Price must be positive")
		return
	}

	p := propertyFromRequest(req)
	p.LandlordID = claims.UserID
	if err := h.properties.Create(r.Context(), p); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// PUT /api/properties/{propertyID}
func (h *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}
	propertyID, ok := pathID(w, chi.URLParam(r, "propertyID"), "property_id")
	if !ok {
		return
	}

	var req PropertyRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	if !req.Price.IsPositive() {
		writeError(w, http.StatusBadRequest, "validation_failed", "Price must be positive")
		return
	}

	updated, err := h.properties.Update(r.Context(), propertyID, claims.UserID, claims.Role, propertyFromRequest(req))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/properties/{propertyID}
func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}
	propertyID, ok := pathID(w, chi.URLParam(r, "propertyID"), "property_id")
	if !ok {
		return
	}

	if err := h.properties.Delete(r.Context(), propertyID, claims.UserID, claims.Role); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/landlord/properties
func (h *Handler) LandlordProperties(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}
	page, size := parsePage(r)
	props, total, err := h.properties.ByLandlord(r.Context(), claims.UserID, page, size)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PageResponse{Records: props, Page: page, Size: size, Total: total})
}

// GET /api/landlord/occupancy
func (h *Handler) LandlordOccupancy(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}
	page, size := parsePage(r)
	stats, total, err := h.properties.Occupancy(r.Context(), claims.UserID, page, size)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PageResponse{Records: stats, Page: page, Size: size, Total: total})
}

// POST /api/properties/{propertyID}/favorite
func (h *Handler) FavoriteProperty(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}
	propertyID, ok := pathID(w, chi.URLParam(r, "propertyID"), "property_id")
	if !ok {
		return
	}

	interaction, err := h.recs.RecordInteraction(r.Context(), claims.UserID, propertyID, domain.InteractionFavorite, nil)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, interaction)
}

// POST /api/properties/{propertyID}/review
func (h *Handler) ReviewProperty(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}
	propertyID, ok := pathID(w, chi.URLParam(r, "propertyID"), "property_id")
	if !ok {
		return
	}

	var req ReviewRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	interaction, err := h.recs.RecordInteraction(r.Context(), claims.UserID, propertyID, domain.InteractionReview, &req.Rating)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, interaction)
}
