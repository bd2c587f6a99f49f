package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/lodgewise/homestay-backend/internal/service"
)

type Handler struct {
	auth       *service.AuthService
	recs       *service.RecommendationService
	properties *service.PropertyService
	orders     *service.OrderService
	admin      *service.AdminService
	uploadDir  string
	validate   *validator.Validate
	log        zerolog.Logger
}

func NewHandler(
	auth *service.AuthService,
	recs *service.RecommendationService,
	properties *service.PropertyService,
	orders *service.OrderService,
	admin *service.AdminService,
	uploadDir string,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		auth:       auth,
		recs:       recs,
		properties: properties,
		orders:     orders,
		admin:      admin,
		uploadDir:  uploadDir,
		validate:   validator.New(),
		log:        log.With().Str("component", "http").Logger(),
	}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation. Writes a 400 and returns false on any failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body is not valid JSON")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return false
	}
	return true
}

// writeServiceError maps domain sentinel errors to HTTP statuses.
// Anything unrecognized is logged and surfaced as a 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "User does not exist")
	case errors.Is(err, domain.ErrPropertyNotFound):
		writeError(w, http.StatusNotFound, "property_not_found", "Property does not exist")
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order_not_found", "Order does not exist")
	case errors.Is(err, domain.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username_taken", "Username is already registered")
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email_taken", "Email is already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
	case errors.Is(err, domain.ErrUserDisabled):
		writeError(w, http.StatusForbidden, "user_disabled", "Account is disabled")
	case errors.Is(err, domain.ErrNotOwner):
		writeError(w, http.StatusForbidden, "forbidden", "Not allowed to access this resource")
	case errors.Is(err, domain.ErrPropertyUnavailable):
		writeError(w, http.StatusConflict, "property_unavailable", "Property is not available for booking")
	case errors.Is(err, domain.ErrInvalidDateRange):
		writeError(w, http.StatusBadRequest, "invalid_date_range", "Check-out must be after check-in and the stay cannot start in the past")
	case errors.Is(err, domain.ErrOrderNotCancellable):
		writeError(w, http.StatusConflict, "order_not_cancellable", "Only pending orders can be cancelled")
	default:
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

// pathID parses a positive int64 path parameter. Writes a 400 and
// returns false when the value is malformed.
func pathID(w http.ResponseWriter, raw, name string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

// parsePage reads page/size query parameters with sane defaults.
func parsePage(r *http.Request) (page, size int) {
	page, size = 1, 20
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 1 {
			page = parsed
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 1 && parsed <= 100 {
			size = parsed
		}
	}
	return page, size
}
