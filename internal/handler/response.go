package handler

import (
	"github.com/shopspring/decimal"

	"github.com/lodgewise/homestay-backend/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type RecommendationMeta struct {
	Algorithm   string `json:"algorithm"`
	CacheHit    bool   `json:"cache_hit"`
	TotalCount  int    `json:"total_count"`
	GeneratedAt string `json:"generated_at"`
}

type RecommendationResponse struct {
	UserID     int64              `json:"user_id"`
	Properties []domain.Property  `json:"properties"`
	Metadata   RecommendationMeta `json:"metadata"`
}

type PageResponse struct {
	Records any `json:"records"`
	Page    int `json:"page"`
	Size    int `json:"size"`
	Total   int `json:"total"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Role     string `json:"role" validate:"omitempty,oneof=USER LANDLORD ADMIN"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type PropertyRequest struct {
	Title        string          `json:"title" validate:"required,max=200"`
	Description  string          `json:"description" validate:"omitempty,max=5000"`
	City         string          `json:"city" validate:"required,max=100"`
	District     string          `json:"district" validate:"omitempty,max=100"`
	Address      string          `json:"address" validate:"omitempty,max=300"`
	Price        decimal.Decimal `json:"price"`
	Bedrooms     int             `json:"bedrooms" validate:"min=0,max=50"`
	Bathrooms    int             `json:"bathrooms" validate:"min=0,max=50"`
	MaxGuests    int             `json:"max_guests" validate:"min=1,max=100"`
	PropertyType string          `json:"property_type" validate:"omitempty,max=50"`
	Amenities    []string        `json:"amenities" validate:"omitempty,dive,max=100"`
	Images       []string        `json:"images" validate:"omitempty,dive,max=500"`
	Available    *bool           `json:"available"`
}

type OrderRequest struct {
	PropertyID   int64  `json:"property_id" validate:"required,gt=0"`
	CheckInDate  string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	GuestCount   int    `json:"guest_count" validate:"required,min=1,max=100"`
	Remarks      string `json:"remarks" validate:"omitempty,max=500"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

type ReviewRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type UserEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type UploadResponse struct {
	URLs     []string         `json:"urls"`
	Property *domain.Property `json:"property"`
}
