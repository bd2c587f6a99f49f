package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property is a bookable homestay listing. Price and rating are decimals:
// money must not drift through float rounding, and ratings keep one
// fractional digit.
type Property struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	City         string          `json:"city"`
	District     string          `json:"district,omitempty"`
	Address      string          `json:"address,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	MaxGuests    int             `json:"max_guests"`
	PropertyType string          `json:"property_type,omitempty"`
	Amenities    []string        `json:"amenities,omitempty"`
	Images       []string        `json:"images,omitempty"`
	Available    bool            `json:"available"`
	LandlordID   int64           `json:"landlord_id"`
	Rating       decimal.Decimal `json:"rating"`
	ReviewCount  int             `json:"review_count"`
	ViewCount    int             `json:"view_count"`
	BookingCount int             `json:"booking_count"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PropertyOccupancy is a landlord-facing view of a listing with its
// current occupancy derived from active orders.
type PropertyOccupancy struct {
	ID             int64           `json:"id"`
	Title          string          `json:"title"`
	City           string          `json:"city"`
	Address        string          `json:"address,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Bedrooms       int             `json:"bedrooms"`
	MaxGuests      int             `json:"max_guests"`
	PropertyType   string          `json:"property_type,omitempty"`
	BookingCount   int             `json:"booking_count"`
	OccupiedRooms  int             `json:"occupied_rooms"`
	RemainingRooms int             `json:"remaining_rooms"`
	ActiveGuests   int             `json:"active_guests"`
}

// DailyAvailability is one day of a property's booking calendar.
type DailyAvailability struct {
	Date            string `json:"date"`
	BookedRooms     int    `json:"booked_rooms"`
	RemainingRooms  int    `json:"remaining_rooms"`
	BookedGuests    int    `json:"booked_guests"`
	RemainingGuests int    `json:"remaining_guests"`
}
