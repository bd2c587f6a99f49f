package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderCancelled OrderStatus = "CANCELLED"
	OrderCompleted OrderStatus = "COMPLETED"
)

// ParseOrderStatus validates a status string against the known set.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderCancelled, OrderCompleted:
		return OrderStatus(s), true
	}
	return "", false
}

type Order struct {
	ID           int64           `json:"id"`
	OrderNumber  string          `json:"order_number"`
	UserID       int64           `json:"user_id"`
	PropertyID   int64           `json:"property_id"`
	Property     *Property       `json:"property,omitempty"`
	CheckInDate  time.Time       `json:"check_in_date"`
	CheckOutDate time.Time       `json:"check_out_date"`
	GuestCount   int             `json:"guest_count"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Status       OrderStatus     `json:"status"`
	Remarks      string          `json:"remarks,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Nights is the length of stay in whole nights.
func (o Order) Nights() int {
	return int(o.CheckOutDate.Sub(o.CheckInDate).Hours() / 24)
}

// ActiveOn reports whether the stay occupies the property on the given
// date: the order is not cancelled or completed, and the date falls in
// [check-in, check-out). The check-out day itself is free.
func (o Order) ActiveOn(date time.Time) bool {
	if o.Status == OrderCancelled || o.Status == OrderCompleted {
		return false
	}
	d := date.Truncate(24 * time.Hour)
	return !o.CheckInDate.After(d) && o.CheckOutDate.After(d)
}
