package service

import (
	"testing"

	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyAvailability(t *testing.T) {
	property := &domain.Property{ID: 1, Bedrooms: 3, MaxGuests: 6}
	orders := []domain.Order{
		{
			Status:       domain.OrderConfirmed,
			CheckInDate:  date(2026, 9, 1),
			CheckOutDate: date(2026, 9, 4), // occupies 1st..3rd, 4th is free
			GuestCount:   2,
		},
		{
			Status:       domain.OrderPending,
			CheckInDate:  date(2026, 9, 3),
			CheckOutDate: date(2026, 9, 5),
			GuestCount:   3,
		},
		{
			// Cancelled stays never occupy rooms.
			Status:       domain.OrderCancelled,
			CheckInDate:  date(2026, 9, 1),
			CheckOutDate: date(2026, 9, 10),
			GuestCount:   4,
		},
	}

	days := dailyAvailability(property, orders, date(2026, 9, 1), date(2026, 9, 6))
	require.Len(t, days, 5)

	assert.Equal(t, "2026-09-01", days[0].Date)
	assert.Equal(t, 1, days[0].BookedRooms)
	assert.Equal(t, 2, days[0].RemainingRooms)
	assert.Equal(t, 2, days[0].BookedGuests)
	assert.Equal(t, 4, days[0].RemainingGuests)

	// Overlap day: both active stays occupy a room.
	assert.Equal(t, 2, days[2].BookedRooms)
	assert.Equal(t, 1, days[2].RemainingRooms)
	assert.Equal(t, 5, days[2].BookedGuests)

	// Check-out day of the first stay: only the second remains.
	assert.Equal(t, 1, days[3].BookedRooms)

	// Past the last check-out: fully free.
	assert.Equal(t, 0, days[4].BookedRooms)
	assert.Equal(t, 3, days[4].RemainingRooms)
	assert.Equal(t, 6, days[4].RemainingGuests)
}

func TestOrderActiveOn(t *testing.T) {
	order := domain.Order{
		Status:       domain.OrderPending,
		CheckInDate:  date(2026, 9, 1),
		CheckOutDate: date(2026, 9, 3),
	}
	assert.False(t, order.ActiveOn(date(2026, 8, 31)))
	assert.True(t, order.ActiveOn(date(2026, 9, 1)))
	assert.True(t, order.ActiveOn(date(2026, 9, 2)))
	assert.False(t, order.ActiveOn(date(2026, 9, 3)), "check-out day does not occupy")

	order.Status = domain.OrderCompleted
	assert.False(t, order.ActiveOn(date(2026, 9, 2)))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultLimit, clampLimit(0))
	assert.Equal(t, defaultLimit, clampLimit(-3))
	assert.Equal(t, 25, clampLimit(25))
	assert.Equal(t, maxLimit, clampLimit(500))
}
