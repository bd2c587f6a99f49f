package service

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStayNights(t *testing.T) {
	assert.Equal(t, 1, stayNights(date(2026, 9, 1), date(2026, 9, 2)))
	assert.Equal(t, 7, stayNights(date(2026, 9, 1), date(2026, 9, 8)))
	assert.Equal(t, 0, stayNights(date(2026, 9, 1), date(2026, 9, 1)))
	assert.Equal(t, -1, stayNights(date(2026, 9, 2), date(2026, 9, 1)))
}

func TestStayTotalExactDecimal(t *testing.T) {
	// 3 nights at 109.99 must be exactly 329.97, not a float approximation.
	nightly := decimal.RequireFromString("109.99")
	total := stayTotal(nightly, 3)
	assert.True(t, total.Equal(decimal.RequireFromString("329.97")), "got %s", total)
}

func TestNewOrderNumberShape(t *testing.T) {
	n := newOrderNumber()
	assert.True(t, strings.HasPrefix(n, "ORD-"))
	assert.Len(t, n, len("ORD-")+8)
	assert.Equal(t, strings.ToUpper(n), n)
	assert.NotEqual(t, n, newOrderNumber())
}
