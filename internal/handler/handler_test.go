package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/lodgewise/homestay-backend/internal/domain"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 1, 20},
		{"?page=3&size=50", 3, 50},
		{"?page=0&size=0", 1, 20},
		{"?page=-1&size=500", 1, 20},
		{"?page=abc&size=xyz", 1, 20},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/api/properties"+tc.query, nil)
		page, size := parsePage(r)
		assert.Equal(t, tc.wantPage, page, "query %q", tc.query)
		assert.Equal(t, tc.wantSize, size, "query %q", tc.query)
	}
}

func TestParseLimitBounds(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/recommendations", nil)
	limit, ok := parseLimit(httptest.NewRecorder(), r)
	assert.True(t, ok)
	assert.Equal(t, 10, limit)

	r = httptest.NewRequest(http.MethodGet, "/api/recommendations?limit=25", nil)
	limit, ok = parseLimit(httptest.NewRecorder(), r)
	assert.True(t, ok)
	assert.Equal(t, 25, limit)

	for _, raw := range []string{"0", "51", "-5", "abc"} {
		w := httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodGet, "/api/recommendations?limit="+raw, nil)
		_, ok = parseLimit(w, r)
		assert.False(t, ok, "limit %q", raw)
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit %q", raw)
	}
}

func TestServiceErrorMapping(t *testing.T) {
	h := &Handler{log: zerolog.Nop()}
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrPropertyNotFound, http.StatusNotFound},
		{domain.ErrOrderNotFound, http.StatusNotFound},
		{domain.ErrUsernameTaken, http.StatusConflict},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUserDisabled, http.StatusForbidden},
		{domain.ErrNotOwner, http.StatusForbidden},
		{domain.ErrPropertyUnavailable, http.StatusConflict},
		{domain.ErrInvalidDateRange, http.StatusBadRequest},
		{domain.ErrOrderNotCancellable, http.StatusConflict},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/orders/1", nil)
		h.writeServiceError(w, r, tc.err)
		assert.Equal(t, tc.want, w.Code, "error %v", tc.err)
	}
}

func TestPathID(t *testing.T) {
	w := httptest.NewRecorder()
	id, ok := pathID(w, "42", "property_id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-3", "abc"} {
		w = httptest.NewRecorder()
		_, ok = pathID(w, raw, "property_id")
		assert.False(t, ok, "raw %q", raw)
		assert.Equal(t, http.StatusBadRequest, w.Code, "raw %q", raw)
	}
}
