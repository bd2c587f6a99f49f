package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lodgewise/homestay-backend/internal/auth"
	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/lodgewise/homestay-backend/internal/service"
)

// POST /api/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}

	var req OrderRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	checkIn, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid check_in_date, expected YYYY-MM-DD")
		return
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOutDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid check_out_date, expected YYYY-MM-DD")
		return
	}

	order, err := h.orders.Create(r.Context(), claims.UserID, service.CreateOrderInput{
		PropertyID:   req.PropertyID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		GuestCount:   req.GuestCount,
		Remarks:      req.Remarks,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// GET /api/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}
	page, size := parsePage(r)
	orders, total, err := h.orders.ListByUser(r.Context(), claims.UserID, page, size)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PageResponse{Records: orders, Page: page, Size: size, Total: total})
}

// GET /api/orders/{orderID}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}
	orderID, ok := pathID(w, chi.URLParam(r, "orderID"), "order_id")
	if !ok {
		return
	}

	order, err := h.orders.Get(r.Context(), orderID, claims.UserID, claims.Role)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// GET /api/orders/number/{orderNumber}
func (h *Handler) GetOrderByNumber(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}
	orderNumber := chi.URLParam(r, "orderNumber")
	if orderNumber == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid order_number parameter")
		return
	}

	order, err := h.orders.GetByNumber(r.Context(), orderNumber, claims.UserID, claims.Role)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// PUT /api/orders/{orderID}/status
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}
	orderID, ok := pathID(w, chi.URLParam(r, "orderID"), "order_id")
	if !ok {
		return
	}

	var req OrderStatusRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	status, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Unknown order status")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), orderID, claims.UserID, claims.Role, status)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// POST /api/orders/{orderID}/cancel
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}
	orderID, ok := pathID(w, chi.URLParam(r, "orderID"), "order_id")
	if !ok {
		return
	}

	if err := h.orders.Cancel(r.Context(), orderID, claims.UserID, claims.Role); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
