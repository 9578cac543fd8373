package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"scentra-be/internal/logger"
	"scentra-be/internal/order"
	"scentra-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context()).With(
		zap.String("handler", "Order"),
		zap.String("method", "Place"),
	)

	var input order.PlaceOrderInput
	if !decodeBody(w, r, &input) {
		return
	}

	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		input.UserID = &userID
	}
	input.IdempotencyKey = r.Header.Get("Idempotency-Key")

	conf, err := h.svc.PlaceOrder(r.Context(), input)
	if err != nil {
		var structural *order.StructuralError
		if errors.As(err, &structural) {
			writeError(w, http.StatusBadRequest, "missing_fields",
				"missing required order fields", structural.Missing...)
			return
		}

		var validation *order.ValidationError
		if errors.As(err, &validation) {
			writeError(w, http.StatusBadRequest, "validation_failed",
				"order validation failed", validation.Messages...)
			return
		}

		if errors.Is(err, order.ErrAllocatorExhausted) {
			log.Error("order number allocation exhausted", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error",
				"failed to generate unique order number")
			return
		}

		log.Error("failed to place order", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to place order")
		return
	}

	status := http.StatusCreated
	if conf.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, conf)
}

// GetByNumber handles GET /api/orders/number/{orderNumber}.
func (h *OrderHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "orderNumber")

	o, err := h.svc.GetByNumber(r.Context(), number)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		logger.FromCtx(r.Context()).Error("failed to get order", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to fetch order")
		return
	}

	writeJSON(w, http.StatusOK, o)
}

// ListByEmail handles GET /api/orders?email=.
func (h *OrderHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "email query parameter is required")
		return
	}

	limit := queryInt32(r, "limit", 20)
	page := queryInt32(r, "page", 1)

	orders, err := h.svc.ListByEmail(r.Context(), email, limit, page)
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to list orders", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list orders")
		return
	}

	if orders == nil {
		orders = []*order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// AdminList handles GET /api/admin/orders.
func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := order.ListFilter{
		Limit: queryInt32(r, "limit", 20),
		Page:  queryInt32(r, "page", 1),
	}

	if s := q.Get("status"); s != "" {
		st := order.Status(s)
		if !order.ValidStatus(st) {
			writeError(w, http.StatusBadRequest, "bad_request", "unknown order status")
			return
		}
		filter.Status = &st
	}
	if s := q.Get("search"); s != "" {
		filter.Search = &s
	}
	if s := q.Get("email"); s != "" {
		filter.Email = &s
	}
	if s := q.Get("dateFrom"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid dateFrom")
			return
		}
		filter.DateFrom = &t
	}
	if s := q.Get("dateTo"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid dateTo")
			return
		}
		filter.DateTo = &t
	}

	orders, err := h.svc.List(r.Context(), filter)
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to list orders", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list orders")
		return
	}

	if orders == nil {
		orders = []*order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// AdminStats handles GET /api/admin/orders/stats.
func (h *OrderHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	byDay := r.URL.Query().Get("byDay") == "true"

	stats, err := h.svc.Stats(r.Context(), byDay)
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to compute order stats", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to compute stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// AdminUpdateStatus handles PATCH /api/admin/orders/{id}/status.
func (h *OrderHandler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return
	}

	var body struct {
		Status order.Status `json:"status"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), uint(id), body.Status); err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "bad_request", "unknown order status")
		case errors.Is(err, order.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "not_found", "order not found")
		default:
			logger.FromCtx(r.Context()).Error("failed to update order status", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to update status")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(body.Status)})
}

// AdminDelete handles DELETE /api/admin/orders/{id}.
func (h *OrderHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return
	}

	if err := h.svc.Delete(r.Context(), uint(id)); err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		logger.FromCtx(r.Context()).Error("failed to delete order", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to delete order")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func queryInt32(r *http.Request, key string, def int32) int32 {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n <= 0 {
		return def
	}
	return int32(n)
}
