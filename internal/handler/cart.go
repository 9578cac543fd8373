package handler

import (
	"errors"
	"net/http"
	"strconv"

	"scentra-be/internal/cart"
	"scentra-be/internal/logger"
	"scentra-be/internal/product"
	"scentra-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	items, err := h.svc.GetCart(r.Context(), userID)
	if err != nil {
		if errors.Is(err, cart.ErrUserNotAuthenticated) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		logger.FromCtx(r.Context()).Error("failed to get cart", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to fetch cart")
		return
	}

	if items == nil {
		items = []cart.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req struct {
		ProductID    string `json:"productId"`
		SelectedSize string `json:"selectedSize"`
		Quantity     int    `json:"quantity"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.svc.Add(r.Context(), cart.AddParams{
		UserID:       userID,
		ProductID:    req.ProductID,
		SelectedSize: req.SelectedSize,
		Quantity:     req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrUserNotAuthenticated):
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		case errors.Is(err, cart.ErrInvalidQuantity):
			writeError(w, http.StatusBadRequest, "bad_request", "quantity must be at least 1")
		case errors.Is(err, product.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "product not found")
		default:
			logger.FromCtx(r.Context()).Error("failed to add cart item", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to add to cart")
		}
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// UpdateQuantity handles PATCH /api/cart/{id}.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	itemID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid cart item id")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.svc.UpdateQuantity(r.Context(), userID, uint(itemID), req.Quantity); err != nil {
		switch {
		case errors.Is(err, cart.ErrUserNotAuthenticated):
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		case errors.Is(err, cart.ErrInvalidQuantity):
			writeError(w, http.StatusBadRequest, "bad_request", "quantity must be at least 1")
		case errors.Is(err, cart.ErrItemNotFound):
			writeError(w, http.StatusNotFound, "not_found", "cart item not found")
		default:
			logger.FromCtx(r.Context()).Error("failed to update cart item", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to update cart")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"quantity": req.Quantity})
}

// Remove handles DELETE /api/cart/{id}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	itemID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid cart item id")
		return
	}

	if err := h.svc.Remove(r.Context(), userID, uint(itemID)); err != nil {
		switch {
		case errors.Is(err, cart.ErrUserNotAuthenticated):
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		case errors.Is(err, cart.ErrItemNotFound):
			writeError(w, http.StatusNotFound, "not_found", "cart item not found")
		default:
			logger.FromCtx(r.Context()).Error("failed to remove cart item", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to remove from cart")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.svc.Clear(r.Context(), userID); err != nil {
		switch {
		case errors.Is(err, cart.ErrUserNotAuthenticated):
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		case errors.Is(err, cart.ErrCartEmpty):
			writeError(w, http.StatusNotFound, "not_found", "cart is already empty")
		default:
			logger.FromCtx(r.Context()).Error("failed to clear cart", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to clear cart")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
