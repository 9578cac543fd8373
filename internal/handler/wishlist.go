package handler

import (
	"errors"
	"net/http"

	"scentra-be/internal/logger"
	"scentra-be/internal/product"
	"scentra-be/internal/utils"
	"scentra-be/internal/wishlist"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WishlistHandler struct {
	svc wishlist.Service
}

func NewWishlistHandler(svc wishlist.Service) *WishlistHandler {
	return &WishlistHandler{svc: svc}
}

// List handles GET /api/wishlist.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	entries, err := h.svc.List(r.Context(), userID)
	if err != nil {
		if errors.Is(err, wishlist.ErrUserNotAuthenticated) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		logger.FromCtx(r.Context()).Error("failed to list wishlist", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to fetch wishlist")
		return
	}

	if entries == nil {
		entries = []wishlist.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Add handles POST /api/wishlist.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req struct {
		ProductID string `json:"productId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.svc.Add(r.Context(), userID, req.ProductID); err != nil {
		switch {
		case errors.Is(err, wishlist.ErrUserNotAuthenticated):
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		case errors.Is(err, product.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "product not found")
		default:
			logger.FromCtx(r.Context()).Error("failed to add wishlist entry", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to add to wishlist")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"productId": req.ProductID})
}

// Remove handles DELETE /api/wishlist/{productId}.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	productID := chi.URLParam(r, "productId")
	if err := h.svc.Remove(r.Context(), userID, productID); err != nil {
		switch {
		case errors.Is(err, wishlist.ErrUserNotAuthenticated):
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		case errors.Is(err, wishlist.ErrNotInWishlist):
			writeError(w, http.StatusNotFound, "not_found", "product is not in the wishlist")
		default:
			logger.FromCtx(r.Context()).Error("failed to remove wishlist entry", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to remove from wishlist")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
