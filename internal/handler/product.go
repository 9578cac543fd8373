package handler

import (
	"errors"
	"net/http"

	"scentra-be/internal/logger"
	"scentra-be/internal/product"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := product.ListOptions{
		OnlyActive: true,
		Limit:      queryInt32(r, "limit", 20),
		Page:       queryInt32(r, "page", 1),
	}
	if s := q.Get("category"); s != "" {
		opts.CategoryID = &s
	}
	if s := q.Get("search"); s != "" {
		opts.Search = &s
	}

	products, err := h.svc.List(r.Context(), opts)
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to list products", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}

	if products == nil {
		products = []product.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		logger.FromCtx(r.Context()).Error("failed to get product", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to fetch product")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Create handles POST /api/admin/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params product.CreateParams
	if !decodeBody(w, r, &params) {
		return
	}

	p, err := h.svc.Create(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrNameRequired),
			errors.Is(err, product.ErrInvalidPrice),
			errors.Is(err, product.ErrInvalidStock):
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		default:
			logger.FromCtx(r.Context()).Error("failed to create product", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to create product")
		}
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// Update handles PUT /api/admin/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var params product.UpdateParams
	if !decodeBody(w, r, &params) {
		return
	}

	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		logger.FromCtx(r.Context()).Error("failed to update product", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to update product")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/admin/products/{id}. Products are
// deactivated, not removed, so existing order snapshots stay valid.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		logger.FromCtx(r.Context()).Error("failed to deactivate product", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
