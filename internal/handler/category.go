package handler

import (
	"errors"
	"net/http"

	"scentra-be/internal/category"
	"scentra-be/internal/logger"

	"go.uber.org/zap"
)

type CategoryHandler struct {
	svc category.Service
}

func NewCategoryHandler(svc category.Service) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter *string
	if s := r.URL.Query().Get("filter"); s != "" {
		filter = &s
	}
	limit := queryInt32(r, "limit", 20)
	page := queryInt32(r, "page", 1)

	cats, err := h.svc.List(r.Context(), filter, &limit, &page)
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to list categories", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list categories")
		return
	}

	if cats == nil {
		cats = []*category.Category{}
	}
	writeJSON(w, http.StatusOK, cats)
}

// Create handles POST /api/admin/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, category.ErrNameRequired):
			writeError(w, http.StatusBadRequest, "bad_request", "category name is required")
		case errors.Is(err, category.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "conflict", "category already exists")
		default:
			logger.FromCtx(r.Context()).Error("failed to create category", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to create category")
		}
		return
	}

	writeJSON(w, http.StatusCreated, c)
}
