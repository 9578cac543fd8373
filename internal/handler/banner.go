package handler

import (
	"errors"
	"net/http"

	"scentra-be/internal/banner"
	"scentra-be/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BannerHandler struct {
	svc banner.Service
}

func NewBannerHandler(svc banner.Service) *BannerHandler {
	return &BannerHandler{svc: svc}
}

// List handles GET /api/banners. Only active banners are exposed to
// the storefront.
func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	banners, err := h.svc.ListActive(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to list banners", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list banners")
		return
	}

	if banners == nil {
		banners = []*banner.Banner{}
	}
	writeJSON(w, http.StatusOK, banners)
}

// AdminList handles GET /api/admin/banners.
func (h *BannerHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	banners, err := h.svc.List(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to list banners", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list banners")
		return
	}

	if banners == nil {
		banners = []*banner.Banner{}
	}
	writeJSON(w, http.StatusOK, banners)
}

// Create handles POST /api/admin/banners.
func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input banner.CreateBannerInput
	if !decodeBody(w, r, &input) {
		return
	}

	b, err := h.svc.Create(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, banner.ErrTitleRequired), errors.Is(err, banner.ErrImageRequired):
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		default:
			logger.FromCtx(r.Context()).Error("failed to create banner", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to create banner")
		}
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

// SetActive handles PUT /api/admin/banners/{id}.
func (h *BannerHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid banner id")
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.svc.SetActive(r.Context(), id, req.Active); err != nil {
		if errors.Is(err, banner.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "banner not found")
			return
		}
		logger.FromCtx(r.Context()).Error("failed to update banner", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to update banner")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}

// Delete handles DELETE /api/admin/banners/{id}.
func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid banner id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, banner.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "banner not found")
			return
		}
		logger.FromCtx(r.Context()).Error("failed to delete banner", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to delete banner")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
