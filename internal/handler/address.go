package handler

import (
	"errors"
	"net/http"

	"scentra-be/internal/address"
	"scentra-be/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AddressHandler struct {
	svc address.Service
}

func NewAddressHandler(svc address.Service) *AddressHandler {
	return &AddressHandler{svc: svc}
}

type addressRequest struct {
	Label        string  `json:"label"`
	Recipient    string  `json:"recipient"`
	Phone        string  `json:"phone"`
	Street       string  `json:"street"`
	Apartment    *string `json:"apartment"`
	City         string  `json:"city"`
	Province     string  `json:"province"`
	PostalCode   string  `json:"postalCode"`
	Country      string  `json:"country"`
	SetAsDefault bool    `json:"setAsDefault"`
}

// List handles GET /api/addresses.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	addrs, err := h.svc.List(r.Context())
	if err != nil {
		if errors.Is(err, address.ErrUnauthenticated) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		logger.FromCtx(r.Context()).Error("failed to list addresses", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list addresses")
		return
	}

	if addrs == nil {
		addrs = []*address.Address{}
	}
	writeJSON(w, http.StatusOK, addrs)
}

// Create handles POST /api/addresses.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if !decodeBody(w, r, &req) {
		return
	}

	addr, err := h.svc.Create(r.Context(), address.CreateAddressInput{
		Label:        req.Label,
		Recipient:    req.Recipient,
		Phone:        req.Phone,
		Street:       req.Street,
		Apartment:    req.Apartment,
		City:         req.City,
		Province:     req.Province,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		SetAsDefault: req.SetAsDefault,
	})
	if err != nil {
		if errors.Is(err, address.ErrUnauthenticated) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		logger.FromCtx(r.Context()).Error("failed to create address", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to create address")
		return
	}

	writeJSON(w, http.StatusCreated, addr)
}

// Delete handles DELETE /api/addresses/{id}.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid address id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, address.ErrUnauthenticated):
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		case errors.Is(err, address.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "address not found")
		default:
			logger.FromCtx(r.Context()).Error("failed to delete address", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to delete address")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
