package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/07chouthri/flowerschool-storefront/internal/client"
	"github.com/07chouthri/flowerschool-storefront/internal/domain"
	"github.com/07chouthri/flowerschool-storefront/pkg/httputil"
)

// AddressHandler manages a user's address book. Addresses are validated
// locally, including delivery coverage of the postal code, before the
// address service is called.
type AddressHandler struct {
	addresses *client.AddressClient
	logger    *slog.Logger
}

// NewAddressHandler creates a new address book HTTP handler.
func NewAddressHandler(addresses *client.AddressClient, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{
		addresses: addresses,
		logger:    logger,
	}
}

func (h *AddressHandler) decodeAddress(w http.ResponseWriter, r *http.Request) (*domain.Address, bool) {
	var addr domain.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return nil, false
	}
	if err := addr.Validate(); err != nil {
		httputil.WriteValidationError(w, err)
		return nil, false
	}
	return &addr, true
}

// List handles GET /api/v1/addresses
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addresses.List(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addresses})
}

// Create handles POST /api/v1/addresses
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.decodeAddress(w, r)
	if !ok {
		return
	}

	created, err := h.addresses.Create(r.Context(), userIDFromContext(r.Context()), addr)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: created})
}

// Update handles PUT /api/v1/addresses/{addressId}
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.decodeAddress(w, r)
	if !ok {
		return
	}
	addr.ID = chi.URLParam(r, "addressId")

	updated, err := h.addresses.Update(r.Context(), userIDFromContext(r.Context()), addr)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: updated})
}

// Delete handles DELETE /api/v1/addresses/{addressId}
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.addresses.Delete(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "addressId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// SetDefault handles PUT /api/v1/addresses/{addressId}/default
func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	err := h.addresses.SetDefault(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "addressId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "default set"}})
}
