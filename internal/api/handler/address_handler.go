package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shopler/internal/api/dto"
	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
	"github.com/RoyceAzure/lab/shopler/internal/service"
	"github.com/go-chi/chi/v5"
)

type AddressHandler struct {
	addressService service.IAddressService
}

func NewAddressHandler(addressService service.IAddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// ListAddresses GET /addresses
func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}

	addresses, err := h.addressService.ListAddresses(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]dto.AddressResponse, len(addresses))
	for i := range addresses {
		resp[i] = dto.ToAddressResponse(&addresses[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateAddress POST /addresses
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}

	var req dto.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	address := &model.Address{
		UserID:       userID,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		IsDefault:    req.IsDefault,
	}
	if err := h.addressService.CreateAddress(r.Context(), address); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.ToAddressResponse(address))
}

// SetDefault POST /addresses/{addressID}/default
func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}

	addressID, err := strconv.ParseInt(chi.URLParam(r, "addressID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid address id"})
		return
	}

	if err := h.addressService.SetDefaultAddress(r.Context(), userID, addressID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
