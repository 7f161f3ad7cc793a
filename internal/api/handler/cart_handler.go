package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shopler/internal/api/dto"
	"github.com/RoyceAzure/lab/shopler/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	identity, err := cartIdentityFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	cart, err := h.cartService.GetOrCreate(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}

	subtotal, err := h.cartService.Subtotal(r.Context(), cart)
	if err != nil {
		writeError(w, err)
		return
	}

	lines := make([]dto.CartLineResponse, len(cart.Lines))
	for i, line := range cart.Lines {
		lines[i] = dto.CartLineResponse{
			LineID:    line.LineID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
	}
	writeJSON(w, http.StatusOK, dto.CartResponse{
		CartID:   cart.CartID,
		Lines:    lines,
		Subtotal: subtotal.StringFixed(2),
	})
}

// AddLine POST /cart/lines
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	identity, err := cartIdentityFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req dto.AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	cart, err := h.cartService.GetOrCreate(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.cartService.AddLine(r.Context(), cart, req.ProductID, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// UpdateLine PUT /cart/lines/{lineID}
func (h *CartHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	identity, err := cartIdentityFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	lineID, err := strconv.ParseInt(chi.URLParam(r, "lineID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid line id"})
		return
	}

	var req dto.UpdateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	cart, err := h.cartService.GetOrCreate(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.cartService.UpdateLine(r.Context(), cart, lineID, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// RemoveLine DELETE /cart/lines/{lineID}
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	identity, err := cartIdentityFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	lineID, err := strconv.ParseInt(chi.URLParam(r, "lineID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid line id"})
		return
	}

	cart, err := h.cartService.GetOrCreate(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.cartService.RemoveLine(r.Context(), cart, lineID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
