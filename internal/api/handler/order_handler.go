package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shopler/internal/api/dto"
	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
	"github.com/RoyceAzure/lab/shopler/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderService service.IOrderService
	cartService  service.ICartService
}

func NewOrderHandler(orderService service.IOrderService, cartService service.ICartService) *OrderHandler {
	return &OrderHandler{orderService: orderService, cartService: cartService}
}

// Checkout POST /checkout
// 結帳需要登入身分，匿名 session 購物車要先在認證層合併成用戶購物車
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	cart, err := h.cartService.GetOrCreate(r.Context(), model.NewUserIdentity(userID))
	if err != nil {
		writeError(w, err)
		return
	}

	orderID, err := h.orderService.Checkout(r.Context(), userID, req.ShippingAddressID, req.BillingAddressID, req.PaymentMethod, cart)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.CheckoutResponse{OrderID: orderID})
}

// AuthorizePayment POST /orders/{orderID}/payment
// decline 是業務結果：HTTP 200 + approved=false，呼叫端可直接重試
func (h *OrderHandler) AuthorizePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}

	orderID := chi.URLParam(r, "orderID")
	result, err := h.orderService.AuthorizePayment(r.Context(), userID, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthorizePaymentResponse{
		Approved:      result.Approved,
		PaymentID:     result.PaymentID,
		DeclineReason: result.DeclineReason,
	})
}

// GetOrder GET /orders/{orderID}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}

	orderID := chi.URLParam(r, "orderID")
	order, err := h.orderService.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToOrderResponse(order))
}

// ListOrders GET /orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}

	orders, err := h.orderService.ListOrders(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		resp[i] = dto.ToOrderResponse(&orders[i])
	}
	writeJSON(w, http.StatusOK, resp)
}
