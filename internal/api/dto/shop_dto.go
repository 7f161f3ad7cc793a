package dto

import (
	"time"

	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type AddLineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateLineRequest struct {
	Quantity int `json:"quantity"`
}

type CartLineResponse struct {
	LineID    int64 `json:"line_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CartResponse struct {
	CartID   int64              `json:"cart_id"`
	Lines    []CartLineResponse `json:"lines"`
	Subtotal string             `json:"subtotal"`
}

type CheckoutRequest struct {
	ShippingAddressID int64  `json:"shipping_address_id"`
	BillingAddressID  int64  `json:"billing_address_id"`
	PaymentMethod     string `json:"payment_method"`
}

type CheckoutResponse struct {
	OrderID string `json:"order_id"`
}

type AuthorizePaymentResponse struct {
	Approved      bool   `json:"approved"`
	PaymentID     string `json:"payment_id,omitempty"`
	DeclineReason string `json:"decline_reason,omitempty"`
}

type OrderLineResponse struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Amount    string `json:"amount"`
}

type OrderResponse struct {
	OrderID           string              `json:"order_id"`
	ShippingAddressID int64               `json:"shipping_address_id"`
	BillingAddressID  int64               `json:"billing_address_id"`
	Lines             []OrderLineResponse `json:"lines"`
	Subtotal          string              `json:"subtotal"`
	ShippingAmount    string              `json:"shipping_amount"`
	TaxAmount         string              `json:"tax_amount"`
	TotalAmount       string              `json:"total_amount"`
	PaymentMethod     string              `json:"payment_method"`
	Status            uint                `json:"status"`
	PaymentStatus     uint                `json:"payment_status"`
	OrderDate         time.Time           `json:"order_date"`
}

type ProductResponse struct {
	ProductID   int64  `json:"product_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	IsAvailable bool   `json:"is_available"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

type AddressRequest struct {
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
	IsDefault    bool   `json:"is_default"`
}

type AddressResponse struct {
	AddressID    int64  `json:"address_id"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
	IsDefault    bool   `json:"is_default"`
}

// 金額欄位輸出固定兩位小數字串，避免 client 端浮點運算
func ToOrderResponse(order *model.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = OrderLineResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.StringFixed(2),
			Amount:    line.Amount.StringFixed(2),
		}
	}
	return OrderResponse{
		OrderID:           order.OrderID,
		ShippingAddressID: order.ShippingAddressID,
		BillingAddressID:  order.BillingAddressID,
		Lines:             lines,
		Subtotal:          order.Subtotal.StringFixed(2),
		ShippingAmount:    order.ShippingAmount.StringFixed(2),
		TaxAmount:         order.TaxAmount.StringFixed(2),
		TotalAmount:       order.TotalAmount.StringFixed(2),
		PaymentMethod:     order.PaymentMethod,
		Status:            order.Status,
		PaymentStatus:     order.PaymentStatus,
		OrderDate:         order.OrderDate,
	}
}

func ToProductResponse(product *model.Product) ProductResponse {
	return ProductResponse{
		ProductID:   product.ProductID,
		Code:        product.Code,
		Name:        product.Name,
		Price:       product.Price.StringFixed(2),
		IsAvailable: product.IsAvailable,
		Category:    product.Category,
		Description: product.Description,
	}
}

func ToAddressResponse(address *model.Address) AddressResponse {
	return AddressResponse{
		AddressID:    address.AddressID,
		AddressLine1: address.AddressLine1,
		AddressLine2: address.AddressLine2,
		City:         address.City,
		State:        address.State,
		ZipCode:      address.ZipCode,
		Country:      address.Country,
		IsDefault:    address.IsDefault,
	}
}
