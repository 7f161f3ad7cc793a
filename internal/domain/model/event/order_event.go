package event

import (
	"time"

	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
	"github.com/shopspring/decimal"
)

// 訂單事件
// 訂單建立後明細不變，事件只描述狀態轉移
type OrderCreatedEvent struct {
	BaseEvent
	UserID      int64                 `json:"user_id"`
	OrderID     string                `json:"order_id"`
	OrderDate   time.Time             `json:"order_date"`
	Lines       []model.OrderLineData `json:"lines"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	ToState     uint                  `json:"to_state"`
}

func (e *OrderCreatedEvent) Type() EventType {
	return OrderCreatedEventName
}

func NewOrderCreatedEvent(order *model.Order) *OrderCreatedEvent {
	lines := make([]model.OrderLineData, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = model.OrderLineData{
			OrderID:   line.OrderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Amount:    line.Amount,
		}
	}
	return &OrderCreatedEvent{
		BaseEvent:   newBaseEvent(order.OrderID, OrderCreatedEventName),
		UserID:      order.UserID,
		OrderID:     order.OrderID,
		OrderDate:   order.OrderDate,
		Lines:       lines,
		TotalAmount: order.TotalAmount,
		ToState:     order.Status,
	}
}

type OrderPaidEvent struct {
	BaseEvent
	UserID    int64           `json:"user_id"`
	OrderID   string          `json:"order_id"`
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	FromState uint            `json:"from_state"`
	ToState   uint            `json:"to_state"`
}

func (e *OrderPaidEvent) Type() EventType {
	return OrderPaidEventName
}

func NewOrderPaidEvent(userID int64, orderID, paymentID string, amount decimal.Decimal) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseEvent: newBaseEvent(orderID, OrderPaidEventName),
		UserID:    userID,
		OrderID:   orderID,
		PaymentID: paymentID,
		Amount:    amount,
		FromState: model.OrderStatusPending,
		ToState:   model.OrderStatusProcessing,
	}
}

type OrderPaymentDeclinedEvent struct {
	BaseEvent
	UserID  int64  `json:"user_id"`
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

func (e *OrderPaymentDeclinedEvent) Type() EventType {
	return OrderPaymentDeclinedEventName
}

func NewOrderPaymentDeclinedEvent(userID int64, orderID, reason string) *OrderPaymentDeclinedEvent {
	return &OrderPaymentDeclinedEvent{
		BaseEvent: newBaseEvent(orderID, OrderPaymentDeclinedEventName),
		UserID:    userID,
		OrderID:   orderID,
		Reason:    reason,
	}
}
