package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
	evt_model "github.com/RoyceAzure/lab/shopler/internal/domain/model/event"
	"github.com/RoyceAzure/lab/shopler/internal/infra/payment"
	"github.com/RoyceAzure/lab/shopler/internal/infra/producer"
	"github.com/RoyceAzure/lab/shopler/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/errs"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/util"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type IOrderService interface {
	Checkout(ctx context.Context, userID, shippingAddressID, billingAddressID int64, method string, cart *model.Cart) (string, error)
	AuthorizePayment(ctx context.Context, userID int64, orderID string) (*payment.Result, error)
	GetOrder(ctx context.Context, userID int64, orderID string) (*model.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]model.Order, error)
}

// OrderService 訂單狀態機
// Checkout: cart -> pending/unpaid 訂單快照（單一交易，連同清空購物車）
// AuthorizePayment: pending/unpaid -> processing/completed + Payment（單一交易，防重複授權）
// 事件發布在 commit 之後 best-effort，不在交易內
type OrderService struct {
	orderRepo      db.IOrderRepository
	addressService IAddressService
	catalog        ICatalogService
	pricing        IPricingEngine
	authorizer     payment.IAuthorizer
	eventProducer  producer.IOrderEventProducer // 可為 nil，不發事件
	logger         zerolog.Logger
}

func NewOrderService(
	orderRepo db.IOrderRepository,
	addressService IAddressService,
	catalog ICatalogService,
	pricing IPricingEngine,
	authorizer payment.IAuthorizer,
	eventProducer producer.IOrderEventProducer,
	logger zerolog.Logger,
) *OrderService {
	if !util.HasImplementation(orderRepo) {
		panic("OrderService dependency orderRepo is nil")
	}
	if !util.HasImplementation(addressService) {
		panic("OrderService dependency addressService is nil")
	}
	if !util.HasImplementation(catalog) {
		panic("OrderService dependency catalog is nil")
	}
	if !util.HasImplementation(pricing) {
		panic("OrderService dependency pricing is nil")
	}
	if !util.HasImplementation(authorizer) {
		panic("OrderService dependency authorizer is nil")
	}

	return &OrderService{
		orderRepo:      orderRepo,
		addressService: addressService,
		catalog:        catalog,
		pricing:        pricing,
		authorizer:     authorizer,
		eventProducer:  eventProducer,
		logger:         logger,
	}
}

// Checkout 把購物車凍結成訂單
// 單價在這一刻快照進 OrderLine，之後型錄改價不回溯影響訂單
// 成功後購物車已清空，回傳訂單編號供付款流程使用
func (s *OrderService) Checkout(ctx context.Context, userID, shippingAddressID, billingAddressID int64, method string, cart *model.Cart) (string, error) {
	if cart == nil || len(cart.Lines) == 0 {
		return "", errs.ErrEmptyCart
	}
	// 結帳必須是登入用戶的購物車
	if cart.UserID == nil || *cart.UserID != userID {
		return "", errs.ErrNotOwner
	}
	if !model.IsValidPaymentMethod(method) {
		return "", errs.ErrInvalidPaymentMethod
	}

	if _, err := s.addressService.GetOwnedAddress(ctx, userID, shippingAddressID); err != nil {
		return "", err
	}
	if _, err := s.addressService.GetOwnedAddress(ctx, userID, billingAddressID); err != nil {
		return "", err
	}

	orderID := util.GenerateOrderID()
	lines := make([]model.OrderLine, 0, len(cart.Lines))
	subtotal := decimal.Zero
	for _, cartLine := range cart.Lines {
		// 加入購物車之後可能下架，結帳當下重新驗證可售狀態
		product, err := s.catalog.GetAvailableProduct(ctx, cartLine.ProductID)
		if err != nil {
			return "", err
		}

		amount := product.Price.Mul(decimal.NewFromInt(int64(cartLine.Quantity))).Round(2)
		lines = append(lines, model.OrderLine{
			OrderID:   orderID,
			ProductID: cartLine.ProductID,
			Quantity:  cartLine.Quantity,
			UnitPrice: product.Price,
			Amount:    amount,
		})
		subtotal = subtotal.Add(amount)
	}

	quote := s.pricing.Price(subtotal)

	order := &model.Order{
		OrderID:           orderID,
		UserID:            userID,
		ShippingAddressID: shippingAddressID,
		BillingAddressID:  billingAddressID,
		Lines:             lines,
		Subtotal:          quote.Subtotal,
		ShippingAmount:    quote.Shipping,
		TaxAmount:         quote.Tax,
		TotalAmount:       quote.Total,
		PaymentMethod:     method,
		Status:            model.OrderStatusPending,
		PaymentStatus:     model.PaymentStatusUnpaid,
		OrderDate:         time.Now().UTC(),
	}

	// 訂單 + 明細 + 清空購物車 一起 commit
	if err := s.orderRepo.CreateOrderFromCart(ctx, order, cart.CartID); err != nil {
		return "", err
	}
	cart.Lines = nil

	s.produceEvent(ctx, userID, evt_model.NewOrderCreatedEvent(order))

	return order.OrderID, nil
}

// AuthorizePayment 請求金流授權並轉移訂單狀態
// decline / timeout 不是 error：訂單維持 pending/unpaid，呼叫端可重試
// 重複授權由 MarkOrderPaid 的 guarded update 擋下，回 ErrInvalidState
func (s *OrderService) AuthorizePayment(ctx context.Context, userID int64, orderID string) (*payment.Result, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, errs.ErrOrderNotFound
	}
	if order.Status != model.OrderStatusPending || order.PaymentStatus != model.PaymentStatusUnpaid {
		return nil, errs.ErrInvalidState
	}

	result, err := s.authorizer.Authorize(ctx, order.OrderID, order.TotalAmount, order.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if !result.Approved {
		s.produceEvent(ctx, userID, evt_model.NewOrderPaymentDeclinedEvent(userID, order.OrderID, result.DeclineReason))
		return result, nil
	}

	// 授權金額必須等於訂單總額，不一致是不變量違反，不能默默修正
	if !result.Amount.Equal(order.TotalAmount) {
		return nil, errs.ErrPaymentAmountMismatch
	}

	pmt := &model.Payment{
		PaymentID: result.PaymentID,
		OrderID:   order.OrderID,
		Amount:    result.Amount,
		PaidAt:    time.Now().UTC(),
	}
	if err := s.orderRepo.MarkOrderPaid(ctx, order.OrderID, pmt); err != nil {
		return nil, err
	}

	s.produceEvent(ctx, userID, evt_model.NewOrderPaidEvent(userID, order.OrderID, pmt.PaymentID, pmt.Amount))

	return result, nil
}

// GetOrder 單筆查詢含持有者驗證
func (s *OrderService) GetOrder(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, errs.ErrNotOwner
	}
	return order, nil
}

// ListOrders 用戶訂單，新的在前
func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.orderRepo.GetOrdersByUserID(ctx, userID)
}

func (s *OrderService) produceEvent(ctx context.Context, userID int64, evt evt_model.Event) {
	if !util.HasImplementation(s.eventProducer) {
		return
	}
	if err := s.eventProducer.ProduceOrderEvent(ctx, userID, evt); err != nil {
		s.logger.Warn().
			Str("event_type", string(evt.Type())).
			Str("aggregate_id", evt.GetID()).
			Err(err).
			Msg("failed to produce order event")
	}
}

var _ IOrderService = (*OrderService)(nil)
