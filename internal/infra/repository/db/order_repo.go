package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/errs"
	"gorm.io/gorm"
)

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	CreateOrderFromCart(ctx context.Context, order *model.Order, cartID int64) error
	GetOrderByID(ctx context.Context, orderID string) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	MarkOrderPaid(ctx context.Context, orderID string, payment *model.Payment) error
}

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreateOrderFromCart 建立訂單快照並清空來源購物車
// 訂單 + 明細 + 清空購物車必須一起 commit：中途 crash 不能留下
// 訂單已建立但購物車商品還在的狀態
func (r *OrderRepo) CreateOrderFromCart(ctx context.Context, order *model.Order, cartID int64) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		// cart line 硬刪除，唯一索引 (cart_id, product_id) 不能留軟刪除列
		return tx.Unscoped().Where("cart_id = ?", cartID).Delete(&model.CartLine{}).Error
	})
}

func (r *OrderRepo) GetOrderByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Payment").
		First(&order, "order_id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersByUserID 用戶訂單，新的在前
func (r *OrderRepo) GetOrdersByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Payment").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

// MarkOrderPaid pending/unpaid -> processing/completed 並建立 Payment
// 狀態檢查跟寫入在同一個交易：guarded update 的 RowsAffected 為 0 表示
// 狀態已被別的請求轉移（重複授權），回 ErrInvalidState，不會產生第二筆 Payment
func (r *OrderRepo) MarkOrderPaid(ctx context.Context, orderID string, payment *model.Payment) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Order{}).
			Where("order_id = ? AND status = ? AND payment_status = ?",
				orderID, model.OrderStatusPending, model.PaymentStatusUnpaid).
			Updates(map[string]interface{}{
				"status":         model.OrderStatusProcessing,
				"payment_status": model.PaymentStatusCompleted,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrInvalidState
		}

		return tx.Create(payment).Error
	})
}

var _ IOrderRepository = (*OrderRepo)(nil)
