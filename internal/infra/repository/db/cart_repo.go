package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ICartRepository Cart 相關操作介面
// cart line 一律硬刪除：(cart_id, product_id) 有唯一索引，留軟刪除列會擋住重新加入
type ICartRepository interface {
	GetOrCreateCart(ctx context.Context, identity model.CartIdentity) (*model.Cart, error)
	GetCartByID(ctx context.Context, cartID int64) (*model.Cart, error)
	GetLineByID(ctx context.Context, lineID int64) (*model.CartLine, error)
	AddLineQuantity(ctx context.Context, cartID, productID int64, quantity int) error
	UpdateLineQuantity(ctx context.Context, lineID int64, quantity int) error
	DeleteLine(ctx context.Context, lineID int64) error
	ClearCart(ctx context.Context, cartID int64) error
}

type CartRepo struct {
	db *DbDao
}

func NewCartRepo(db *DbDao) *CartRepo {
	return &CartRepo{db: db}
}

func preloadLines(db *gorm.DB) *gorm.DB {
	// 依插入順序回傳
	return db.Order("cart_lines.line_id ASC")
}

// GetOrCreateCart 依 identity 取得購物車，不存在則建立
// identity 的 XOR 驗證由 service 層處理，這裡假設已合法
func (r *CartRepo) GetOrCreateCart(ctx context.Context, identity model.CartIdentity) (*model.Cart, error) {
	var cart model.Cart
	query := r.db.WithContext(ctx).Preload("Lines", preloadLines)
	if identity.UserID != nil {
		query = query.Where("user_id = ?", *identity.UserID)
	} else {
		query = query.Where("session_token = ?", *identity.SessionToken)
	}

	err := query.First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = model.Cart{
		UserID:       identity.UserID,
		SessionToken: identity.SessionToken,
	}
	if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepo) GetCartByID(ctx context.Context, cartID int64) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).Preload("Lines", preloadLines).First(&cart, "cart_id = ?", cartID).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepo) GetLineByID(ctx context.Context, lineID int64) (*model.CartLine, error) {
	var line model.CartLine
	err := r.db.WithContext(ctx).First(&line, "line_id = ?", lineID).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// AddLineQuantity 加入商品，同商品已存在則數量累加
// 用 upsert 讓同購物車的並發加入不會撞唯一索引
func (r *CartRepo) AddLineQuantity(ctx context.Context, cartID, productID int64, quantity int) error {
	line := model.CartLine{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_lines.quantity + EXCLUDED.quantity"),
		}),
	}).Create(&line).Error
}

func (r *CartRepo) UpdateLineQuantity(ctx context.Context, lineID int64, quantity int) error {
	return r.db.WithContext(ctx).Model(&model.CartLine{}).
		Where("line_id = ?", lineID).
		Update("quantity", quantity).Error
}

func (r *CartRepo) DeleteLine(ctx context.Context, lineID int64) error {
	return r.db.WithContext(ctx).Unscoped().Where("line_id = ?", lineID).Delete(&model.CartLine{}).Error
}

func (r *CartRepo) ClearCart(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).Unscoped().Where("cart_id = ?", cartID).Delete(&model.CartLine{}).Error
}

var _ ICartRepository = (*CartRepo)(nil)
