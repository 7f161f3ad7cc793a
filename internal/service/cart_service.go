package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
	"github.com/RoyceAzure/lab/shopler/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/errs"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/util"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ICartService interface {
	GetOrCreate(ctx context.Context, identity model.CartIdentity) (*model.Cart, error)
	AddLine(ctx context.Context, cart *model.Cart, productID int64, quantity int) error
	UpdateLine(ctx context.Context, cart *model.Cart, lineID int64, quantity int) error
	RemoveLine(ctx context.Context, cart *model.Cart, lineID int64) error
	Subtotal(ctx context.Context, cart *model.Cart) (decimal.Decimal, error)
	Clear(ctx context.Context, cart *model.Cart) error
}

// CartService 購物車操作
// 小計一律用型錄現價計算，價格凍結只發生在結帳快照那一刻
type CartService struct {
	cartRepo        db.ICartRepository
	catalog         ICatalogService
	maxLineQuantity int // 0 表示不設上限
}

func NewCartService(cartRepo db.ICartRepository, catalog ICatalogService, maxLineQuantity int) *CartService {
	if !util.HasImplementation(cartRepo) {
		panic("CartService dependency cartRepo is nil")
	}
	if !util.HasImplementation(catalog) {
		panic("CartService dependency catalog is nil")
	}
	return &CartService{
		cartRepo:        cartRepo,
		catalog:         catalog,
		maxLineQuantity: maxLineQuantity,
	}
}

// GetOrCreate 取得或建立購物車
// identity 必須恰好一種：user 或匿名 session
func (s *CartService) GetOrCreate(ctx context.Context, identity model.CartIdentity) (*model.Cart, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}
	return s.cartRepo.GetOrCreateCart(ctx, identity)
}

// AddLine 加入商品，同商品已存在則數量累加
func (s *CartService) AddLine(ctx context.Context, cart *model.Cart, productID int64, quantity int) error {
	if quantity <= 0 {
		return errs.ErrInvalidQuantity
	}

	if _, err := s.catalog.GetAvailableProduct(ctx, productID); err != nil {
		return err
	}

	if s.maxLineQuantity > 0 {
		existing := 0
		for _, line := range cart.Lines {
			if line.ProductID == productID {
				existing = line.Quantity
				break
			}
		}
		if existing+quantity > s.maxLineQuantity {
			return fmt.Errorf("%w: line quantity exceeds cap %d", errs.ErrInvalidQuantity, s.maxLineQuantity)
		}
	}

	return s.cartRepo.AddLineQuantity(ctx, cart.CartID, productID, quantity)
}

// UpdateLine 替換數量，quantity <= 0 等同移除（delete-on-zero，不是錯誤）
func (s *CartService) UpdateLine(ctx context.Context, cart *model.Cart, lineID int64, quantity int) error {
	line, err := s.cartRepo.GetLineByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		return err
	}
	if line.CartID != cart.CartID {
		return errs.ErrNotOwner
	}

	if quantity <= 0 {
		return s.cartRepo.DeleteLine(ctx, lineID)
	}
	return s.cartRepo.UpdateLineQuantity(ctx, lineID, quantity)
}

// RemoveLine 對自己購物車冪等，動到別人的 line 回 ErrNotOwner
func (s *CartService) RemoveLine(ctx context.Context, cart *model.Cart, lineID int64) error {
	line, err := s.cartRepo.GetLineByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if line.CartID != cart.CartID {
		return errs.ErrNotOwner
	}
	return s.cartRepo.DeleteLine(ctx, lineID)
}

// Subtotal Σ 數量 × 型錄現價，非快照
// 型錄已移除的商品不計價，line 保留給用戶檢視與移除，結帳時才擋下
func (s *CartService) Subtotal(ctx context.Context, cart *model.Cart) (decimal.Decimal, error) {
	subtotal := decimal.Zero
	for _, line := range cart.Lines {
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				continue
			}
			return decimal.Decimal{}, err
		}
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return subtotal, nil
}

func (s *CartService) Clear(ctx context.Context, cart *model.Cart) error {
	return s.cartRepo.ClearCart(ctx, cart.CartID)
}

var _ ICartService = (*CartService)(nil)
