package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
	"github.com/RoyceAzure/lab/shopler/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopler/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/errs"
	"github.com/RoyceAzure/lab/shopler/internal/pkg/util"
	"gorm.io/gorm"
)

// ICatalogService 型錄讀取，結帳與購物車共用
type ICatalogService interface {
	GetProduct(ctx context.Context, productID int64) (*model.Product, error)
	GetAvailableProduct(ctx context.Context, productID int64) (*model.Product, error)
	GetProductByCode(ctx context.Context, code string) (*model.Product, error)
	ListAvailableProducts(ctx context.Context) ([]model.Product, error)
}

// CatalogService read-through 快取
// 快取故障直接回 DB，不讓 redis 影響結帳
type CatalogService struct {
	productRepo  db.IProductRepository
	productCache redis_repo.IProductCacheRepository // 可為 nil，純 DB 模式
	cacheTTL     time.Duration
}

func NewCatalogService(productRepo db.IProductRepository, productCache redis_repo.IProductCacheRepository, cacheTTL time.Duration) *CatalogService {
	if !util.HasImplementation(productRepo) {
		panic("CatalogService dependency productRepo is nil")
	}
	return &CatalogService{
		productRepo:  productRepo,
		productCache: productCache,
		cacheTTL:     cacheTTL,
	}
}

// GetProduct 不存在回 errs.ErrNotFound
func (c *CatalogService) GetProduct(ctx context.Context, productID int64) (*model.Product, error) {
	if util.HasImplementation(c.productCache) {
		if product, err := c.productCache.GetProduct(ctx, productID); err == nil {
			return product, nil
		}
	}

	product, err := c.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	if util.HasImplementation(c.productCache) {
		// best effort，寫入失敗不影響讀取
		_ = c.productCache.SetProduct(ctx, product, c.cacheTTL)
	}
	return product, nil
}

// GetAvailableProduct 不存在或下架一律回 errs.ErrProductUnavailable
func (c *CatalogService) GetAvailableProduct(ctx context.Context, productID int64) (*model.Product, error) {
	product, err := c.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrProductUnavailable
		}
		return nil, err
	}
	if !product.IsAvailable {
		return nil, errs.ErrProductUnavailable
	}
	return product, nil
}

// GetProductByCode 商品頁用，code 查詢不走 id 快取
func (c *CatalogService) GetProductByCode(ctx context.Context, code string) (*model.Product, error) {
	product, err := c.productRepo.GetProductByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// ListAvailableProducts 只列可售商品
func (c *CatalogService) ListAvailableProducts(ctx context.Context) ([]model.Product, error) {
	return c.productRepo.GetAvailableProducts(ctx)
}

var _ ICatalogService = (*CatalogService)(nil)
