package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopler/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

type ProductCacheError error

var ErrCacheMiss ProductCacheError = errors.New("product not in cache")

// IProductCacheRepository 型錄讀取快取
// 只存價格/可售狀態這類結帳會頻繁讀的欄位來源，miss 回 ErrCacheMiss 由上層回 DB
type IProductCacheRepository interface {
	GetProduct(ctx context.Context, productID int64) (*model.Product, error)
	SetProduct(ctx context.Context, product *model.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, productID int64) error
}

type ProductCacheRepo struct {
	productCache *redis.Client
}

func NewProductCacheRepo(productCache *redis.Client) *ProductCacheRepo {
	return &ProductCacheRepo{productCache: productCache}
}

func generateProductInfoKey(productID int64) string {
	return fmt.Sprintf("product:%d:info", productID)
}

func (r *ProductCacheRepo) GetProduct(ctx context.Context, productID int64) (*model.Product, error) {
	redisKey := generateProductInfoKey(productID)
	raw, err := r.productCache.Get(ctx, redisKey).Result()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product from cache: %w", err)
	}

	var product model.Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		return nil, fmt.Errorf("invalid cached product %d: %w", productID, err)
	}
	return &product, nil
}

func (r *ProductCacheRepo) SetProduct(ctx context.Context, product *model.Product, ttl time.Duration) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return err
	}

	redisKey := generateProductInfoKey(product.ProductID)
	if err := r.productCache.Set(ctx, redisKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache product: %w", err)
	}
	return nil
}

func (r *ProductCacheRepo) DeleteProduct(ctx context.Context, productID int64) error {
	redisKey := generateProductInfoKey(productID)
	if err := r.productCache.Del(ctx, redisKey).Err(); err != nil {
		return fmt.Errorf("failed to evict product: %w", err)
	}
	return nil
}

var _ IProductCacheRepository = (*ProductCacheRepo)(nil)
