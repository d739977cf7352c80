package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"farm-fresh/models"
)

const (
	productsCacheKey = "catalog:products"
	farmersCacheKey  = "catalog:farmers"
)

// CachedCatalogRepository keeps a read-through copy of another repository's
// catalog in Redis. Cache failures fall back to the wrapped repository.
type CachedCatalogRepository struct {
	inner  CatalogRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// WithCache wraps repo with a Redis cache. A nil client returns repo as is.
func WithCache(repo CatalogRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) CatalogRepository {
	if client == nil {
		return repo
	}
	return &CachedCatalogRepository{inner: repo, client: client, ttl: ttl, logger: logger}
}

func (r *CachedCatalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if r.get(ctx, productsCacheKey, &products) {
		return products, nil
	}

	products, err := r.inner.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	r.set(ctx, productsCacheKey, products)
	return products, nil
}

func (r *CachedCatalogRepository) GetProduct(ctx context.Context, id int) (models.Product, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return models.Product{}, err
	}
	return findProduct(products, id)
}

func (r *CachedCatalogRepository) ListFarmers(ctx context.Context) ([]models.Farmer, error) {
	var farmers []models.Farmer
	if r.get(ctx, farmersCacheKey, &farmers) {
		return farmers, nil
	}

	farmers, err := r.inner.ListFarmers(ctx)
	if err != nil {
		return nil, err
	}
	r.set(ctx, farmersCacheKey, farmers)
	return farmers, nil
}

// Invalidate drops the cached catalog so the next read hits the source.
func (r *CachedCatalogRepository) Invalidate(ctx context.Context) error {
	return r.client.Del(ctx, productsCacheKey, farmersCacheKey).Err()
}

func (r *CachedCatalogRepository) get(ctx context.Context, key string, dst any) bool {
	cached, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(cached, dst); err != nil {
		r.logger.Warn("catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *CachedCatalogRepository) set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
