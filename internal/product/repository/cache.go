package repository

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/cache"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/logger"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/dto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const listKeyPrefix = "inventory:products:list:"

// CachedRepository keeps list pages in redis and drops them whenever a
// mutation goes through. Cache failures never fail the call.
type CachedRepository struct {
	next   product.Repository
	cache  *cache.RedisClient
	ttl    time.Duration
	logger logger.ZapLogger
}

func NewCachedRepository(next product.Repository, c *cache.RedisClient, ttl time.Duration, log logger.ZapLogger) *CachedRepository {
	return &CachedRepository{next: next, cache: c, ttl: ttl, logger: log}
}

func (r *CachedRepository) List(ctx context.Context, params *dto.ListParams) (*model.Page, error) {
	key, err := listKey(params)
	if err == nil {
		val, err := r.cache.Client.Get(ctx, key).Result()
		switch {
		case err == nil:
			var page model.Page
			if err := json.Unmarshal([]byte(val), &page); err == nil {
				return &page, nil
			}
			r.logger.Warn("discarding unreadable cached page", zap.String("key", key))
		case !errors.Is(err, redis.Nil):
			r.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	page, err := r.next.List(ctx, params)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if data, err := json.Marshal(page); err == nil {
			if err := r.cache.Client.Set(ctx, key, data, r.ttl).Err(); err != nil {
				r.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return page, nil
}

func (r *CachedRepository) Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	p, err := r.next.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return p, nil
}

func (r *CachedRepository) Update(ctx context.Context, id int64, input *dto.UpdateProductInput) error {
	return r.after(ctx, r.next.Update(ctx, id, input))
}

func (r *CachedRepository) Delete(ctx context.Context, id int64) error {
	return r.after(ctx, r.next.Delete(ctx, id))
}

func (r *CachedRepository) MarkOutOfStock(ctx context.Context, id int64) error {
	return r.after(ctx, r.next.MarkOutOfStock(ctx, id))
}

func (r *CachedRepository) MarkInStock(ctx context.Context, id int64) error {
	return r.after(ctx, r.next.MarkInStock(ctx, id))
}

// Invalidate drops every cached page. The event listener calls it when the
// inventory changes behind the dashboard's back.
func (r *CachedRepository) Invalidate(ctx context.Context) {
	r.invalidate(ctx)
}

func (r *CachedRepository) after(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedRepository) invalidate(ctx context.Context) {
	n, err := r.cache.DeletePattern(ctx, listKeyPrefix+"*")
	if err != nil {
		r.logger.Warn("cache invalidation failed", zap.Error(err))
		return
	}
	r.logger.Debug("cache invalidated", zap.Int("keys", n))
}

func listKey(params *dto.ListParams) (string, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", listKeyPrefix, md5.Sum(data)), nil
}
