package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/logger"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product"
	"go.uber.org/zap"
)

// RetryPolicy is the one retry rule applied to every repository call.
// Only product.ErrUnavailable is retried; anything else fails at once.
type RetryPolicy struct {
	MaxAttempts     uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		MaxElapsed:      10 * time.Second,
	}
}

func retry[T any](ctx context.Context, p RetryPolicy, log logger.ZapLogger, op string, fn func() (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(b),
		backoff.WithMaxTries(max(p.MaxAttempts, 1)),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn("retrying inventory call", zap.String("op", op), zap.Duration("next", next), zap.Error(err))
		}),
	}
	if p.MaxElapsed > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(p.MaxElapsed))
	}

	return backoff.Retry(ctx, func() (T, error) {
		v, err := fn()
		if err != nil && !errors.Is(err, product.ErrUnavailable) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, opts...)
}
