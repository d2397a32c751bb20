package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Event types that change what the dashboard shows.
const (
	EventProductCreated = "ProductCreated"
	EventProductUpdated = "ProductUpdated"
	EventProductDeleted = "ProductDeleted"
	EventStockChanged   = "StockChanged"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type Refresher interface {
	Refresh(ctx context.Context) error
}

// Invalidator is implemented by caching repositories.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type InventoryEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ProductID int64     `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

type ChangeListener struct {
	reader     MessageReader
	store      Refresher
	cache      Invalidator
	logger     logger.ZapLogger
	retryDelay time.Duration
}

// NewChangeListener builds a listener; cache may be nil.
func NewChangeListener(reader MessageReader, store Refresher, cache Invalidator, log logger.ZapLogger) *ChangeListener {
	return &ChangeListener{
		reader:     reader,
		store:      store,
		cache:      cache,
		logger:     log,
		retryDelay: time.Second,
	}
}

func (l *ChangeListener) Start(ctx context.Context) {
	l.logger.Info("Starting inventory change listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping inventory change listener")
			return
		default:
			msg, err := l.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.retryDelay):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *ChangeListener) processMessage(ctx context.Context, value []byte) {
	var event InventoryEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	switch event.EventType {
	case EventProductCreated, EventProductUpdated, EventProductDeleted, EventStockChanged:
	default:
		return
	}

	l.logger.Info("Processing inventory event",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
		zap.Int64("product_id", event.ProductID),
	)

	if l.cache != nil {
		l.cache.Invalidate(ctx)
	}
	if err := l.store.Refresh(ctx); err != nil {
		l.logger.Error("Failed to refresh after inventory event",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
	}
}
