package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/logger"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/dto"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/pipeline"
	"go.uber.org/zap"
)

type Config struct {
	// PageSize is the view page size.
	PageSize int
	// FetchSize is the repository window fetched by Refresh.
	FetchSize int
	Retry     RetryPolicy
}

// SyncObserver is told the outcome of every fetch; err is nil on success.
type SyncObserver func(err error)

type Option func(*productStore)

func WithSyncObserver(o SyncObserver) Option {
	return func(s *productStore) { s.observers = append(s.observers, o) }
}

func WithClock(now func() time.Time) Option {
	return func(s *productStore) { s.now = now }
}

type productStore struct {
	mu    sync.RWMutex
	state product.State

	repo      product.Repository
	retry     RetryPolicy
	logger    logger.ZapLogger
	seq       atomic.Uint64
	now       func() time.Time
	observers []SyncObserver
}

func NewProductStore(repo product.Repository, log logger.ZapLogger, cfg *Config, opts ...Option) product.Store {
	s := &productStore{
		state:  product.NewState(cfg.PageSize, cfg.FetchSize),
		repo:   repo,
		retry:  cfg.Retry,
		logger: log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *productStore) Dispatch(actions ...product.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range actions {
		s.state = product.Reduce(s.state, a)
	}
}

func (s *productStore) Snapshot() product.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *productStore) View(now time.Time) pipeline.View {
	return s.Snapshot().View(now)
}

func (s *productStore) FetchProducts(ctx context.Context, page, size int, sortBy model.SortField, sortOrder model.SortOrder) error {
	return s.load(ctx, page, size, sortBy, sortOrder, false)
}

// Refresh reloads the whole collection, walking every repository page of
// the configured window size.
func (s *productStore) Refresh(ctx context.Context) error {
	s.mu.RLock()
	size, sort := s.state.Remote.Size, s.state.Sort
	s.mu.RUnlock()
	return s.load(ctx, 0, size, sort.Primary, sort.Order, true)
}

// load fetches one page, or with all set every page from page onward, and
// applies the result as a single PageLoaded.
func (s *productStore) load(ctx context.Context, page, size int, sortBy model.SortField, sortOrder model.SortOrder, all bool) error {
	// The sequence is taken before the call so a slower, older response can
	// never replace a newer one.
	seq := s.seq.Add(1)

	var loaded *model.Page
	for p := page; ; p++ {
		params := &dto.ListParams{Page: p, Size: size, SortBy: sortBy, SortOrder: sortOrder}
		result, err := retry(ctx, s.retry, s.logger, "list products", func() (*model.Page, error) {
			return s.repo.List(ctx, params)
		})
		if err != nil {
			s.logger.Error("failed to fetch products",
				zap.Int("page", p),
				zap.Int("size", size),
				zap.Error(err),
			)
			s.Dispatch(product.SyncFailed{Err: err})
			s.notify(err)
			return err
		}

		if loaded == nil {
			first := *result
			first.Items = slices.Clone(result.Items)
			loaded = &first
		} else {
			loaded.Items = append(loaded.Items, result.Items...)
		}

		if !all || len(result.Items) == 0 || p+1 >= result.TotalPages {
			break
		}
	}

	s.Dispatch(product.PageLoaded{Page: loaded, Seq: seq, At: s.now()})
	s.notify(nil)
	return nil
}

func (s *productStore) AddProduct(ctx context.Context, input *dto.CreateProductInput) error {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return fmt.Errorf("%w: %v", product.ErrInvalidProduct, err)
	}

	return s.mutate(ctx, "add product", true, nil, func() error {
		p, err := s.repo.Create(ctx, input)
		if err == nil && p != nil {
			s.logger.Info("product created", zap.Int64("product_id", p.ID), zap.String("name", p.Name))
		}
		return err
	})
}

func (s *productStore) EditProduct(ctx context.Context, id int64, input *dto.UpdateProductInput) error {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return fmt.Errorf("%w: %v", product.ErrInvalidProduct, err)
	}

	return s.mutate(ctx, "edit product", true, product.ProductEdited{ID: id, Input: *input}, func() error {
		return s.repo.Update(ctx, id, input)
	})
}

func (s *productStore) DeleteProduct(ctx context.Context, id int64) error {
	return s.mutate(ctx, "delete product", true, product.ProductRemoved{ID: id}, func() error {
		return s.repo.Delete(ctx, id)
	})
}

// ToggleChecked picks the endpoint from the current checked flag: an
// unchecked product is marked out of stock, a checked one is restocked.
func (s *productStore) ToggleChecked(ctx context.Context, id int64) error {
	s.mu.RLock()
	p, ok := s.state.FindProduct(id)
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("toggle product %d: %w", id, product.ErrNotFound)
	}

	call := s.repo.MarkOutOfStock
	next := product.StockToggled{ID: id, Checked: true, Stock: product.OutOfStockQuantity}
	if p.Checked {
		call = s.repo.MarkInStock
		next = product.StockToggled{ID: id, Checked: false, Stock: product.RestockQuantity}
	}

	return s.mutate(ctx, "toggle stock status", false, next, func() error {
		return call(ctx, id)
	})
}

// mutate runs op under the retry policy and applies onSuccess when it worked.
// A failure is always followed by a refetch so the repository's copy wins.
func (s *productStore) mutate(ctx context.Context, name string, refetchOnSuccess bool, onSuccess product.Action, op func() error) error {
	_, err := retry(ctx, s.retry, s.logger, name, func() (struct{}, error) {
		return struct{}{}, op()
	})
	if err != nil {
		s.logger.Error("failed to "+name, zap.Error(err))
	} else if onSuccess != nil {
		s.Dispatch(onSuccess)
	}

	if err != nil || refetchOnSuccess {
		// Fetch failures are logged and recorded by the load itself.
		_ = s.Refresh(ctx)
	}
	return err
}

func (s *productStore) SetSearchFilters(patch model.SearchFiltersPatch) {
	var actions []product.Action
	if patch.Name != nil {
		actions = append(actions, product.FilterChanged{Field: product.FilterName, Value: *patch.Name})
	}
	if patch.Category != nil {
		actions = append(actions, product.FilterChanged{Field: product.FilterCategory, Value: string(*patch.Category)})
	}
	if patch.Availability != nil {
		actions = append(actions, product.FilterChanged{Field: product.FilterAvailability, Value: string(*patch.Availability)})
	}
	s.Dispatch(actions...)
}

func (s *productStore) ClearSearchFilters() {
	s.Dispatch(product.FiltersCleared{})
}

// SetSort applies the sort locally and refetches so the repository orders
// its window by the primary field too.
func (s *productStore) SetSort(ctx context.Context, spec model.SortSpec) error {
	s.Dispatch(product.SortChanged{Spec: spec})
	return s.Refresh(ctx)
}

func (s *productStore) SetPage(index int) {
	s.Dispatch(product.PageChanged{Index: index})
}

func (s *productStore) SetPageSize(size int) {
	s.Dispatch(product.PageSizeChanged{Size: size})
}

func (s *productStore) TotalProductsInStock(category model.Category) int {
	return s.metric(category).TotalStock
}

func (s *productStore) TotalValueInStock(category model.Category) float64 {
	return s.metric(category).TotalValue
}

func (s *productStore) AveragePriceInStock(category model.Category) float64 {
	return s.metric(category).AvgPrice
}

func (s *productStore) metric(category model.Category) model.CategoryMetric {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pipeline.Metric(s.state.Products, category)
}

func (s *productStore) notify(err error) {
	for _, o := range s.observers {
		o(err)
	}
}
