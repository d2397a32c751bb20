package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/dto"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/pipeline"
)

// MemoryRepository behaves like the remote inventory service, backed by a
// map. Used for local mode and tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[int64]model.Product
	nextID   int64
}

func NewMemoryRepository(seed ...model.Product) *MemoryRepository {
	r := &MemoryRepository{
		products: make(map[int64]model.Product, len(seed)),
		nextID:   1,
	}
	for _, p := range seed {
		if p.ID == 0 {
			p.ID = r.nextID
		}
		r.products[p.ID] = p
		r.nextID = max(r.nextID, p.ID+1)
	}
	return r
}

func (r *MemoryRepository) List(_ context.Context, params *dto.ListParams) (*model.Page, error) {
	if params.Page < 0 || params.Size <= 0 {
		return nil, fmt.Errorf("%w: page %d size %d", product.ErrInvalidProduct, params.Page, params.Size)
	}

	r.mu.RLock()
	all := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, p)
	}
	r.mu.RUnlock()

	// ids first so equal sort keys come back in a repeatable order
	slices.SortFunc(all, func(a, b model.Product) int { return cmp.Compare(a.ID, b.ID) })
	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = model.SortName
	}
	sorted := pipeline.Sort(all, model.SortSpec{Primary: sortBy, Order: params.SortOrder})

	total := len(sorted)
	start := min(params.Page*params.Size, total)
	end := min(start+params.Size, total)

	return &model.Page{
		Items:      slices.Clone(sorted[start:end]),
		PageIndex:  params.Page,
		PageSize:   params.Size,
		TotalItems: total,
		TotalPages: (total + params.Size - 1) / params.Size,
		Totals:     totalsOf(sorted),
	}, nil
}

func totalsOf(products []model.Product) *model.Totals {
	overall := pipeline.Metric(products, model.CategoryOverall)
	t := &model.Totals{
		TotalStock:    overall.TotalStock,
		TotalValue:    overall.TotalValue,
		CategoryStock: make(map[model.Category]int, len(model.Categories)),
		CategoryValue: make(map[model.Category]float64, len(model.Categories)),
	}
	for _, c := range model.Categories {
		m := pipeline.Metric(products, c)
		t.CategoryStock[c] = m.TotalStock
		t.CategoryValue[c] = m.TotalValue
	}
	return t
}

func (r *MemoryRepository) Create(_ context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	in := *input
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", product.ErrInvalidProduct, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	p := model.Product{
		ID:         r.nextID,
		Name:       in.Name,
		Category:   in.Category,
		Price:      in.Price,
		Stock:      in.Stock,
		Expiration: in.Expiration,
	}
	r.products[p.ID] = p
	r.nextID++
	return &p, nil
}

func (r *MemoryRepository) Update(_ context.Context, id int64, input *dto.UpdateProductInput) error {
	in := *input
	in.Normalize()
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %v", product.ErrInvalidProduct, err)
	}

	return r.modify(id, func(p *model.Product) { in.Apply(p) })
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("%w: product %d", product.ErrNotFound, id)
	}
	delete(r.products, id)
	return nil
}

func (r *MemoryRepository) MarkOutOfStock(_ context.Context, id int64) error {
	return r.modify(id, func(p *model.Product) { p.Stock = product.OutOfStockQuantity })
}

func (r *MemoryRepository) MarkInStock(_ context.Context, id int64) error {
	return r.modify(id, func(p *model.Product) { p.Stock = product.RestockQuantity })
}

func (r *MemoryRepository) modify(id int64, fn func(*model.Product)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return fmt.Errorf("%w: product %d", product.ErrNotFound, id)
	}
	fn(&p)
	r.products[id] = p
	return nil
}
