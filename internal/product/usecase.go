package product

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/dto"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/pipeline"
)

// Store is the single authoritative holder of the dashboard state.
type Store interface {
	FetchProducts(ctx context.Context, page, size int, sortBy model.SortField, sortOrder model.SortOrder) error
	Refresh(ctx context.Context) error

	AddProduct(ctx context.Context, input *dto.CreateProductInput) error
	EditProduct(ctx context.Context, id int64, input *dto.UpdateProductInput) error
	DeleteProduct(ctx context.Context, id int64) error
	ToggleChecked(ctx context.Context, id int64) error

	SetSearchFilters(patch model.SearchFiltersPatch)
	ClearSearchFilters()
	SetSort(ctx context.Context, spec model.SortSpec) error
	SetPage(index int)
	SetPageSize(size int)

	// Aggregates over the in-memory products; model.CategoryOverall means no filter.
	TotalProductsInStock(category model.Category) int
	TotalValueInStock(category model.Category) float64
	AveragePriceInStock(category model.Category) float64

	Snapshot() State
	View(now time.Time) pipeline.View
	Dispatch(actions ...Action)
}
