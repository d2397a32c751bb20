package product

import (
	"context"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/dto"
)

// Repository is the durable owner of the product collection. After any
// mutating call it is the source of truth.
type Repository interface {
	List(ctx context.Context, params *dto.ListParams) (*model.Page, error)
	Create(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	Update(ctx context.Context, id int64, input *dto.UpdateProductInput) error
	Delete(ctx context.Context, id int64) error

	// Stock status toggles
	MarkOutOfStock(ctx context.Context, id int64) error
	MarkInStock(ctx context.Context, id int64) error
}
