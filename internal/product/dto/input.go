package dto

import (
	"fmt"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/go-playground/validator/v10"
)

const MaxNameLength = 120

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateProductInput is the creation draft. Id and checked are never sent;
// the repository assigns the id.
type CreateProductInput struct {
	Name       string         `validate:"required,max=120"`
	Category   model.Category `validate:"required,oneof=Food Clothing Electronics"`
	Price      float64        `validate:"gt=0"`
	Stock      int            `validate:"gte=0"`
	Expiration time.Time
}

// UpdateProductInput is a full-field replacement of an existing product.
type UpdateProductInput CreateProductInput

// Normalize drops an expiration on non-Food products.
func (in *CreateProductInput) Normalize() {
	if in.Category != model.CategoryFood {
		in.Expiration = time.Time{}
	}
}

func (in *CreateProductInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	if in.Category == model.CategoryFood && in.Expiration.IsZero() {
		return fmt.Errorf("expiration is required for %s products", model.CategoryFood)
	}
	return nil
}

func (in *UpdateProductInput) Normalize() {
	(*CreateProductInput)(in).Normalize()
}

func (in *UpdateProductInput) Validate() error {
	return (*CreateProductInput)(in).Validate()
}

// Apply writes the input fields onto p, keeping its id and checked flag.
func (in *UpdateProductInput) Apply(p *model.Product) {
	p.Name = in.Name
	p.Category = in.Category
	p.Price = in.Price
	p.Stock = in.Stock
	p.Expiration = in.Expiration
}
