package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/dto"
	"github.com/spf13/cast"
)

// ProductForm is the add/edit form as the browser sends it. Price and stock
// may arrive as JSON numbers or as the raw input strings.
type ProductForm struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Price      any    `json:"price"`
	Stock      any    `json:"stock"`
	Expiration string `json:"expiration"`
}

// SaveEnabled reports whether every required field has a value. Food also
// needs an expiration. Value checks happen in ToInput.
func (f *ProductForm) SaveEnabled() bool {
	if blank(f.Name) || blank(f.Category) || blank(cast.ToString(f.Price)) || blank(cast.ToString(f.Stock)) {
		return false
	}
	if model.Category(strings.TrimSpace(f.Category)) == model.CategoryFood && blank(f.Expiration) {
		return false
	}
	return true
}

func (f *ProductForm) ToInput() (*dto.CreateProductInput, error) {
	price, err := cast.ToFloat64E(strings.TrimSpace(cast.ToString(f.Price)))
	if err != nil {
		return nil, fmt.Errorf("price %v: %w", f.Price, err)
	}
	stock, err := cast.ToIntE(strings.TrimSpace(cast.ToString(f.Stock)))
	if err != nil {
		return nil, fmt.Errorf("stock %v: %w", f.Stock, err)
	}

	in := &dto.CreateProductInput{
		Name:     strings.TrimSpace(f.Name),
		Category: model.Category(strings.TrimSpace(f.Category)),
		Price:    price,
		Stock:    stock,
	}
	if !blank(f.Expiration) {
		exp, err := time.Parse(model.DateLayout, strings.TrimSpace(f.Expiration))
		if err != nil {
			return nil, fmt.Errorf("expiration %q: want YYYY-MM-DD", f.Expiration)
		}
		in.Expiration = exp
	}
	return in, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

type filtersRequest struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Availability *string `json:"availability"`
}

func (r *filtersRequest) toPatch() (model.SearchFiltersPatch, error) {
	var p model.SearchFiltersPatch
	p.Name = r.Name
	if r.Category != nil {
		c := model.Category(*r.Category)
		if c != "" && !c.Valid() {
			return p, fmt.Errorf("unknown category %q", *r.Category)
		}
		p.Category = &c
	}
	if r.Availability != nil {
		a := model.Availability(*r.Availability)
		if !a.Valid() {
			return p, fmt.Errorf("unknown availability %q", *r.Availability)
		}
		p.Availability = &a
	}
	return p, nil
}

type sortRequest struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Order     string `json:"order"`
}

func (r *sortRequest) toSpec() (model.SortSpec, error) {
	spec := model.SortSpec{
		Primary:   model.SortField(r.Primary),
		Secondary: model.SortField(r.Secondary),
		Order:     model.ParseSortOrder(r.Order),
	}
	if !spec.Primary.Valid() {
		return spec, fmt.Errorf("unknown sort field %q", r.Primary)
	}
	if !spec.Secondary.Valid() {
		return spec, fmt.Errorf("unknown sort field %q", r.Secondary)
	}
	return spec, nil
}

type pageRequest struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
}
