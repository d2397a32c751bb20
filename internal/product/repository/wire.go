package repository

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/dto"
)

// remoteProduct is the inventory service's product shape. Field names differ
// from the local model: price is unitPrice, stock is quantityInStock and
// expiration is expirationDate.
type remoteProduct struct {
	ID              int64   `json:"id,omitempty"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	UnitPrice       float64 `json:"unitPrice"`
	ExpirationDate  *string `json:"expirationDate"`
	QuantityInStock int     `json:"quantityInStock"`
}

type listResponse struct {
	Products      []remoteProduct    `json:"products"`
	TotalPages    int                `json:"totalPages"`
	TotalProducts int                `json:"totalProducts"`
	TotalStock    *int               `json:"totalStock"`
	TotalValue    *float64           `json:"totalValue"`
	CategoryStock map[string]int     `json:"categoryStock"`
	CategoryValue map[string]float64 `json:"categoryValue"`
}

var remoteSortFields = map[model.SortField]string{
	model.SortName:       "name",
	model.SortCategory:   "category",
	model.SortPrice:      "unitPrice",
	model.SortStock:      "quantityInStock",
	model.SortExpiration: "expirationDate",
}

func toRemote(in *dto.CreateProductInput) remoteProduct {
	rp := remoteProduct{
		Name:            in.Name,
		Category:        string(in.Category),
		UnitPrice:       in.Price,
		QuantityInStock: in.Stock,
	}
	if !in.Expiration.IsZero() {
		d := in.Expiration.Format(model.DateLayout)
		rp.ExpirationDate = &d
	}
	return rp
}

func (rp remoteProduct) toModel() (model.Product, error) {
	p := model.Product{
		ID:       rp.ID,
		Name:     rp.Name,
		Category: model.Category(rp.Category),
		Price:    rp.UnitPrice,
		Stock:    rp.QuantityInStock,
	}
	if rp.ExpirationDate != nil && *rp.ExpirationDate != "" {
		exp, err := parseDate(*rp.ExpirationDate)
		if err != nil {
			return p, fmt.Errorf("product %d expirationDate %q: %w", rp.ID, *rp.ExpirationDate, err)
		}
		p.Expiration = exp
	}
	return p, nil
}

// parseDate accepts plain dates as well as full timestamps and keeps only the
// calendar day, in UTC.
func parseDate(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func (r listResponse) toPage(params *dto.ListParams) (*model.Page, error) {
	items := make([]model.Product, 0, len(r.Products))
	for _, rp := range r.Products {
		p, err := rp.toModel()
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}

	page := &model.Page{
		Items:      items,
		PageIndex:  params.Page,
		PageSize:   params.Size,
		TotalItems: r.TotalProducts,
		TotalPages: r.TotalPages,
	}
	if r.TotalStock != nil || r.TotalValue != nil || r.CategoryStock != nil || r.CategoryValue != nil {
		t := &model.Totals{}
		if r.TotalStock != nil {
			t.TotalStock = *r.TotalStock
		}
		if r.TotalValue != nil {
			t.TotalValue = *r.TotalValue
		}
		if r.CategoryStock != nil {
			t.CategoryStock = make(map[model.Category]int, len(r.CategoryStock))
			for k, v := range r.CategoryStock {
				t.CategoryStock[model.Category(k)] = v
			}
		}
		if r.CategoryValue != nil {
			t.CategoryValue = make(map[model.Category]float64, len(r.CategoryValue))
			for k, v := range r.CategoryValue {
				t.CategoryValue[model.Category(k)] = v
			}
		}
		page.Totals = t
	}
	return page, nil
}
