package pipeline

import (
	"fmt"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
)

// Row is one visible table row with its display bands.
type Row struct {
	Product             model.Product
	ExpirationBand      model.ExpirationBand
	DaysUntilExpiration *int
	DaysLeftText        string
	StockBand           model.StockBand
}

type View struct {
	Rows       []Row
	PageIndex  int
	PageSize   int
	TotalItems int
	TotalPages int
	Metrics    []model.CategoryMetric
}

// Input is everything the view depends on.
type Input struct {
	Products  []model.Product
	Filters   model.SearchFilters
	Sort      model.SortSpec
	PageIndex int
	PageSize  int
	Now       time.Time
}

// Build filters, sorts and paginates the products and computes the metrics
// over the unfiltered collection.
func Build(in Input) View {
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	visible := Sort(Filter(in.Products, in.Filters), in.Sort)
	page, pageIndex := Paginate(visible, in.PageIndex, pageSize)

	rows := make([]Row, 0, len(page))
	for _, p := range page {
		rows = append(rows, NewRow(p, in.Now))
	}

	return View{
		Rows:       rows,
		PageIndex:  pageIndex,
		PageSize:   pageSize,
		TotalItems: len(visible),
		TotalPages: TotalPages(len(visible), pageSize),
		Metrics:    Aggregate(in.Products),
	}
}

func NewRow(p model.Product, now time.Time) Row {
	row := Row{
		Product:        p,
		ExpirationBand: ExpirationBandFor(p, now),
		StockBand:      StockBandFor(p.Stock),
	}
	if days, ok := DaysUntilExpiration(p, now); ok {
		row.DaysUntilExpiration = &days
		row.DaysLeftText = fmt.Sprintf("(%d days left to expire)", days)
	}
	return row
}
