package handler

import (
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/pipeline"
)

type productRow struct {
	ID                  int64                `json:"id"`
	Name                string               `json:"name"`
	Category            model.Category       `json:"category"`
	Price               float64              `json:"price"`
	Stock               int                  `json:"stock"`
	Expiration          string               `json:"expiration,omitempty"`
	Checked             bool                 `json:"checked"`
	ExpirationBand      model.ExpirationBand `json:"expirationBand"`
	DaysUntilExpiration *int                 `json:"daysUntilExpiration,omitempty"`
	DaysLeftText        string               `json:"daysLeftText,omitempty"`
	StockBand           model.StockBand      `json:"stockBand"`
}

type viewResponse struct {
	Rows       []productRow           `json:"rows"`
	PageIndex  int                    `json:"pageIndex"`
	PageSize   int                    `json:"pageSize"`
	TotalItems int                    `json:"totalItems"`
	TotalPages int                    `json:"totalPages"`
	Metrics    []model.CategoryMetric `json:"metrics"`

	// Remote paging and totals as reported by the inventory service.
	RemoteTotalItems int           `json:"remoteTotalItems"`
	RemoteTotalPages int           `json:"remoteTotalPages"`
	ServerTotals     *model.Totals `json:"serverTotals,omitempty"`

	Filters    model.SearchFilters `json:"filters"`
	Sort       model.SortSpec      `json:"sort"`
	LastSyncAt *time.Time          `json:"lastSyncAt,omitempty"`
	SyncError  string              `json:"syncError,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func mapRow(r pipeline.Row) productRow {
	return productRow{
		ID:                  r.Product.ID,
		Name:                r.Product.Name,
		Category:            r.Product.Category,
		Price:               r.Product.Price,
		Stock:               r.Product.Stock,
		Expiration:          r.Product.ExpirationString(),
		Checked:             r.Product.Checked,
		ExpirationBand:      r.ExpirationBand,
		DaysUntilExpiration: r.DaysUntilExpiration,
		DaysLeftText:        r.DaysLeftText,
		StockBand:           r.StockBand,
	}
}

func mapView(v pipeline.View, st product.State) viewResponse {
	rows := make([]productRow, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, mapRow(r))
	}

	resp := viewResponse{
		Rows:       rows,
		PageIndex:  v.PageIndex,
		PageSize:   v.PageSize,
		TotalItems: v.TotalItems,
		TotalPages: v.TotalPages,
		Metrics:    v.Metrics,

		RemoteTotalItems: st.Remote.TotalItems,
		RemoteTotalPages: st.Remote.TotalPages,
		ServerTotals:     st.Totals,

		Filters: st.Filters,
		Sort:    st.Sort,
	}
	if !st.LastSyncAt.IsZero() {
		at := st.LastSyncAt
		resp.LastSyncAt = &at
	}
	if st.LastSyncErr != nil {
		resp.SyncError = st.LastSyncErr.Error()
	}
	return resp
}
