package product

import (
	"slices"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/dto"
)

// Action is a state transition. The set of actions is closed.
type Action interface {
	reduce(s State) State
}

type FilterField string

const (
	FilterName         FilterField = "name"
	FilterCategory     FilterField = "category"
	FilterAvailability FilterField = "availability"
)

type FilterChanged struct {
	Field FilterField
	Value string
}

func (a FilterChanged) reduce(s State) State {
	switch a.Field {
	case FilterName:
		s.Filters.Name = a.Value
	case FilterCategory:
		s.Filters.Category = model.Category(a.Value)
	case FilterAvailability:
		s.Filters.Availability = model.Availability(a.Value)
	}
	return s
}

type FiltersCleared struct{}

func (FiltersCleared) reduce(s State) State {
	s.Filters = model.SearchFilters{}
	s.PageIndex = 0
	return s
}

type SortChanged struct {
	Spec model.SortSpec
}

func (a SortChanged) reduce(s State) State {
	if a.Spec.Order == "" {
		a.Spec.Order = model.SortAsc
	}
	s.Sort = a.Spec
	return s
}

type PageChanged struct {
	Index int
}

func (a PageChanged) reduce(s State) State {
	s.PageIndex = a.Index
	return s
}

type PageSizeChanged struct {
	Size int
}

func (a PageSizeChanged) reduce(s State) State {
	if a.Size > 0 {
		s.PageSize = a.Size
		s.PageIndex = 0
	}
	return s
}

// PageLoaded replaces the products with a repository page. Pages issued
// before the last applied one are dropped.
type PageLoaded struct {
	Page *model.Page
	Seq  uint64
	At   time.Time
}

func (a PageLoaded) reduce(s State) State {
	if a.Page == nil || a.Seq <= s.FetchSeq {
		return s
	}
	products := make([]model.Product, len(a.Page.Items))
	for i, p := range a.Page.Items {
		p.Checked = s.Checked[p.ID]
		products[i] = p
	}
	s.Products = products
	size := a.Page.PageSize
	if size <= 0 {
		size = s.Remote.Size
	}
	s.Remote = Cursor{
		Page:       a.Page.PageIndex,
		Size:       size,
		TotalItems: a.Page.TotalItems,
		TotalPages: a.Page.TotalPages,
	}
	s.Totals = a.Page.Totals
	s.FetchSeq = a.Seq
	s.LastSyncAt = a.At
	s.LastSyncErr = nil
	return s
}

type SyncFailed struct {
	Err error
}

func (a SyncFailed) reduce(s State) State {
	s.LastSyncErr = a.Err
	return s
}

// ProductEdited merges a full-field update into the local entry.
type ProductEdited struct {
	ID    int64
	Input dto.UpdateProductInput
}

func (a ProductEdited) reduce(s State) State {
	s.Products = slices.Clone(s.Products)
	for i := range s.Products {
		if s.Products[i].ID == a.ID {
			a.Input.Apply(&s.Products[i])
		}
	}
	return s
}

type ProductRemoved struct {
	ID int64
}

func (a ProductRemoved) reduce(s State) State {
	s.Products = slices.DeleteFunc(slices.Clone(s.Products), func(p model.Product) bool {
		return p.ID == a.ID
	})
	if s.Checked[a.ID] {
		s.Checked = cloneWithout(s.Checked, a.ID)
	}
	return s
}

// StockToggled records the outcome of a stock-status toggle.
type StockToggled struct {
	ID      int64
	Checked bool
	Stock   int
}

func (a StockToggled) reduce(s State) State {
	s.Products = slices.Clone(s.Products)
	for i := range s.Products {
		if s.Products[i].ID == a.ID {
			s.Products[i].Checked = a.Checked
			s.Products[i].Stock = a.Stock
		}
	}
	if a.Checked {
		s.Checked = cloneWith(s.Checked, a.ID)
	} else {
		s.Checked = cloneWithout(s.Checked, a.ID)
	}
	return s
}

func cloneWith(m map[int64]bool, id int64) map[int64]bool {
	out := make(map[int64]bool, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[id] = true
	return out
}

func cloneWithout(m map[int64]bool, id int64) map[int64]bool {
	out := make(map[int64]bool, len(m))
	for k, v := range m {
		if k != id {
			out[k] = v
		}
	}
	return out
}
