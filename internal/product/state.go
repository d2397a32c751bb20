package product

import (
	"maps"
	"slices"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/pipeline"
)

// Cursor is the window last requested from (and returned by) the repository.
type Cursor struct {
	Page       int
	Size       int
	TotalItems int
	TotalPages int
}

// State is the whole dashboard state. It is only changed through Reduce.
type State struct {
	Products []model.Product
	Filters  model.SearchFilters
	Sort     model.SortSpec

	// View pagination over the filtered, sorted products.
	PageIndex int
	PageSize  int

	Remote Cursor
	Totals *model.Totals

	// Checked flags survive refetches; the remote service does not store them.
	Checked map[int64]bool

	// FetchSeq is the sequence number of the last applied page.
	FetchSeq    uint64
	LastSyncAt  time.Time
	LastSyncErr error
}

// DefaultFetchSize is the repository window loaded when none is configured.
const DefaultFetchSize = 1000

func NewState(pageSize, fetchSize int) State {
	if pageSize <= 0 {
		pageSize = pipeline.DefaultPageSize
	}
	if fetchSize <= 0 {
		fetchSize = DefaultFetchSize
	}
	return State{
		Products: []model.Product{},
		Sort:     model.SortSpec{Order: model.SortAsc},
		PageSize: pageSize,
		Remote:   Cursor{Size: fetchSize},
		Checked:  map[int64]bool{},
	}
}

// Clone returns a copy that shares no mutable memory with s.
func (s State) Clone() State {
	s.Products = slices.Clone(s.Products)
	s.Checked = maps.Clone(s.Checked)
	if s.Totals != nil {
		t := *s.Totals
		t.CategoryStock = maps.Clone(t.CategoryStock)
		t.CategoryValue = maps.Clone(t.CategoryValue)
		s.Totals = &t
	}
	return s
}

func (s State) FindProduct(id int64) (model.Product, bool) {
	i := slices.IndexFunc(s.Products, func(p model.Product) bool { return p.ID == id })
	if i < 0 {
		return model.Product{}, false
	}
	return s.Products[i], true
}

// Reduce applies a and then re-clamps the view page to the visible rows.
func Reduce(s State, a Action) State {
	s = a.reduce(s)
	visible := len(pipeline.Filter(s.Products, s.Filters))
	s.PageIndex = pipeline.ClampPage(s.PageIndex, visible, s.PageSize)
	return s
}

// View derives the visible page from s, so rows, filters and sort in one
// response always come from the same state.
func (s State) View(now time.Time) pipeline.View {
	return pipeline.Build(pipeline.Input{
		Products:  s.Products,
		Filters:   s.Filters,
		Sort:      s.Sort,
		PageIndex: s.PageIndex,
		PageSize:  s.PageSize,
		Now:       now,
	})
}
