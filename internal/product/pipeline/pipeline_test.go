package pipeline

import (
	"testing"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleProducts() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Item 1", Category: model.CategoryFood, Price: 5, Stock: 10, Expiration: date(2025, 6, 20)},
		{ID: 2, Name: "Item 2", Category: model.CategoryFood, Price: 3, Stock: 5, Expiration: date(2025, 6, 4)},
		{ID: 3, Name: "item 10", Category: model.CategoryElectronics, Price: 100, Stock: 2},
		{ID: 4, Name: "Jacket", Category: model.CategoryClothing, Price: 80, Stock: 0},
		{ID: 5, Name: "Socks", Category: model.CategoryClothing, Price: 5, Stock: 12},
	}
}

func TestFilter(t *testing.T) {
	products := sampleProducts()

	t.Run("name is a case-insensitive substring", func(t *testing.T) {
		got := Filter(products, model.SearchFilters{Name: "Item 1"})
		assert.Equal(t, []int64{1, 3}, ids(got))
	})

	t.Run("category is exact", func(t *testing.T) {
		got := Filter(products, model.SearchFilters{Category: model.CategoryClothing})
		assert.Equal(t, []int64{4, 5}, ids(got))
	})

	t.Run("availability splits on stock", func(t *testing.T) {
		assert.Equal(t, []int64{4}, ids(Filter(products, model.SearchFilters{Availability: model.AvailabilityOutOfStock})))
		assert.Equal(t, []int64{1, 2, 3, 5}, ids(Filter(products, model.SearchFilters{Availability: model.AvailabilityAvailable})))
	})

	t.Run("predicates combine", func(t *testing.T) {
		f := model.SearchFilters{Name: "item", Category: model.CategoryFood, Availability: model.AvailabilityAvailable}
		got := Filter(products, f)
		require.Len(t, got, 2)
		for _, p := range got {
			assert.True(t, Matches(p, f))
		}
	})

	t.Run("empty filters keep everything", func(t *testing.T) {
		assert.Len(t, Filter(products, model.SearchFilters{}), len(products))
	})
}

func TestSort(t *testing.T) {
	products := sampleProducts()

	t.Run("numeric ascending and descending", func(t *testing.T) {
		asc := Sort(products, model.SortSpec{Primary: model.SortStock, Order: model.SortAsc})
		assert.Equal(t, []int64{4, 3, 2, 1, 5}, ids(asc))

		desc := Sort(products, model.SortSpec{Primary: model.SortPrice, Order: model.SortDesc})
		assert.Equal(t, int64(3), desc[0].ID)
		for i := 1; i < len(desc); i++ {
			assert.GreaterOrEqual(t, desc[i-1].Price, desc[i].Price)
		}
	})

	t.Run("secondary breaks ties", func(t *testing.T) {
		got := Sort(products, model.SortSpec{Primary: model.SortCategory, Secondary: model.SortStock, Order: model.SortAsc})
		assert.Equal(t, []int64{4, 5, 3, 2, 1}, ids(got))
	})

	t.Run("names collate case-insensitively", func(t *testing.T) {
		got := Sort(products, model.SortSpec{Primary: model.SortName, Order: model.SortAsc})
		assert.Equal(t, []string{"Item 1", "item 10", "Item 2", "Jacket", "Socks"}, names(got))
	})

	t.Run("missing expirations sort after dated ones", func(t *testing.T) {
		got := Sort(products, model.SortSpec{Primary: model.SortExpiration, Order: model.SortAsc})
		assert.Equal(t, []int64{2, 1}, ids(got[:2]))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		before := ids(products)
		_ = Sort(products, model.SortSpec{Primary: model.SortPrice, Order: model.SortDesc})
		assert.Equal(t, before, ids(products))
	})

	t.Run("no sort keeps order", func(t *testing.T) {
		assert.Equal(t, ids(products), ids(Sort(products, model.SortSpec{})))
	})
}

func TestPaginate(t *testing.T) {
	rows := make([]model.Product, 25)
	for i := range rows {
		rows[i] = model.Product{ID: int64(i + 1)}
	}

	page, idx := Paginate(rows, 2, 10)
	assert.Equal(t, 2, idx)
	assert.Len(t, page, 5)

	page, idx = Paginate(rows, 9, 10)
	assert.Equal(t, 2, idx)
	assert.Len(t, page, 5)

	page, idx = Paginate(rows, -3, 10)
	assert.Equal(t, 0, idx)
	assert.Len(t, page, 10)

	page, idx = Paginate(nil, 4, 10)
	assert.Equal(t, 0, idx)
	assert.Empty(t, page)

	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 1, ClampPage(5, 11, 10))
}

func TestAggregate(t *testing.T) {
	products := []model.Product{
		{Category: model.CategoryFood, Stock: 10, Price: 5},
		{Category: model.CategoryFood, Stock: 5, Price: 3},
		{Category: model.CategoryElectronics, Stock: 2, Price: 100},
	}

	metrics := Aggregate(products)
	require.Len(t, metrics, 4)

	byCat := map[model.Category]model.CategoryMetric{}
	for _, m := range metrics {
		byCat[m.Category] = m
	}

	food := byCat[model.CategoryFood]
	assert.Equal(t, 15, food.TotalStock)
	assert.InDelta(t, 65, food.TotalValue, 1e-9)
	assert.InDelta(t, 4.33, food.AvgPrice, 0.01)

	elec := byCat[model.CategoryElectronics]
	assert.Equal(t, 2, elec.TotalStock)
	assert.InDelta(t, 200, elec.TotalValue, 1e-9)
	assert.InDelta(t, 100, elec.AvgPrice, 1e-9)

	overall := byCat[model.CategoryOverall]
	assert.Equal(t, 17, overall.TotalStock)
	assert.InDelta(t, 265, overall.TotalValue, 1e-9)
	assert.InDelta(t, 15.59, overall.AvgPrice, 0.01)

	clothing := byCat[model.CategoryClothing]
	assert.Zero(t, clothing.TotalStock)
	assert.Zero(t, clothing.AvgPrice)
}

func TestBands(t *testing.T) {
	food := func(exp time.Time) model.Product {
		return model.Product{Category: model.CategoryFood, Expiration: exp}
	}

	tests := []struct {
		name string
		p    model.Product
		want model.ExpirationBand
	}{
		{"already expired", food(date(2025, 5, 30)), model.ExpirationCritical},
		{"six days", food(date(2025, 6, 8)), model.ExpirationCritical},
		{"seven days", food(date(2025, 6, 9)), model.ExpirationWarning},
		{"fourteen days", food(date(2025, 6, 16)), model.ExpirationWarning},
		{"fifteen days", food(date(2025, 6, 17)), model.ExpirationOK},
		{"missing date", food(time.Time{}), model.ExpirationNone},
		{"not food", model.Product{Category: model.CategoryClothing, Expiration: date(2025, 6, 2)}, model.ExpirationNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpirationBandFor(tt.p, testNow))
		})
	}

	assert.Equal(t, model.StockLow, StockBandFor(4))
	assert.Equal(t, model.StockMedium, StockBandFor(5))
	assert.Equal(t, model.StockMedium, StockBandFor(10))
	assert.Equal(t, model.StockOK, StockBandFor(11))
}

func TestBuild(t *testing.T) {
	v := Build(Input{
		Products:  sampleProducts(),
		Filters:   model.SearchFilters{Category: model.CategoryFood},
		Sort:      model.SortSpec{Primary: model.SortExpiration, Order: model.SortAsc},
		PageIndex: 7,
		PageSize:  1,
		Now:       testNow,
	})

	assert.Equal(t, 1, v.PageIndex)
	assert.Equal(t, 2, v.TotalItems)
	assert.Equal(t, 2, v.TotalPages)
	require.Len(t, v.Rows, 1)

	row := v.Rows[0]
	assert.Equal(t, int64(1), row.Product.ID)
	require.NotNil(t, row.DaysUntilExpiration)
	assert.Equal(t, 18, *row.DaysUntilExpiration)
	assert.Equal(t, "(18 days left to expire)", row.DaysLeftText)
	assert.Equal(t, model.ExpirationOK, row.ExpirationBand)
	assert.Equal(t, model.StockMedium, row.StockBand)

	// metrics ignore the filter
	require.Len(t, v.Metrics, 4)
	assert.Equal(t, 29, v.Metrics[3].TotalStock)
}

func ids(ps []model.Product) []int64 {
	out := make([]int64, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func names(ps []model.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}
