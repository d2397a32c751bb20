package pipeline

import (
	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/shopspring/decimal"
)

// Metric reduces the products belonging to category. Sums are kept in decimal
// so money totals do not drift across many rows.
func Metric(products []model.Product, category model.Category) model.CategoryMetric {
	stock := 0
	value := decimal.Zero
	for _, p := range products {
		if !category.Matches(p.Category) {
			continue
		}
		stock += p.Stock
		value = value.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Stock))))
	}

	avg := decimal.Zero
	if stock > 0 {
		avg = value.Div(decimal.NewFromInt(int64(stock)))
	}
	return model.CategoryMetric{
		Category:   category,
		TotalStock: stock,
		TotalValue: value.InexactFloat64(),
		AvgPrice:   avg.InexactFloat64(),
	}
}

// Aggregate computes the metrics table rows. Overall covers the whole list
// it is given, so callers pass the unfiltered collection.
func Aggregate(products []model.Product) []model.CategoryMetric {
	metrics := make([]model.CategoryMetric, 0, len(model.MetricCategories))
	for _, c := range model.MetricCategories {
		metrics = append(metrics, Metric(products, c))
	}
	return metrics
}
