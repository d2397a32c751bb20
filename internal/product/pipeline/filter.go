// Package pipeline derives the dashboard view from a product collection.
// Every function here is pure: inputs are never mutated.
package pipeline

import (
	"strings"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
)

// Matches reports whether p satisfies every active predicate of f.
func Matches(p model.Product, f model.SearchFilters) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	switch f.Availability {
	case model.AvailabilityAvailable:
		return p.Stock > 0
	case model.AvailabilityOutOfStock:
		return p.Stock == 0
	}
	return true
}

// Filter returns the products matching f, preserving their order.
func Filter(products []model.Product, f model.SearchFilters) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}
