package pipeline

import (
	"cmp"
	"slices"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort returns a sorted copy of products. The primary field decides first and
// the secondary field only breaks its ties; the order flips the whole
// comparator. Equal rows keep their input order.
func Sort(products []model.Product, spec model.SortSpec) []model.Product {
	out := slices.Clone(products)
	if spec.Primary == model.SortNone && spec.Secondary == model.SortNone {
		return out
	}

	// Collators keep internal buffers, so each call gets its own.
	col := collate.New(language.English)
	slices.SortStableFunc(out, Comparator(spec, col))
	return out
}

// Comparator builds the two-key comparison described by spec.
func Comparator(spec model.SortSpec, col *collate.Collator) func(a, b model.Product) int {
	sign := 1
	if spec.Order == model.SortDesc {
		sign = -1
	}
	return func(a, b model.Product) int {
		c := compareField(spec.Primary, a, b, col)
		if c == 0 {
			c = compareField(spec.Secondary, a, b, col)
		}
		return sign * c
	}
}

func compareField(field model.SortField, a, b model.Product, col *collate.Collator) int {
	switch field {
	case model.SortCategory:
		return col.CompareString(string(a.Category), string(b.Category))
	case model.SortName:
		return col.CompareString(a.Name, b.Name)
	case model.SortPrice:
		return cmp.Compare(a.Price, b.Price)
	case model.SortStock:
		return cmp.Compare(a.Stock, b.Stock)
	case model.SortExpiration:
		return compareExpiration(a, b)
	}
	return 0
}

// compareExpiration places products without an effective expiration after
// every dated product.
func compareExpiration(a, b model.Product) int {
	ea, okA := a.EffectiveExpiration()
	eb, okB := b.EffectiveExpiration()
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	return ea.Compare(eb)
}
