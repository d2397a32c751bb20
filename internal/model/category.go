package model

type Category string

const (
	CategoryFood        Category = "Food"
	CategoryClothing    Category = "Clothing"
	CategoryElectronics Category = "Electronics"

	// CategoryOverall is a metrics-only pseudo category meaning "no filter".
	CategoryOverall Category = "Overall"
)

// Categories lists the assignable categories in display order.
var Categories = []Category{CategoryFood, CategoryClothing, CategoryElectronics}

// MetricCategories is the row order of the metrics table.
var MetricCategories = []Category{CategoryFood, CategoryClothing, CategoryElectronics, CategoryOverall}

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryClothing, CategoryElectronics:
		return true
	}
	return false
}

// Matches reports whether a product of category p belongs to c, with Overall
// matching everything.
func (c Category) Matches(p Category) bool {
	return c == CategoryOverall || c == p
}
