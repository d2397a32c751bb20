package model

type Availability string

const (
	AvailabilityAny        Availability = ""
	AvailabilityAvailable  Availability = "Available"
	AvailabilityOutOfStock Availability = "Out of Stock"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAny, AvailabilityAvailable, AvailabilityOutOfStock:
		return true
	}
	return false
}

// SearchFilters is the transient query applied on top of the fetched products.
type SearchFilters struct {
	Name         string       `json:"name"`
	Category     Category     `json:"category"`
	Availability Availability `json:"availability"`
}

func (f SearchFilters) IsEmpty() bool {
	return f == SearchFilters{}
}

// SearchFiltersPatch carries a partial filter update; nil fields are left untouched.
type SearchFiltersPatch struct {
	Name         *string       `json:"name,omitempty"`
	Category     *Category     `json:"category,omitempty"`
	Availability *Availability `json:"availability,omitempty"`
}

func (f SearchFilters) Merge(p SearchFiltersPatch) SearchFilters {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.Availability != nil {
		f.Availability = *p.Availability
	}
	return f
}

// Page is one slice of the product collection together with its pagination metadata.
type Page struct {
	Items      []Product
	PageIndex  int
	PageSize   int
	TotalItems int
	TotalPages int
	Totals     *Totals
}

// Totals are the optional inventory-wide aggregates some remote revisions return.
type Totals struct {
	TotalStock    int                  `json:"totalStock"`
	TotalValue    float64              `json:"totalValue"`
	CategoryStock map[Category]int     `json:"categoryStock,omitempty"`
	CategoryValue map[Category]float64 `json:"categoryValue,omitempty"`
}

type CategoryMetric struct {
	Category   Category `json:"category"`
	TotalStock int      `json:"totalStock"`
	TotalValue float64  `json:"totalValue"`
	AvgPrice   float64  `json:"avgPrice"`
}
