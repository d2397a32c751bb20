package model

import "time"

// DateLayout is the calendar-date layout used on every wire boundary.
const DateLayout = "2006-01-02"

type Product struct {
	ID         int64
	Name       string
	Category   Category
	Price      float64
	Stock      int
	Expiration time.Time // Zero when absent
	Checked    bool
}

// EffectiveExpiration returns the expiration date only when it is meaningful,
// i.e. for Food products that carry one.
func (p Product) EffectiveExpiration() (time.Time, bool) {
	if p.Category != CategoryFood || p.Expiration.IsZero() {
		return time.Time{}, false
	}
	return p.Expiration, true
}

// ExpirationString formats the expiration as YYYY-MM-DD, or "" when absent.
func (p Product) ExpirationString() string {
	if p.Expiration.IsZero() {
		return ""
	}
	return p.Expiration.Format(DateLayout)
}

func (p Product) InStock() bool {
	return p.Stock > 0
}
