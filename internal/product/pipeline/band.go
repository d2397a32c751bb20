package pipeline

import (
	"math"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
)

const (
	expirationCriticalDays = 7
	expirationWarningDays  = 14

	stockLowBelow   = 5
	stockMediumUpTo = 10
)

// DaysUntilExpiration is the floored day difference between the product's
// expiration and now. ok is false for non-Food products and missing dates.
func DaysUntilExpiration(p model.Product, now time.Time) (days int, ok bool) {
	exp, ok := p.EffectiveExpiration()
	if !ok {
		return 0, false
	}
	return int(math.Floor(exp.Sub(now).Hours() / 24)), true
}

func ExpirationBandFor(p model.Product, now time.Time) model.ExpirationBand {
	days, ok := DaysUntilExpiration(p, now)
	switch {
	case !ok:
		return model.ExpirationNone
	case days < expirationCriticalDays:
		return model.ExpirationCritical
	case days <= expirationWarningDays:
		return model.ExpirationWarning
	default:
		return model.ExpirationOK
	}
}

func StockBandFor(stock int) model.StockBand {
	switch {
	case stock < stockLowBelow:
		return model.StockLow
	case stock <= stockMediumUpTo:
		return model.StockMedium
	default:
		return model.StockOK
	}
}
