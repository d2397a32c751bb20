package model

import "strings"

type SortField string

const (
	SortNone       SortField = ""
	SortCategory   SortField = "category"
	SortName       SortField = "name"
	SortPrice      SortField = "price"
	SortExpiration SortField = "expiration"
	SortStock      SortField = "stock"
)

func (f SortField) Valid() bool {
	switch f {
	case SortNone, SortCategory, SortName, SortPrice, SortExpiration, SortStock:
		return true
	}
	return false
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder defaults anything that is not "desc" to ascending.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(s, string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// SortSpec orders by Primary, breaking ties with Secondary.
type SortSpec struct {
	Primary   SortField `json:"primary"`
	Secondary SortField `json:"secondary"`
	Order     SortOrder `json:"order"`
}
