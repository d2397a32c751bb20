package dto

import "github.com/fekuna/omnipos-inventory-dashboard/internal/model"

// ListParams selects one page of products from the repository.
// Page is zero-based.
type ListParams struct {
	Page      int
	Size      int
	SortBy    model.SortField
	SortOrder model.SortOrder
}
