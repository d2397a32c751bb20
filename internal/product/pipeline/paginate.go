package pipeline

import "github.com/fekuna/omnipos-inventory-dashboard/internal/model"

const DefaultPageSize = 10

// TotalPages is never less than one, so an empty result still has page 0.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (total + pageSize - 1) / pageSize
	return max(pages, 1)
}

// ClampPage pulls pageIndex back into [0, TotalPages-1].
func ClampPage(pageIndex, total, pageSize int) int {
	return min(max(pageIndex, 0), TotalPages(total, pageSize)-1)
}

// Paginate returns the rows of the clamped page and the index actually used.
func Paginate(rows []model.Product, pageIndex, pageSize int) ([]model.Product, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pageIndex = ClampPage(pageIndex, len(rows), pageSize)
	start := pageIndex * pageSize
	end := min(start+pageSize, len(rows))
	if start >= end {
		return []model.Product{}, pageIndex
	}
	return rows[start:end:end], pageIndex
}
