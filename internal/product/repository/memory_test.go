package repository

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAssignsIDs(t *testing.T) {
	repo := NewMemoryRepository(model.Product{ID: 5, Name: "Seed", Category: model.CategoryClothing, Price: 1, Stock: 1})
	ctx := context.Background()

	p, err := repo.Create(ctx, &dto.CreateProductInput{Name: "Cable", Category: model.CategoryElectronics, Price: 2, Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(6), p.ID)

	_, err = repo.Create(ctx, &dto.CreateProductInput{Name: "Milk", Category: model.CategoryFood, Price: 2, Stock: 3})
	assert.ErrorIs(t, err, product.ErrInvalidProduct)
}

func TestMemoryRepository_ListPagesAndSorts(t *testing.T) {
	repo := NewMemoryRepository(SampleProducts(time.Now())...)
	ctx := context.Background()

	page, err := repo.List(ctx, &dto.ListParams{Page: 0, Size: 5, SortBy: model.SortPrice, SortOrder: model.SortDesc})
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "Monitor", page.Items[0].Name)
	assert.Equal(t, 13, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)

	last, err := repo.List(ctx, &dto.ListParams{Page: 2, Size: 5})
	require.NoError(t, err)
	assert.Len(t, last.Items, 3)

	beyond, err := repo.List(ctx, &dto.ListParams{Page: 9, Size: 5})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)

	byName, err := repo.List(ctx, &dto.ListParams{Page: 0, Size: 1})
	require.NoError(t, err)
	assert.Equal(t, "Apple", byName.Items[0].Name, "name is the default order")

	_, err = repo.List(ctx, &dto.ListParams{Page: 0, Size: 0})
	assert.Error(t, err)
}

func TestMemoryRepository_Totals(t *testing.T) {
	repo := NewMemoryRepository(
		model.Product{ID: 1, Category: model.CategoryFood, Stock: 10, Price: 5},
		model.Product{ID: 2, Category: model.CategoryFood, Stock: 5, Price: 3},
		model.Product{ID: 3, Category: model.CategoryElectronics, Stock: 2, Price: 100},
	)

	page, err := repo.List(context.Background(), &dto.ListParams{Page: 0, Size: 1})
	require.NoError(t, err)
	require.NotNil(t, page.Totals)
	assert.Equal(t, 17, page.Totals.TotalStock)
	assert.InDelta(t, 265, page.Totals.TotalValue, 1e-9)
	assert.Equal(t, 15, page.Totals.CategoryStock[model.CategoryFood])
	assert.InDelta(t, 200, page.Totals.CategoryValue[model.CategoryElectronics], 1e-9)
}

func TestMemoryRepository_StockToggles(t *testing.T) {
	repo := NewMemoryRepository(model.Product{ID: 1, Name: "Socks", Category: model.CategoryClothing, Price: 2, Stock: 3})
	ctx := context.Background()

	require.NoError(t, repo.MarkOutOfStock(ctx, 1))
	assert.Equal(t, product.OutOfStockQuantity, stockOf(t, repo, 1))

	require.NoError(t, repo.MarkInStock(ctx, 1))
	assert.Equal(t, product.RestockQuantity, stockOf(t, repo, 1))

	assert.ErrorIs(t, repo.MarkInStock(ctx, 2), product.ErrNotFound)
	assert.ErrorIs(t, repo.MarkOutOfStock(ctx, 2), product.ErrNotFound)
}

func TestMemoryRepository_UpdateAndDelete(t *testing.T) {
	repo := NewMemoryRepository(model.Product{ID: 1, Name: "Socks", Category: model.CategoryClothing, Price: 2, Stock: 3})
	ctx := context.Background()

	err := repo.Update(ctx, 1, &dto.UpdateProductInput{Name: "Wool Socks", Category: model.CategoryClothing, Price: 4, Stock: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, stockOf(t, repo, 1))

	err = repo.Update(ctx, 1, &dto.UpdateProductInput{Name: "", Category: model.CategoryClothing, Price: 4, Stock: 8})
	assert.ErrorIs(t, err, product.ErrInvalidProduct)

	err = repo.Update(ctx, 9, &dto.UpdateProductInput{Name: "x", Category: model.CategoryClothing, Price: 4, Stock: 8})
	assert.ErrorIs(t, err, product.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, 1))
	assert.ErrorIs(t, repo.Delete(ctx, 1), product.ErrNotFound)
}

func stockOf(t *testing.T, repo *MemoryRepository, id int64) int {
	t.Helper()
	page, err := repo.List(context.Background(), &dto.ListParams{Page: 0, Size: 100})
	require.NoError(t, err)
	for _, p := range page.Items {
		if p.ID == id {
			return p.Stock
		}
	}
	t.Fatalf("product %d not listed", id)
	return 0
}
