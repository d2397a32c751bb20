package repository

import (
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
)

// SampleProducts is the catalogue loaded in local mode. Food expirations are
// placed relative to now so every expiration band is represented.
func SampleProducts(now time.Time) []model.Product {
	day := func(n int) time.Time {
		y, m, d := now.AddDate(0, 0, n).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return []model.Product{
		{Name: "Watermelon", Category: model.CategoryFood, Price: 10, Stock: 10, Expiration: day(3)},
		{Name: "Apple", Category: model.CategoryFood, Price: 2, Stock: 4, Expiration: day(10)},
		{Name: "Bread", Category: model.CategoryFood, Price: 3.5, Stock: 20, Expiration: day(2)},
		{Name: "Rice", Category: model.CategoryFood, Price: 1.25, Stock: 50, Expiration: day(180)},
		{Name: "Milk", Category: model.CategoryFood, Price: 1.1, Stock: 0, Expiration: day(12)},
		{Name: "Canned Beans", Category: model.CategoryFood, Price: 0.9, Stock: 35},
		{Name: "T-Shirt", Category: model.CategoryClothing, Price: 15, Stock: 7},
		{Name: "Jeans", Category: model.CategoryClothing, Price: 40, Stock: 12},
		{Name: "Jacket", Category: model.CategoryClothing, Price: 85, Stock: 0},
		{Name: "Socks", Category: model.CategoryClothing, Price: 4.99, Stock: 3},
		{Name: "Headphones", Category: model.CategoryElectronics, Price: 100, Stock: 2},
		{Name: "Keyboard", Category: model.CategoryElectronics, Price: 45.5, Stock: 9},
		{Name: "Monitor", Category: model.CategoryElectronics, Price: 220, Stock: 14},
	}
}
