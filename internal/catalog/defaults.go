package catalog

import "github.com/jonathan/party-optimizer/internal/types"

// DefaultFoods is the starter menu offered to new catalogs
func DefaultFoods() []types.Food {
	return []types.Food{
		{Name: "Fried Chicken", Cost: 5.70, Category: types.CategoryMain},
		{Name: "Chips", Cost: 2.99, Category: types.CategorySnack},
		{Name: "Sandwich", Cost: 4.00, Category: types.CategoryMain},
		{Name: "Cookies", Cost: 1.99, Category: types.CategoryDessert},
		{Name: "Candy", Cost: 0.99, Category: types.CategoryDessert},
		{Name: "Soda", Cost: 2.49, Category: types.CategoryDrink},
		{Name: "Juice", Cost: 2.79, Category: types.CategoryDrink},
		{Name: "Tea", Cost: 1.89, Category: types.CategoryDrink},
	}
}
