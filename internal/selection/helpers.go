package selection

import (
	"github.com/jonathan/party-optimizer/internal/types"
)

// PartitionFoods splits the catalog into the food pool and the drink pool,
// preserving catalog order within each pool
func PartitionFoods(foods []types.Food) (foodPool, drinkPool []types.Food) {
	for _, f := range foods {
		switch {
		case f.Category.IsFood():
			foodPool = append(foodPool, f)
		case f.Category.IsDrink():
			drinkPool = append(drinkPool, f)
		}
	}
	return foodPool, drinkPool
}

// MenuSatisfaction sums every guest's rating of every menu item
func MenuSatisfaction(menu []types.Food, guests []types.Friend) float64 {
	total := 0
	for _, item := range menu {
		for _, guest := range guests {
			total += guest.Preference(item.Name)
		}
	}
	return float64(total)
}

// MenuCost is the unit cost of every item multiplied by the number of guests
func MenuCost(menu []types.Food, numGuests int) float64 {
	return types.Menu(menu).CostPerGuest() * float64(numGuests)
}

// CheapestMenuCost returns the per-guest price of the cheapest menu the rules allow,
// and false when either pool is too small to build one
func CheapestMenuCost(foods []types.Food, rules types.MenuRules) (float64, bool) {
	foodPool, drinkPool := PartitionFoods(foods)
	if len(foodPool) < rules.MinFoods || len(drinkPool) < rules.MinDrinks {
		return 0, false
	}
	return sumCheapest(foodPool, rules.MinFoods) + sumCheapest(drinkPool, rules.MinDrinks), true
}

func sumCheapest(pool []types.Food, n int) float64 {
	costs := make([]float64, len(pool))
	for i, f := range pool {
		costs[i] = f.Cost
	}
	// n is tiny, selection sort is fine
	total := 0.0
	for i := 0; i < n; i++ {
		minIdx := i
		for j := i + 1; j < len(costs); j++ {
			if costs[j] < costs[minIdx] {
				minIdx = j
			}
		}
		costs[i], costs[minIdx] = costs[minIdx], costs[i]
		total += costs[i]
	}
	return total
}
