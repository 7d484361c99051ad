package selection

import (
	"github.com/jonathan/party-optimizer/internal/types"
)

// MenuResult is the best affordable menu for one guest list
type MenuResult struct {
	Menu         types.Menu
	Satisfaction float64
	Cost         float64
}

// FindBestMenu exhaustively searches every menu the rules allow and returns the one
// with the highest total satisfaction whose cost (unit prices times guest count)
// stays within budget. Ties keep the first menu in enumeration order: food-pool
// size ascending, food combinations lexicographic, then drink-pool size ascending,
// drink combinations lexicographic.
//
// Returns ErrNoViableMenu when guests is empty, a pool is smaller than its minimum,
// or nothing fits the budget.
func FindBestMenu(guests []types.Friend, foods []types.Food, budget float64, rules types.MenuRules) (*MenuResult, error) {
	if len(guests) == 0 {
		return nil, ErrNoViableMenu
	}
	if err := rules.Validate(); err != nil {
		return nil, &Error{Message: "invalid menu rules", Cause: err}
	}

	foodPool, drinkPool := PartitionFoods(foods)
	if len(foodPool) < rules.MinFoods || len(drinkPool) < rules.MinDrinks {
		return nil, ErrNoViableMenu
	}

	// Satisfaction is additive over items, so score each item once for this guest list
	foodScores := itemScores(foodPool, guests)
	drinkScores := itemScores(drinkPool, guests)
	numGuests := float64(len(guests))

	var (
		found      bool
		bestScore  float64
		bestCost   float64
		bestFoods  []int
		bestDrinks []int
	)

	for numFoods := rules.MinFoods; numFoods <= min(rules.MaxFoods, len(foodPool)); numFoods++ {
		ForEachCombination(len(foodPool), numFoods, func(fIdx []int) bool {
			foodCost, foodScore := 0.0, 0.0
			for _, i := range fIdx {
				foodCost += foodPool[i].Cost
				foodScore += foodScores[i]
			}

			for numDrinks := rules.MinDrinks; numDrinks <= min(rules.MaxDrinks, len(drinkPool)); numDrinks++ {
				ForEachCombination(len(drinkPool), numDrinks, func(dIdx []int) bool {
					unitCost, score := foodCost, foodScore
					for _, i := range dIdx {
						unitCost += drinkPool[i].Cost
						score += drinkScores[i]
					}

					cost := unitCost * numGuests
					if cost > budget {
						return true
					}
					if !found || score > bestScore {
						found = true
						bestScore = score
						bestCost = cost
						bestFoods = append(bestFoods[:0], fIdx...)
						bestDrinks = append(bestDrinks[:0], dIdx...)
					}
					return true
				})
			}
			return true
		})
	}

	if !found {
		return nil, ErrNoViableMenu
	}

	menu := make(types.Menu, 0, len(bestFoods)+len(bestDrinks))
	for _, i := range bestFoods {
		menu = append(menu, foodPool[i])
	}
	for _, i := range bestDrinks {
		menu = append(menu, drinkPool[i])
	}

	return &MenuResult{
		Menu:         menu,
		Satisfaction: bestScore,
		Cost:         bestCost,
	}, nil
}

// itemScores returns, per item, the sum of every guest's rating for it
func itemScores(pool []types.Food, guests []types.Friend) []float64 {
	scores := make([]float64, len(pool))
	for i, item := range pool {
		total := 0
		for _, g := range guests {
			total += g.Preference(item.Name)
		}
		scores[i] = float64(total)
	}
	return scores
}
