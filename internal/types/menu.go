package types

import "fmt"

// Menu is a set of foods chosen for a party, foods first then drinks
type Menu []Food

// Foods returns the items from the food pool
func (m Menu) Foods() Menu {
	out := make(Menu, 0, len(m))
	for _, f := range m {
		if f.Category.IsFood() {
			out = append(out, f)
		}
	}
	return out
}

// Drinks returns the items from the drink pool
func (m Menu) Drinks() Menu {
	out := make(Menu, 0, len(m))
	for _, f := range m {
		if f.Category.IsDrink() {
			out = append(out, f)
		}
	}
	return out
}

// CostPerGuest is the summed unit price of every item on the menu
func (m Menu) CostPerGuest() float64 {
	total := 0.0
	for _, f := range m {
		total += f.Cost
	}
	return total
}

// Names returns item names in menu order
func (m Menu) Names() []string {
	names := make([]string, 0, len(m))
	for _, f := range m {
		names = append(names, f.Name)
	}
	return names
}

// MenuRules bounds how many items a valid menu takes from each pool
type MenuRules struct {
	MinFoods  int `json:"min_foods" koanf:"min_foods"`
	MaxFoods  int `json:"max_foods" koanf:"max_foods"`
	MinDrinks int `json:"min_drinks" koanf:"min_drinks"`
	MaxDrinks int `json:"max_drinks" koanf:"max_drinks"`
}

// DefaultMenuRules allows 1-3 foods and 1-2 drinks
func DefaultMenuRules() MenuRules {
	return MenuRules{MinFoods: 1, MaxFoods: 3, MinDrinks: 1, MaxDrinks: 2}
}

// Validate requires at least one item from each pool and min <= max
func (r MenuRules) Validate() error {
	if r.MinFoods < 1 || r.MinDrinks < 1 {
		return fmt.Errorf("menu rules need at least 1 food and 1 drink, got %d and %d", r.MinFoods, r.MinDrinks)
	}
	if r.MaxFoods < r.MinFoods {
		return fmt.Errorf("max foods (%d) is below min foods (%d)", r.MaxFoods, r.MinFoods)
	}
	if r.MaxDrinks < r.MinDrinks {
		return fmt.Errorf("max drinks (%d) is below min drinks (%d)", r.MaxDrinks, r.MinDrinks)
	}
	return nil
}

// Allows reports whether a menu satisfies the composition rule
func (r MenuRules) Allows(m Menu) bool {
	foods, drinks := len(m.Foods()), len(m.Drinks())
	if foods+drinks != len(m) {
		return false
	}
	return foods >= r.MinFoods && foods <= r.MaxFoods &&
		drinks >= r.MinDrinks && drinks <= r.MaxDrinks
}
