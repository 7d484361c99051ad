package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{"defaults", DefaultWeights(), false},
		{"all satisfaction", Weights{Satisfaction: 1}, false},
		{"sum 0.9", Weights{Satisfaction: 0.4, Savings: 0.1, Intimacy: 0.4}, true},
		{"sum 1.1", Weights{Satisfaction: 0.5, Savings: 0.2, Intimacy: 0.4}, true},
		{"negative", Weights{Satisfaction: 1.2, Savings: -0.2}, true},
		{"within tolerance", Weights{Satisfaction: 0.3333333, Savings: 0.3333333, Intimacy: 0.3333334}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMenuRules(t *testing.T) {
	rules := DefaultMenuRules()
	assert.NoError(t, rules.Validate())

	chips := Food{Name: "Chips", Cost: 2.99, Category: CategorySnack}
	candy := Food{Name: "Candy", Cost: 0.99, Category: CategoryDessert}
	chicken := Food{Name: "Chicken", Cost: 5.70, Category: CategoryMain}
	cookies := Food{Name: "Cookies", Cost: 1.99, Category: CategoryDessert}
	soda := Food{Name: "Soda", Cost: 2.49, Category: CategoryDrink}
	tea := Food{Name: "Tea", Cost: 1.89, Category: CategoryDrink}
	juice := Food{Name: "Juice", Cost: 2.79, Category: CategoryDrink}

	assert.True(t, rules.Allows(Menu{chips, soda}))
	assert.True(t, rules.Allows(Menu{chips, candy, chicken, soda, tea}))
	assert.False(t, rules.Allows(Menu{chips}), "no drink")
	assert.False(t, rules.Allows(Menu{soda}), "no food")
	assert.False(t, rules.Allows(Menu{chips, candy, chicken, cookies, soda}), "four foods")
	assert.False(t, rules.Allows(Menu{chips, soda, tea, juice}), "three drinks")

	assert.Error(t, MenuRules{MinFoods: 0, MaxFoods: 3, MinDrinks: 1, MaxDrinks: 2}.Validate())
	assert.Error(t, MenuRules{MinFoods: 2, MaxFoods: 1, MinDrinks: 1, MaxDrinks: 2}.Validate())
}

func TestMenu_Helpers(t *testing.T) {
	m := Menu{
		{Name: "Chips", Cost: 2.99, Category: CategorySnack},
		{Name: "Soda", Cost: 2.49, Category: CategoryDrink},
	}
	assert.InDelta(t, 5.48, m.CostPerGuest(), 1e-9)
	assert.Equal(t, []string{"Chips", "Soda"}, m.Names())
	assert.Len(t, m.Foods(), 1)
	assert.Len(t, m.Drinks(), 1)
}

func TestRecommendation_Derived(t *testing.T) {
	r := Recommendation{Guests: []string{"Tom", "Bob"}, TotalCost: 10, TotalSatisfaction: 20}
	assert.Equal(t, 2, r.NumGuests())
	assert.InDelta(t, 5.0, r.CostPerGuest(), 1e-9)
	assert.InDelta(t, 2.0, r.Efficiency(), 1e-9)

	assert.Equal(t, 0.0, Recommendation{}.CostPerGuest())
	assert.Equal(t, 0.0, Recommendation{}.Efficiency())
}

func TestNewOptimizationConfig(t *testing.T) {
	cfg := NewOptimizationConfig(50, 3, DefaultWeights())
	assert.Equal(t, 50.0, cfg.Budget)
	assert.Equal(t, 1, cfg.MinGuests)
	assert.Equal(t, 3, cfg.MaxGuests)
	assert.Equal(t, DefaultMenuRules(), cfg.Rules)
	assert.Zero(t, cfg.Workers)
}
