package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"main", CategoryMain, false},
		{" Snack ", CategorySnack, false},
		{"DESSERT", CategoryDessert, false},
		{"drink", CategoryDrink, false},
		{"appetizer", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategory_Pools(t *testing.T) {
	assert.True(t, CategoryMain.IsFood())
	assert.True(t, CategorySnack.IsFood())
	assert.True(t, CategoryDessert.IsFood())
	assert.False(t, CategoryDrink.IsFood())
	assert.True(t, CategoryDrink.IsDrink())
	assert.False(t, CategorySnack.IsDrink())
}

func TestFriend_PreferenceMissingIsZero(t *testing.T) {
	f := Friend{Name: "Tom", Preferences: map[string]int{"Chips": 4}, Intimacy: 7}
	assert.Equal(t, 4, f.Preference("Chips"))
	assert.Equal(t, 0, f.Preference("Soda"))

	var empty Friend
	assert.Equal(t, 0, empty.Preference("Chips"))
}

func TestFriend_Validate(t *testing.T) {
	valid := Friend{Name: "Tom", Preferences: map[string]int{"Chips": 5}, Intimacy: 10}
	assert.NoError(t, valid.Validate())

	badIntimacy := Friend{Name: "Tom", Intimacy: 11}
	assert.Error(t, badIntimacy.Validate())

	badRating := Friend{Name: "Tom", Preferences: map[string]int{"Chips": 6}, Intimacy: 5}
	assert.Error(t, badRating.Validate())

	noName := Friend{Intimacy: 5}
	assert.Error(t, noName.Validate())
}

func TestFood_Validate(t *testing.T) {
	valid := Food{Name: "Soda", Cost: 2.49, Category: CategoryDrink}
	assert.NoError(t, valid.Validate())

	free := Food{Name: "Water", Cost: 0, Category: CategoryDrink}
	assert.NoError(t, free.Validate())

	negative := Food{Name: "Soda", Cost: -1, Category: CategoryDrink}
	assert.Error(t, negative.Validate())

	badCategory := Food{Name: "Soda", Cost: 1, Category: "beverage"}
	assert.Error(t, badCategory.Validate())
}

func TestCatalog_CloneIsDeep(t *testing.T) {
	c := Catalog{
		Friends: []Friend{{Name: "Tom", Preferences: map[string]int{"Chips": 4}, Intimacy: 7}},
		Foods:   []Food{{Name: "Chips", Cost: 2.99, Category: CategorySnack, Tags: []string{"salty"}}},
	}

	clone := c.Clone()
	clone.Friends[0].Preferences["Chips"] = 1
	clone.Foods[0].Tags[0] = "sweet"

	assert.Equal(t, 4, c.Friends[0].Preferences["Chips"])
	assert.Equal(t, "salty", c.Foods[0].Tags[0])
	assert.Equal(t, []string{"Chips"}, c.FoodNames())
}
