// Package types provides type definitions for structured data used throughout the party optimizer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// Category classifies a menu item. Only the split between the food pool and the
// drink pool matters to menu composition.
type Category string

const (
	CategoryMain    Category = "main"
	CategorySnack   Category = "snack"
	CategoryDessert Category = "dessert"
	CategoryDrink   Category = "drink"
)

// Rating and intimacy bounds
const (
	MinPreference = 1
	MaxPreference = 5
	MinIntimacy   = 1
	MaxIntimacy   = 10
)

// Categories lists every valid category in display order
var Categories = []Category{CategoryMain, CategorySnack, CategoryDessert, CategoryDrink}

// ParseCategory converts a string into a Category, rejecting unknown values
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryMain, CategorySnack, CategoryDessert, CategoryDrink:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category %q (want one of main, snack, dessert, drink)", s)
	}
}

// IsFood reports whether the category belongs to the food pool
func (c Category) IsFood() bool {
	return c == CategoryMain || c == CategorySnack || c == CategoryDessert
}

// IsDrink reports whether the category belongs to the drink pool
func (c Category) IsDrink() bool {
	return c == CategoryDrink
}

// Friend is a guest candidate with food ratings and host-perceived closeness
type Friend struct {
	Name                string         `json:"name" validate:"required"`
	Preferences         map[string]int `json:"preferences" validate:"dive,min=1,max=5"`
	Intimacy            int            `json:"intimacy" validate:"min=1,max=10"`
	DietaryRestrictions []string       `json:"dietary_restrictions,omitempty"`
}

// Preference returns the friend's rating for a food item. Missing ratings count as 0.
func (f Friend) Preference(food string) int {
	return f.Preferences[food]
}

// Validate checks rating and intimacy bounds
func (f *Friend) Validate() error {
	return validateStruct(f)
}

// Clone returns a deep copy of the friend
func (f Friend) Clone() Friend {
	out := f
	if f.Preferences != nil {
		out.Preferences = make(map[string]int, len(f.Preferences))
		for k, v := range f.Preferences {
			out.Preferences[k] = v
		}
	}
	if f.DietaryRestrictions != nil {
		out.DietaryRestrictions = append([]string(nil), f.DietaryRestrictions...)
	}
	return out
}

// Food is a menu item priced per single guest
type Food struct {
	Name     string   `json:"name" validate:"required"`
	Cost     float64  `json:"cost" validate:"gte=0"`
	Category Category `json:"category" validate:"oneof=main snack dessert drink"`
	Tags     []string `json:"tags,omitempty"`
}

// Validate checks cost and category
func (f *Food) Validate() error {
	return validateStruct(f)
}

// Catalog is an immutable snapshot of friends and foods handed to the optimizer.
// Any edit produces a new snapshot owned by the caller.
type Catalog struct {
	Friends []Friend `json:"friends"`
	Foods   []Food   `json:"foods"`
}

// Clone returns a deep copy of the catalog
func (c Catalog) Clone() Catalog {
	out := Catalog{
		Friends: make([]Friend, len(c.Friends)),
		Foods:   make([]Food, len(c.Foods)),
	}
	for i, f := range c.Friends {
		out.Friends[i] = f.Clone()
	}
	for i, f := range c.Foods {
		out.Foods[i] = f
		if f.Tags != nil {
			out.Foods[i].Tags = append([]string(nil), f.Tags...)
		}
	}
	return out
}

// FoodNames returns the names of all foods in catalog order
func (c Catalog) FoodNames() []string {
	names := make([]string, 0, len(c.Foods))
	for _, f := range c.Foods {
		names = append(names, f.Name)
	}
	return names
}
