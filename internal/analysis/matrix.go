package analysis

import (
	"sort"

	"github.com/jonathan/party-optimizer/internal/types"
)

// Matrix is the friend x food rating grid. A zero cell means "not rated".
type Matrix struct {
	Foods []string    `json:"foods"`
	Rows  []MatrixRow `json:"rows"`
}

type MatrixRow struct {
	Friend   string `json:"friend"`
	Intimacy int    `json:"intimacy"`
	Ratings  []int  `json:"ratings"`
}

// PreferenceMatrix builds the grid over every rated food name, sorted, with
// friends in catalog order
func PreferenceMatrix(friends []types.Friend) Matrix {
	set := make(map[string]bool)
	for _, f := range friends {
		for food := range f.Preferences {
			set[food] = true
		}
	}
	foods := make([]string, 0, len(set))
	for food := range set {
		foods = append(foods, food)
	}
	sort.Strings(foods)

	m := Matrix{Foods: foods, Rows: make([]MatrixRow, 0, len(friends))}
	for _, f := range friends {
		row := MatrixRow{Friend: f.Name, Intimacy: f.Intimacy, Ratings: make([]int, len(foods))}
		for i, food := range foods {
			row.Ratings[i] = f.Preference(food)
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}

// Coverage is the share of cells that hold a rating
func (m Matrix) Coverage() float64 {
	cells, rated := 0, 0
	for _, r := range m.Rows {
		for _, v := range r.Ratings {
			cells++
			if v > 0 {
				rated++
			}
		}
	}
	if cells == 0 {
		return 0
	}
	return float64(rated) / float64(cells)
}
