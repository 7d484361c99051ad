package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/party-optimizer/internal/types"
)

// ExportOptions adds per-friend summary columns when IncludeStats is set
type ExportOptions struct {
	IncludeStats bool
}

// ExportFriends writes friends with one column per food in foodColumns and returns
// the number of rows written
func ExportFriends(w io.Writer, friends []types.Friend, foodColumns []string, opts ExportOptions) (int, error) {
	cw := csv.NewWriter(w)

	head := append([]string{ColName, ColIntimacy, ColDietary}, foodColumns...)
	if opts.IncludeStats {
		head = append(head, ColTotalPrefs, ColAvgPref)
	}
	if err := cw.Write(head); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	for _, f := range friends {
		row := []string{f.Name, strconv.Itoa(f.Intimacy), strings.Join(f.DietaryRestrictions, restrictionSep)}
		for _, food := range foodColumns {
			if v, ok := f.Preferences[food]; ok {
				row = append(row, strconv.Itoa(v))
			} else {
				row = append(row, "")
			}
		}
		if opts.IncludeStats {
			row = append(row, strconv.Itoa(len(f.Preferences)), strconv.FormatFloat(avgRating(f), 'f', 2, 64))
		}
		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("failed to write row for %s: %w", f.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return len(friends), nil
}

func avgRating(f types.Friend) float64 {
	if len(f.Preferences) == 0 {
		return 0
	}
	sum := 0
	for _, v := range f.Preferences {
		sum += v
	}
	return float64(sum) / float64(len(f.Preferences))
}

// WriteTemplate writes three example rows; the first three food columns carry
// sample ratings
func WriteTemplate(w io.Writer, foodColumns []string) error {
	samples := []struct {
		name     string
		intimacy int
		dietary  string
		ratings  []string
	}{
		{"Alice Johnson", 8, "vegetarian", []string{"5", "4", "3"}},
		{"Bob Smith", 7, "", []string{"4", "3", "5"}},
		{"Carol Davis", 9, "vegan;gluten-free", []string{"3", "5", "4"}},
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{ColName, ColIntimacy, ColDietary}, foodColumns...)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, s := range samples {
		row := []string{s.name, strconv.Itoa(s.intimacy), s.dietary}
		for i := range foodColumns {
			if i < len(s.ratings) {
				row = append(row, s.ratings[i])
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write template row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
