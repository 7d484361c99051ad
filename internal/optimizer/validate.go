package optimizer

import (
	"fmt"
	"math"

	"github.com/jonathan/party-optimizer/internal/types"
)

// Validate checks the catalog and config before any enumeration starts
func Validate(friends []types.Friend, foods []types.Food, cfg types.OptimizationConfig) error {
	if len(friends) == 0 {
		return fmt.Errorf("%w: no friends supplied", ErrEmptyCatalog)
	}
	if len(foods) == 0 {
		return fmt.Errorf("%w: no food items supplied", ErrEmptyCatalog)
	}

	for i, f := range foods {
		if math.IsNaN(f.Cost) || math.IsInf(f.Cost, 0) || f.Cost < 0 {
			return &ConfigError{
				Field:   fmt.Sprintf("foods[%d].cost", i),
				Message: fmt.Sprintf("%s must have a non-negative cost, got %v", f.Name, f.Cost),
			}
		}
	}

	if math.IsNaN(cfg.Budget) || math.IsInf(cfg.Budget, 0) || cfg.Budget < 0 {
		return &ConfigError{Field: "budget", Message: fmt.Sprintf("must be a non-negative number, got %v", cfg.Budget)}
	}
	if cfg.MaxGuests < 1 || cfg.MaxGuests > len(friends) {
		return &ConfigError{
			Field:   "max_guests",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", len(friends), cfg.MaxGuests),
		}
	}
	if cfg.MinGuests < 1 || cfg.MinGuests > cfg.MaxGuests {
		return &ConfigError{
			Field:   "min_guests",
			Message: fmt.Sprintf("must be between 1 and max_guests (%d), got %d", cfg.MaxGuests, cfg.MinGuests),
		}
	}
	if err := cfg.Weights.Validate(); err != nil {
		return &ConfigError{Field: "weights", Message: "rejected", Cause: err}
	}
	if err := cfg.Rules.Validate(); err != nil {
		return &ConfigError{Field: "rules", Message: "rejected", Cause: err}
	}
	if cfg.Workers < 0 {
		return &ConfigError{Field: "workers", Message: fmt.Sprintf("must not be negative, got %d", cfg.Workers)}
	}
	return nil
}
