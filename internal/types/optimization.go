package types

import (
	"fmt"
	"math"
)

// WeightTolerance is how far the weight sum may drift from 1.0
const WeightTolerance = 1e-6

// Weights sets the relative importance of the three happiness objectives
type Weights struct {
	Satisfaction float64 `json:"satisfaction" koanf:"satisfaction"`
	Savings      float64 `json:"savings" koanf:"savings"`
	Intimacy     float64 `json:"intimacy" koanf:"intimacy"`
}

// DefaultWeights favours satisfaction and intimacy equally over savings
func DefaultWeights() Weights {
	return Weights{Satisfaction: 0.4, Savings: 0.2, Intimacy: 0.4}
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	return w.Satisfaction + w.Savings + w.Intimacy
}

// Validate checks that no weight is negative and the weights sum to 1.0
func (w Weights) Validate() error {
	if w.Satisfaction < 0 || w.Savings < 0 || w.Intimacy < 0 {
		return fmt.Errorf("negative weight in (%g, %g, %g)", w.Satisfaction, w.Savings, w.Intimacy)
	}
	if math.Abs(w.Sum()-1.0) > WeightTolerance {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	return nil
}

// OptimizationConfig holds the constraints and objective weights for one run
type OptimizationConfig struct {
	Budget    float64   `json:"budget"`
	MinGuests int       `json:"min_guests"`
	MaxGuests int       `json:"max_guests"`
	Weights   Weights   `json:"weights"`
	Rules     MenuRules `json:"rules"`
	// Workers bounds parallel evaluation; 0 means one per CPU
	Workers int `json:"workers,omitempty"`
}

// NewOptimizationConfig builds a config with default menu rules, considering
// guest lists from a single guest up to maxGuests
func NewOptimizationConfig(budget float64, maxGuests int, weights Weights) OptimizationConfig {
	return OptimizationConfig{
		Budget:    budget,
		MinGuests: 1,
		MaxGuests: maxGuests,
		Weights:   weights,
		Rules:     DefaultMenuRules(),
	}
}

// Recommendation is one scored candidate party
type Recommendation struct {
	// Guests are in original catalog order
	Guests            []string `json:"guests"`
	Menu              Menu     `json:"menu"`
	TotalCost         float64  `json:"total_cost"`
	TotalSatisfaction float64  `json:"total_satisfaction"`
	AvgSatisfaction   float64  `json:"avg_satisfaction"`
	CostSavings       float64  `json:"cost_savings"`
	TotalIntimacy     int      `json:"total_intimacy"`
	Happiness         float64  `json:"happiness"`
	// Index is the position of the guest combination in enumeration order
	Index int `json:"index"`
}

// NumGuests returns the size of the guest list
func (r Recommendation) NumGuests() int {
	return len(r.Guests)
}

// CostPerGuest returns the realized cost divided by guest count
func (r Recommendation) CostPerGuest() float64 {
	if len(r.Guests) == 0 {
		return 0
	}
	return r.TotalCost / float64(len(r.Guests))
}

// Efficiency returns satisfaction per unit of money spent
func (r Recommendation) Efficiency() float64 {
	if r.TotalCost <= 0 {
		return 0
	}
	return r.TotalSatisfaction / r.TotalCost
}
