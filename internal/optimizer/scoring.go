package optimizer

import (
	"github.com/jonathan/party-optimizer/internal/types"
)

const (
	// savingsScale and intimacyScale bring dollars and intimacy points near the 1-5 rating range
	savingsScale  = 10.0
	intimacyScale = 10.0
)

// Score holds the derived objectives for one guest list and menu
type Score struct {
	AvgSatisfaction float64
	CostSavings     float64
	Happiness       float64
}

// ComputeScore combines satisfaction, savings and intimacy into host happiness:
//
//	happiness = w_s*avgSatisfaction + w_c*(savings/10) + w_i*(intimacy/10)
//
// where avgSatisfaction = totalSatisfaction / (guests * menu items).
func ComputeScore(
	totalSatisfaction, totalCost float64,
	totalIntimacy, numGuests, numItems int,
	budget float64,
	weights types.Weights,
) Score {
	avg := 0.0
	if numGuests > 0 && numItems > 0 {
		avg = totalSatisfaction / float64(numGuests*numItems)
	}
	savings := budget - totalCost

	return Score{
		AvgSatisfaction: avg,
		CostSavings:     savings,
		Happiness: weights.Satisfaction*avg +
			weights.Savings*(savings/savingsScale) +
			weights.Intimacy*(float64(totalIntimacy)/intimacyScale),
	}
}
