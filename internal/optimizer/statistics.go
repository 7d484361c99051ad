package optimizer

import (
	"math"

	"github.com/jonathan/party-optimizer/internal/types"
)

// Statistics summarizes a set of recommendations
type Statistics struct {
	Total            int     `json:"total"`
	CostMean         float64 `json:"cost_mean"`
	CostStd          float64 `json:"cost_std"`
	SatisfactionMean float64 `json:"satisfaction_mean"`
	SatisfactionStd  float64 `json:"satisfaction_std"`
	IntimacyMean     float64 `json:"intimacy_mean"`
	HappinessMax     float64 `json:"happiness_max"`
	GuestsMean       float64 `json:"guests_mean"`
	GuestsMin        int     `json:"guests_min"`
	GuestsMax        int     `json:"guests_max"`
}

// Summarize computes population statistics over recs. An empty input yields the zero value.
func Summarize(recs []types.Recommendation) Statistics {
	if len(recs) == 0 {
		return Statistics{}
	}

	n := float64(len(recs))
	costs := make([]float64, len(recs))
	sats := make([]float64, len(recs))
	stats := Statistics{
		Total:        len(recs),
		GuestsMin:    recs[0].NumGuests(),
		GuestsMax:    recs[0].NumGuests(),
		HappinessMax: recs[0].Happiness,
	}

	intimacySum, guestSum := 0.0, 0.0
	for i, r := range recs {
		costs[i] = r.TotalCost
		sats[i] = r.TotalSatisfaction
		intimacySum += float64(r.TotalIntimacy)
		guestSum += float64(r.NumGuests())
		stats.GuestsMin = min(stats.GuestsMin, r.NumGuests())
		stats.GuestsMax = max(stats.GuestsMax, r.NumGuests())
		stats.HappinessMax = max(stats.HappinessMax, r.Happiness)
	}

	stats.CostMean, stats.CostStd = meanStd(costs)
	stats.SatisfactionMean, stats.SatisfactionStd = meanStd(sats)
	stats.IntimacyMean = intimacySum / n
	stats.GuestsMean = guestSum / n
	return stats
}

func meanStd(values []float64) (float64, float64) {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	sq := 0.0
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}
