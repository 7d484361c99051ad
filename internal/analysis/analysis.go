// Package analysis derives catalog statistics: per-friend summaries, per-food
// ratings and value, and the friend x food preference matrix.
package analysis

import (
	"math"
	"sort"

	"github.com/jonathan/party-optimizer/internal/types"
)

// FriendSummary condenses one friend's ratings
type FriendSummary struct {
	Name          string   `json:"name"`
	Intimacy      int      `json:"intimacy"`
	NumRated      int      `json:"num_rated"`
	AvgPreference float64  `json:"avg_preference"`
	MaxPreference int      `json:"max_preference"`
	MinPreference int      `json:"min_preference"`
	Restrictions  []string `json:"restrictions,omitempty"`
}

// FoodAnalysis scores one food by the friends who rated it. Unrated (0) entries
// are ignored.
type FoodAnalysis struct {
	Name        string         `json:"name"`
	Cost        float64        `json:"cost"`
	Category    types.Category `json:"category"`
	AvgRating   float64        `json:"avg_rating"`
	WeightedAvg float64        `json:"weighted_avg"`
	NumRatings  int            `json:"num_ratings"`
	Popularity  float64        `json:"popularity"`
	ValueScore  float64        `json:"value_score"`
}

// RatingStats is the rating distribution of a food name across friends
type RatingStats struct {
	Food       string  `json:"food"`
	Avg        float64 `json:"avg"`
	Median     float64 `json:"median"`
	Std        float64 `json:"std"`
	NumRatings int     `json:"num_ratings"`
}

// Overview is the headline numbers for a catalog report
type Overview struct {
	TotalFriends int     `json:"total_friends"`
	AvgIntimacy  float64 `json:"avg_intimacy"`
	MinIntimacy  int     `json:"min_intimacy"`
	MaxIntimacy  int     `json:"max_intimacy"`
	TotalFoods   int     `json:"total_foods"`
	AvgFoodCost  float64 `json:"avg_food_cost"`
}

// Report bundles everything the analyze command prints
type Report struct {
	Overview Overview        `json:"overview"`
	Friends  []FriendSummary `json:"friends"`
	Foods    []FoodAnalysis  `json:"foods"`
}

// SummarizeFriends returns one summary per friend, closest friends first
func SummarizeFriends(friends []types.Friend) []FriendSummary {
	out := make([]FriendSummary, 0, len(friends))
	for _, f := range friends {
		s := FriendSummary{
			Name:         f.Name,
			Intimacy:     f.Intimacy,
			NumRated:     len(f.Preferences),
			Restrictions: f.DietaryRestrictions,
		}
		if len(f.Preferences) > 0 {
			s.MinPreference = math.MaxInt
			sum := 0
			for _, v := range f.Preferences {
				sum += v
				s.MaxPreference = max(s.MaxPreference, v)
				s.MinPreference = min(s.MinPreference, v)
			}
			s.AvgPreference = float64(sum) / float64(len(f.Preferences))
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Intimacy > out[j].Intimacy })
	return out
}

// AnalyzeFoods scores catalog foods that at least one friend rated, most popular
// first. Popularity is ratings count x average rating; value is the
// intimacy-weighted average per dollar.
func AnalyzeFoods(friends []types.Friend, foods []types.Food) []FoodAnalysis {
	var out []FoodAnalysis
	for _, food := range foods {
		var sum, weighted, intimacy, n int
		for _, f := range friends {
			r := f.Preference(food.Name)
			if r <= 0 {
				continue
			}
			n++
			sum += r
			weighted += r * f.Intimacy
			intimacy += f.Intimacy
		}
		if n == 0 {
			continue
		}

		a := FoodAnalysis{
			Name:       food.Name,
			Cost:       food.Cost,
			Category:   food.Category,
			AvgRating:  float64(sum) / float64(n),
			NumRatings: n,
		}
		if intimacy > 0 {
			a.WeightedAvg = float64(weighted) / float64(intimacy)
		}
		a.Popularity = float64(n) * a.AvgRating
		if food.Cost > 0 {
			a.ValueScore = a.WeightedAvg / food.Cost
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	return out
}

// RatingDistribution covers every food name any friend rated, including names
// missing from the food catalog, highest average first
func RatingDistribution(friends []types.Friend) []RatingStats {
	ratings := make(map[string][]int)
	for _, f := range friends {
		for food, r := range f.Preferences {
			ratings[food] = append(ratings[food], r)
		}
	}

	out := make([]RatingStats, 0, len(ratings))
	for food, rs := range ratings {
		mean, std := meanStd(rs)
		out = append(out, RatingStats{
			Food:       food,
			Avg:        mean,
			Median:     median(rs),
			Std:        std,
			NumRatings: len(rs),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Avg != out[j].Avg {
			return out[i].Avg > out[j].Avg
		}
		return out[i].Food < out[j].Food
	})
	return out
}

// BuildReport assembles the overview, friend summaries and food analysis
func BuildReport(c types.Catalog) Report {
	r := Report{
		Friends: SummarizeFriends(c.Friends),
		Foods:   AnalyzeFoods(c.Friends, c.Foods),
	}

	r.Overview.TotalFriends = len(c.Friends)
	if len(c.Friends) > 0 {
		r.Overview.MinIntimacy = math.MaxInt
		sum := 0
		for _, f := range c.Friends {
			sum += f.Intimacy
			r.Overview.MinIntimacy = min(r.Overview.MinIntimacy, f.Intimacy)
			r.Overview.MaxIntimacy = max(r.Overview.MaxIntimacy, f.Intimacy)
		}
		r.Overview.AvgIntimacy = float64(sum) / float64(len(c.Friends))
	}

	r.Overview.TotalFoods = len(c.Foods)
	if len(c.Foods) > 0 {
		total := 0.0
		for _, f := range c.Foods {
			total += f.Cost
		}
		r.Overview.AvgFoodCost = total / float64(len(c.Foods))
	}
	return r
}

func meanStd(xs []int) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += float64(x)
	}
	mean := sum / float64(len(xs))
	ss := 0.0
	for _, x := range xs {
		d := float64(x) - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(xs)))
}

func median(xs []int) float64 {
	s := append([]int(nil), xs...)
	sort.Ints(s)
	n := len(s)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return float64(s[n/2])
	}
	return float64(s[n/2-1]+s[n/2]) / 2
}
