// Package generator produces random but plausible friend catalogs for demos and
// load testing. A fixed seed always yields the same friends.
package generator

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jonathan/party-optimizer/internal/types"
)

// Diversity controls how much a friend's ratings vary across foods
type Diversity string

const (
	DiversityLow       Diversity = "low"
	DiversityMedium    Diversity = "medium"
	DiversityHigh      Diversity = "high"
	DiversityRealistic Diversity = "realistic"
)

// Distribution shapes the intimacy values of a batch
type Distribution string

const (
	DistributionNormal  Distribution = "normal"
	DistributionUniform Distribution = "uniform"
	DistributionBimodal Distribution = "bimodal"
)

const (
	MaxFriends = 500

	defaultIntimacyMean = 6.0
	defaultIntimacyStd  = 2.0
	nameAttempts        = 1000
)

// Options configures a batch
type Options struct {
	Count        int
	Foods        []string
	Diversity    Diversity
	Distribution Distribution
	Seed         uint64
}

// Validate rejects counts outside 1..MaxFriends and unknown modes
func (o Options) Validate() error {
	if o.Count < 1 || o.Count > MaxFriends {
		return fmt.Errorf("count must be between 1 and %d, got %d", MaxFriends, o.Count)
	}
	switch o.Diversity {
	case DiversityLow, DiversityMedium, DiversityHigh, DiversityRealistic:
	default:
		return fmt.Errorf("unknown diversity %q", o.Diversity)
	}
	switch o.Distribution {
	case DistributionNormal, DistributionUniform, DistributionBimodal:
	default:
		return fmt.Errorf("unknown intimacy distribution %q", o.Distribution)
	}
	return nil
}

// Generator draws friends from a seeded source
type Generator struct {
	rng  *rand.Rand
	used map[string]bool
}

func New(seed uint64) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		used: make(map[string]bool),
	}
}

// Generate is a convenience wrapper around New(opts.Seed).Batch(opts)
func Generate(opts Options) ([]types.Friend, error) {
	return New(opts.Seed).Batch(opts)
}

// Name returns a "First Last" name not yet handed out by this generator
func (g *Generator) Name() string {
	for i := 0; i < nameAttempts; i++ {
		name := g.pick(firstNames) + " " + g.pick(lastNames)
		if !g.used[name] {
			g.used[name] = true
			return name
		}
	}
	for {
		name := fmt.Sprintf("%s %s %d", g.pick(firstNames), g.pick(lastNames), g.rng.IntN(9999)+1)
		if !g.used[name] {
			g.used[name] = true
			return name
		}
	}
}

func (g *Generator) pick(list []string) string {
	return list[g.rng.IntN(len(list))]
}

// between returns an int in [lo, hi]
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// NormalIntimacy draws from N(mean, std), rounded and clamped to 1-10
func (g *Generator) NormalIntimacy(mean, std float64) int {
	v := int(math.Round(g.rng.NormFloat64()*std + mean))
	return clamp(v, types.MinIntimacy, types.MaxIntimacy)
}

// DietaryRestrictions draws from the weighted options
func (g *Generator) DietaryRestrictions() []string {
	r := g.rng.Float64()
	acc := 0.0
	for _, opt := range dietaryOptions {
		acc += opt.weight
		if r < acc {
			return append([]string(nil), opt.restrictions...)
		}
	}
	return nil
}

type personality int

const (
	personalityNone personality = iota
	personalityPicky
	personalityAdventurous
)

// Preferences rates every food
func (g *Generator) Preferences(foods []string, d Diversity) map[string]int {
	return g.preferences(foods, d, personalityNone)
}

func (g *Generator) preferences(foods []string, d Diversity, p personality) map[string]int {
	prefs := make(map[string]int, len(foods))

	switch d {
	case DiversityRealistic:
		base := 3
		if g.rng.Float64() >= 0.6 {
			base = 4
		}
		for _, f := range foods {
			prefs[f] = clamp(base+g.between(-2, 2), types.MinPreference, types.MaxPreference)
		}
	case DiversityLow:
		base := g.between(2, 4)
		for _, f := range foods {
			prefs[f] = clamp(base+g.between(-1, 1), types.MinPreference, types.MaxPreference)
		}
	default:
		for _, f := range foods {
			prefs[f] = g.between(types.MinPreference, types.MaxPreference)
		}
	}

	switch p {
	case personalityPicky:
		for f, v := range prefs {
			if v >= 4 {
				prefs[f] = types.MaxPreference
			} else if v <= 2 {
				prefs[f] = types.MinPreference
			}
		}
	case personalityAdventurous:
		for f, v := range prefs {
			prefs[f] = min(types.MaxPreference, v+1)
		}
	}
	return prefs
}

func (g *Generator) intimacies(n int, d Distribution) []int {
	out := make([]int, n)
	switch d {
	case DistributionUniform:
		for i := range out {
			out[i] = g.between(types.MinIntimacy, types.MaxIntimacy)
		}
	case DistributionBimodal:
		for i := range out {
			if i < n/2 {
				out[i] = g.between(7, types.MaxIntimacy)
			} else {
				out[i] = g.between(types.MinIntimacy, 4)
			}
		}
		g.rng.Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] })
	default:
		for i := range out {
			out[i] = g.NormalIntimacy(defaultIntimacyMean, defaultIntimacyStd)
		}
	}
	return out
}

// Batch generates opts.Count friends. Every tenth friend is picky and every
// seventh (not tenth) adventurous.
func (g *Generator) Batch(opts Options) ([]types.Friend, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	intimacies := g.intimacies(opts.Count, opts.Distribution)
	friends := make([]types.Friend, opts.Count)
	for i := range friends {
		p := personalityNone
		switch {
		case i%10 == 0:
			p = personalityPicky
		case i%7 == 0:
			p = personalityAdventurous
		}
		friends[i] = types.Friend{
			Name:                g.Name(),
			Intimacy:            intimacies[i],
			DietaryRestrictions: g.DietaryRestrictions(),
			Preferences:         g.preferences(opts.Foods, opts.Diversity, p),
		}
	}
	return friends, nil
}
