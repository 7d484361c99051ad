package optimizer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/party-optimizer/internal/logging"
	"github.com/jonathan/party-optimizer/internal/metrics"
	"github.com/jonathan/party-optimizer/internal/selection"
	"github.com/jonathan/party-optimizer/internal/types"
)

// pruneSlack keeps the size cutoff conservative against float rounding
const pruneSlack = 1e-9

// job is one guest combination with its position in enumeration order
type job struct {
	index  int
	guests []int
}

// Optimize evaluates every guest list of size cfg.MinGuests..cfg.MaxGuests and returns
// the viable parties sorted by happiness descending. Equal happiness keeps enumeration order
// (size ascending, then lexicographic combination order).
func Optimize(friends []types.Friend, foods []types.Food, cfg types.OptimizationConfig) ([]types.Recommendation, error) {
	return OptimizeContext(context.Background(), friends, foods, cfg)
}

// OptimizeContext is Optimize with cancellation checked between guest combinations
func OptimizeContext(
	ctx context.Context,
	friends []types.Friend,
	foods []types.Food,
	cfg types.OptimizationConfig,
) ([]types.Recommendation, error) {
	start := time.Now()

	if err := Validate(friends, foods, cfg); err != nil {
		outcome := "invalid_config"
		if errors.Is(err, ErrEmptyCatalog) {
			outcome = "empty_catalog"
		}
		metrics.RecordOptimize(outcome, 0, 0, time.Since(start))
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		metrics.RecordOptimize("canceled", 0, 0, time.Since(start))
		return nil, fmt.Errorf("optimization aborted: %w", err)
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Costs are non-negative, so the cheapest legal menu uses the minimum item counts
	// and grows with guest count: once it is over budget no larger guest list fits.
	cheapest, feasible := selection.CheapestMenuCost(foods, cfg.Rules)
	maxSize, searchSpace := 0, 0
	for size := cfg.MinGuests; feasible && size <= cfg.MaxGuests; size++ {
		if cheapest*float64(size) > cfg.Budget+pruneSlack {
			break
		}
		maxSize = size
		searchSpace += selection.Binomial(len(friends), size)
	}

	log := logging.With().Str("component", "optimizer").Logger()
	log.Debug().
		Int("friends", len(friends)).
		Int("foods", len(foods)).
		Int("min_guests", cfg.MinGuests).
		Int("max_guests", cfg.MaxGuests).
		Int("affordable_size", maxSize).
		Int("search_space", searchSpace).
		Float64("budget", cfg.Budget).
		Int("workers", workers).
		Msg("searching guest combinations")

	var (
		mu       sync.Mutex
		results  []types.Recommendation
		produced int
	)

	g, gCtx := errgroup.WithContext(ctx)
	jobs := make(chan job, workers*4)

	// Producer: enumerate combinations in canonical order
	g.Go(func() error {
		defer close(jobs)
		index := 0
		for size := cfg.MinGuests; size <= maxSize; size++ {
			var sendErr error
			selection.ForEachCombination(len(friends), size, func(idx []int) bool {
				select {
				case jobs <- job{index: index, guests: append([]int(nil), idx...)}:
					index++
					return true
				case <-gCtx.Done():
					sendErr = gCtx.Err()
					return false
				}
			})
			if sendErr != nil {
				return sendErr
			}
		}
		mu.Lock()
		produced = index
		mu.Unlock()
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var local []types.Recommendation
			for j := range jobs {
				if err := gCtx.Err(); err != nil {
					return err
				}
				rec, ok, err := evaluate(friends, foods, cfg, j)
				if err != nil {
					return err
				}
				if ok {
					local = append(local, rec)
				}
			}
			mu.Lock()
			results = append(results, local...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.RecordOptimize(failureOutcome(err), produced, 0, time.Since(start))
		return nil, fmt.Errorf("optimization aborted: %w", err)
	}

	SortRecommendations(results)
	if results == nil {
		results = []types.Recommendation{}
	}

	log.Debug().
		Int("combinations", produced).
		Int("recommendations", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("optimization finished")
	metrics.RecordOptimize("ok", produced, len(results), time.Since(start))

	return results, nil
}

// failureOutcome labels an aborted search for metrics
func failureOutcome(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "error"
}

// evaluate runs the menu selector for one guest combination. ok is false when no
// affordable menu exists, which simply drops the combination.
func evaluate(friends []types.Friend, foods []types.Food, cfg types.OptimizationConfig, j job) (types.Recommendation, bool, error) {
	guests := make([]types.Friend, len(j.guests))
	names := make([]string, len(j.guests))
	totalIntimacy := 0
	for i, idx := range j.guests {
		guests[i] = friends[idx]
		names[i] = friends[idx].Name
		totalIntimacy += friends[idx].Intimacy
	}

	best, err := selection.FindBestMenu(guests, foods, cfg.Budget, cfg.Rules)
	if err != nil {
		if errors.Is(err, selection.ErrNoViableMenu) {
			return types.Recommendation{}, false, nil
		}
		return types.Recommendation{}, false, err
	}

	score := ComputeScore(best.Satisfaction, best.Cost, totalIntimacy, len(guests), len(best.Menu), cfg.Budget, cfg.Weights)

	return types.Recommendation{
		Guests:            names,
		Menu:              best.Menu,
		TotalCost:         best.Cost,
		TotalSatisfaction: best.Satisfaction,
		AvgSatisfaction:   score.AvgSatisfaction,
		CostSavings:       score.CostSavings,
		TotalIntimacy:     totalIntimacy,
		Happiness:         score.Happiness,
		Index:             j.index,
	}, true, nil
}

// SortRecommendations orders by happiness descending, then enumeration index ascending
func SortRecommendations(recs []types.Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Happiness != recs[j].Happiness {
			return recs[i].Happiness > recs[j].Happiness
		}
		return recs[i].Index < recs[j].Index
	})
}

// Top returns at most n leading recommendations
func Top(recs []types.Recommendation, n int) []types.Recommendation {
	if n < 0 || n >= len(recs) {
		return recs
	}
	return recs[:n]
}
