package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/jonathan/party-optimizer/internal/config"
	"github.com/jonathan/party-optimizer/internal/db"
	"github.com/jonathan/party-optimizer/internal/logging"
	"github.com/jonathan/party-optimizer/internal/optimizer"
	"github.com/jonathan/party-optimizer/internal/schemas"
	"github.com/jonathan/party-optimizer/internal/types"
	rootschemas "github.com/jonathan/party-optimizer/schemas"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Find the best guest lists and menus within a budget",
	Long: "Evaluates every guest list up to --max-guests, picks the most satisfying affordable " +
		"menu for each and ranks the parties by host happiness.",
	RunE: runOptimize,
}

var (
	optBudget    float64
	optMinGuests int
	optMaxGuests int
	optWeights   string
	optTop       int
	optWorkers   int
	optDetails   int
	optStats     bool
	optExport    string
	optSave      bool
)

func init() {
	optimizeCmd.Flags().Float64VarP(&optBudget, "budget", "b", 0, "Total budget in dollars (default from config)")
	optimizeCmd.Flags().IntVar(&optMinGuests, "min-guests", 0, "Smallest guest list to consider (default from config)")
	optimizeCmd.Flags().IntVarP(&optMaxGuests, "max-guests", "g", 0, "Largest guest list to consider (default from config, capped at friend count)")
	optimizeCmd.Flags().StringVarP(&optWeights, "weights", "w", "", "Satisfaction,savings,intimacy weights summing to 1, e.g. 0.4,0.2,0.4")
	optimizeCmd.Flags().IntVarP(&optTop, "top", "n", 0, "Number of recommendations to show (default from config)")
	optimizeCmd.Flags().IntVar(&optWorkers, "workers", 0, "Parallel workers; 0 uses one per CPU")
	optimizeCmd.Flags().IntVar(&optDetails, "details", 1, "Print a detailed summary for the top N parties")
	optimizeCmd.Flags().BoolVar(&optStats, "stats", false, "Print statistics over all viable parties")
	optimizeCmd.Flags().StringVarP(&optExport, "export", "o", "", "Write the shown recommendations to a JSON file")
	optimizeCmd.Flags().BoolVar(&optSave, "save", false, "Persist the run to PostgreSQL (needs --db-url)")

	rootCmd.AddCommand(optimizeCmd)
}

// parseWeights reads "s,c,i" into Weights; range checks happen in the optimizer
func parseWeights(s string) (types.Weights, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return types.Weights{}, fmt.Errorf("weights must have 3 comma-separated values, got %q", s)
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return types.Weights{}, fmt.Errorf("invalid weight %q: %w", p, err)
		}
		vals[i] = v
	}
	return types.Weights{Satisfaction: vals[0], Savings: vals[1], Intimacy: vals[2]}, nil
}

// optimizerConfig applies explicitly set flags over the configured defaults.
// An explicit --max-guests is not capped so that oversized requests are rejected.
func optimizerConfig(cmd *cobra.Command, numFriends int) (types.OptimizationConfig, int, error) {
	cfg := appCfg.OptimizerConfig(numFriends)
	topN := appCfg.Optimization.TopN

	flags := cmd.Flags()
	if flags.Changed("budget") {
		if err := config.CheckBudget(optBudget); err != nil {
			return cfg, 0, &optimizer.ConfigError{Field: "budget", Message: err.Error()}
		}
		cfg.Budget = optBudget
	}
	if flags.Changed("min-guests") {
		cfg.MinGuests = optMinGuests
	}
	if flags.Changed("max-guests") {
		cfg.MaxGuests = optMaxGuests
	}
	if flags.Changed("weights") {
		w, err := parseWeights(optWeights)
		if err != nil {
			return cfg, 0, err
		}
		cfg.Weights = w
	}
	if flags.Changed("workers") {
		cfg.Workers = optWorkers
	}
	if flags.Changed("top") {
		topN = optTop
	}
	return cfg, topN, nil
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	if optSave && appCfg.Database.URL == "" {
		return fmt.Errorf("--save requires a database URL (--db-url, PARTY_DATABASE_URL or DATABASE_URL)")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	snap := store.Snapshot()

	cfg, topN, err := optimizerConfig(cmd, len(snap.Friends))
	if err != nil {
		return err
	}

	start := time.Now()
	recs, err := optimizer.OptimizeContext(cmd.Context(), snap.Friends, snap.Foods, cfg)
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}
	elapsed := time.Since(start)
	logging.Info().Int("viable", len(recs)).Dur("duration", elapsed).Msg("optimization complete")

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Budget $%.2f, up to %d guests (at least %d), weights %.2f/%.2f/%.2f\n\n",
		cfg.Budget, cfg.MaxGuests, cfg.MinGuests, cfg.Weights.Satisfaction, cfg.Weights.Savings, cfg.Weights.Intimacy)

	p := printer(cmd)
	p.PrintRecommendations(recs, topN)
	shown := optimizer.Top(recs, topN)
	for i, r := range optimizer.Top(shown, optDetails) {
		_, _ = fmt.Fprintln(out)
		p.PrintRecommendation(i+1, r)
	}
	if optStats {
		_, _ = fmt.Fprintln(out)
		p.PrintStatistics(optimizer.Summarize(recs))
	}

	if optExport != "" {
		if err := exportRecommendations(optExport, cfg, len(recs), shown); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "\nExported %d recommendations to %s\n", len(shown), optExport)
	}

	if optSave {
		database, err := connectDB(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close()

		id, err := database.SaveRun(cmd.Context(), db.RunInput{
			Config:          cfg,
			NumFriends:      len(snap.Friends),
			NumFoods:        len(snap.Foods),
			Duration:        elapsed,
			Recommendations: shown,
		})
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Saved run %s\n", id)
	}
	return nil
}

type exportRecommendation struct {
	Rank              int      `json:"rank"`
	Guests            []string `json:"guests"`
	Menu              []string `json:"menu"`
	TotalCost         float64  `json:"total_cost"`
	TotalSatisfaction float64  `json:"total_satisfaction"`
	TotalIntimacy     int      `json:"total_intimacy"`
	CostSavings       float64  `json:"cost_savings"`
	Happiness         float64  `json:"happiness"`
}

type exportFile struct {
	GeneratedAt     string                   `json:"generated_at"`
	Config          types.OptimizationConfig `json:"config"`
	TotalViable     int                      `json:"total_viable"`
	Recommendations []exportRecommendation   `json:"recommendations"`
}

// exportRecommendations writes recs as JSON after checking them against the export schema
func exportRecommendations(path string, cfg types.OptimizationConfig, total int, recs []types.Recommendation) error {
	doc := exportFile{
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		Config:          cfg,
		TotalViable:     total,
		Recommendations: make([]exportRecommendation, len(recs)),
	}
	for i, r := range recs {
		doc.Recommendations[i] = exportRecommendation{
			Rank:              i + 1,
			Guests:            r.Guests,
			Menu:              r.Menu.Names(),
			TotalCost:         r.TotalCost,
			TotalSatisfaction: r.TotalSatisfaction,
			TotalIntimacy:     r.TotalIntimacy,
			CostSavings:       r.CostSavings,
			Happiness:         r.Happiness,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	schema, err := schemas.Compile("recommendations.schema.json", rootschemas.Recommendations)
	if err != nil {
		return err
	}
	if err := schema.Validate(data); err != nil {
		return fmt.Errorf("export failed validation: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
