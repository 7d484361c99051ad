package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/jonathan/party-optimizer/internal/analysis"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report statistics about friends and foods",
	Args:  cobra.NoArgs,
	RunE:  runAnalyze,
}

var (
	analyzeFoods   bool
	analyzeMatrix  bool
	analyzeRatings bool
	analyzeJSON    bool
)

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeFoods, "foods", false, "Include the per-food value table")
	analyzeCmd.Flags().BoolVar(&analyzeMatrix, "matrix", false, "Include the friend x food preference matrix")
	analyzeCmd.Flags().BoolVar(&analyzeRatings, "ratings", false, "Include rating spread per food name")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the report as JSON")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	snap := store.Snapshot()
	report := analysis.BuildReport(snap)
	out := cmd.OutOrStdout()

	if analyzeJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}

	p := printer(cmd)
	p.PrintReport(report)

	if analyzeFoods && len(report.Foods) > 0 {
		_, _ = fmt.Fprintln(out)
		p.PrintFoodAnalysis(report.Foods)
	}
	if analyzeRatings && len(snap.Friends) > 0 {
		_, _ = fmt.Fprintln(out)
		p.PrintRatingDistribution(analysis.RatingDistribution(snap.Friends))
	}
	if analyzeMatrix && len(snap.Friends) > 0 {
		_, _ = fmt.Fprintln(out)
		p.PrintMatrix(analysis.PreferenceMatrix(snap.Friends))
	}
	return nil
}
