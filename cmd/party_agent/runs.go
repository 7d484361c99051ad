package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/party-optimizer/internal/db"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect optimization runs persisted in PostgreSQL",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show RUN_ID",
	Short: "Show a run and its recommendations",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete RUN_ID",
	Short: "Delete a run and its recommendations",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

var (
	runsLimit     int
	runsShowLimit int
)

func init() {
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")
	runsShowCmd.Flags().IntVar(&runsShowLimit, "top", 0, "Only show the first N recommendations (0 for all)")

	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}

func parseRunID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid run ID %q: %w", s, err)
	}
	return id, nil
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	database, err := connectDB(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}
	printer(cmd).PrintRuns(runs)
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}
	database, err := connectDB(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	run, err := database.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", id)
	}

	recs := run.Recommendations
	if runsShowLimit > 0 {
		if recs, err = database.GetRecommendations(cmd.Context(), id, runsShowLimit); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	p := printer(cmd)
	p.PrintRuns([]db.Run{run.Run})
	for _, r := range recs {
		_, _ = fmt.Fprintln(out)
		p.PrintRecommendation(r.Rank, r.Recommendation)
	}
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}
	database, err := connectDB(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	deleted, err := database.DeleteRun(cmd.Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("run %s not found", id)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", id)
	return nil
}
