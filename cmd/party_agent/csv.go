package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/party-optimizer/internal/catalog"
	"github.com/jonathan/party-optimizer/internal/csvio"
)

var importCSVCmd = &cobra.Command{
	Use:   "import-csv FILE",
	Short: "Import friends from a CSV file",
	Long: "Imports friends from CSV with columns Name,Intimacy,Dietary_Restrictions followed by one " +
		"column per food holding a 1-5 rating. Invalid rows are reported and skipped.",
	Args: cobra.ExactArgs(1),
	RunE: runImportCSV,
}

var exportCSVCmd = &cobra.Command{
	Use:   "export-csv FILE",
	Short: "Export friends to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportCSV,
}

var csvTemplateCmd = &cobra.Command{
	Use:   "csv-template FILE",
	Short: "Write an example friends CSV to fill in",
	Args:  cobra.ExactArgs(1),
	RunE:  runCSVTemplate,
}

var (
	importUpdate       bool
	importValidateOnly bool
	exportStats        bool
)

func init() {
	importCSVCmd.Flags().BoolVar(&importUpdate, "update", false, "Update friends that already exist instead of skipping them")
	importCSVCmd.Flags().BoolVar(&importValidateOnly, "validate-only", false, "Check the file format without importing")
	exportCSVCmd.Flags().BoolVar(&exportStats, "stats", false, "Append Total_Preferences and Avg_Preference columns")

	rootCmd.AddCommand(importCSVCmd, exportCSVCmd, csvTemplateCmd)
}

func runImportCSV(cmd *cobra.Command, args []string) error {
	path := args[0]

	if importValidateOnly {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()

		n, err := csvio.ValidateFormat(f)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s looks valid (%d sample rows checked)\n", path, n)
		return nil
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	stats, err := csvio.ImportFriendsFile(path, store, csvio.ImportOptions{UpdateExisting: importUpdate})
	if err != nil {
		return err
	}
	printer(cmd).PrintImportStats(stats)
	return nil
}

// catalogFoodNames lists food names from the store, falling back to the default menu
func catalogFoodNames(store *catalog.Store) []string {
	snap := store.Snapshot()
	if len(snap.Foods) > 0 {
		return snap.FoodNames()
	}
	names := make([]string, 0, len(catalog.DefaultFoods()))
	for _, f := range catalog.DefaultFoods() {
		names = append(names, f.Name)
	}
	return names
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	friends := store.ListFriends()
	if len(friends) == 0 {
		return fmt.Errorf("no friends to export")
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", args[0], err)
	}
	defer f.Close()

	cols := csvio.FoodColumns(friends, store.Snapshot().FoodNames())
	n, err := csvio.ExportFriends(f, friends, cols, csvio.ExportOptions{IncludeStats: exportStats})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d friends to %s\n", n, args[0])
	return nil
}

func runCSVTemplate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", args[0], err)
	}
	defer f.Close()

	if err := csvio.WriteTemplate(f, catalogFoodNames(store)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote CSV template to %s\n", args[0])
	return nil
}
