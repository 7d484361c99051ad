package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Synchronize the catalog with PostgreSQL",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE:  runDBMigrate,
}

var dbPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upsert every local friend and food into the database",
	Args:  cobra.NoArgs,
	RunE:  runDBPush,
}

var dbPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Upsert every database friend and food into the local catalog",
	Args:  cobra.NoArgs,
	RunE:  runDBPull,
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd, dbPushCmd, dbPullCmd)
	rootCmd.AddCommand(dbCmd)
}

func runDBMigrate(cmd *cobra.Command, _ []string) error {
	database, err := connectDB(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date")
	return nil
}

func runDBPush(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	database, err := connectDB(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	snap := store.Snapshot()
	if err := database.SyncCatalog(cmd.Context(), snap); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d friends and %d foods\n", len(snap.Friends), len(snap.Foods))
	return nil
}

func runDBPull(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	database, err := connectDB(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	remote, err := database.LoadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	for _, f := range remote.Foods {
		if _, err := store.GetFood(f.Name); err == nil {
			if err := store.UpdateFood(f); err != nil {
				return err
			}
			continue
		}
		if err := store.AddFood(f); err != nil {
			return err
		}
	}
	for _, f := range remote.Friends {
		if _, err := store.UpsertFriend(f); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d friends and %d foods\n", len(remote.Friends), len(remote.Foods))
	return nil
}
