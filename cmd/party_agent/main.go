// Package main provides the party_agent CLI for planning budget-constrained house parties.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/party-optimizer/internal/catalog"
	"github.com/jonathan/party-optimizer/internal/config"
	"github.com/jonathan/party-optimizer/internal/db"
	"github.com/jonathan/party-optimizer/internal/logging"
	"github.com/jonathan/party-optimizer/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:   "party_agent",
	Short: "House party optimizer",
	Long: "party_agent recommends a guest list and menu for a budget-constrained house party " +
		"by jointly optimizing guest satisfaction, cost savings and intimacy.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadAppConfig,
}

var (
	configPath string
	dataDir    string
	dbURL      string
	logLevel   string
	logFormat  string

	appCfg *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding friends.json and foods.json")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json")
}

// loadAppConfig layers persistent flags over file and environment settings
func loadAppConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	overlay := config.Config{
		Data:     config.DataConfig{Dir: dataDir},
		Database: config.DatabaseConfig{URL: dbURL},
		Logging:  config.LoggingConfig{Level: logLevel, Format: logFormat},
	}
	overlay.Optimization.Workers = loaded.Optimization.Workers
	merged := overlay.MergeWithDefaults(*loaded)
	if err := merged.Validate(); err != nil {
		return err
	}
	appCfg = &merged

	logging.Init(logging.Config{
		Level:  appCfg.Logging.Level,
		Format: appCfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	return nil
}

// openStore opens the JSON catalog under the configured data directory
func openStore() (*catalog.Store, error) {
	store, err := catalog.Open(appCfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return store, nil
}

// connectDB connects to PostgreSQL and applies the schema
func connectDB(ctx context.Context) (*db.DB, error) {
	if appCfg.Database.URL == "" {
		return nil, fmt.Errorf("database URL is required (--db-url, PARTY_DATABASE_URL or DATABASE_URL)")
	}
	database, err := db.Connect(ctx, appCfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}

func printer(cmd *cobra.Command) *observability.Printer {
	return observability.NewPrinter(cmd.OutOrStdout())
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
