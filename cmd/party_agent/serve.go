package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/party-optimizer/internal/logging"
	"github.com/jonathan/party-optimizer/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: "Start an HTTP server exposing the catalog and optimizer. Runs are persisted when a " +
		"database URL is configured.",
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("port") {
		appCfg.Server.Port = servePort
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	logging.Info().Str("data_dir", store.Dir()).Int("friends", store.CountFriends()).
		Int("foods", store.CountFoods()).Msg("catalog loaded")

	var runs server.RunRecorder
	if appCfg.Database.URL != "" {
		database, err := connectDB(cmd.Context())
		if err != nil {
			return err
		}
		defer database.Close()
		runs = database
	} else {
		logging.Warn().Msg("no database configured; run persistence disabled")
	}

	return server.New(appCfg, store, runs).Start(cmd.Context())
}
