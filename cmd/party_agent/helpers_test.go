package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so state does not leak between runs
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the CLI in-process and returns combined output
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PARTY_DATABASE_URL", "")
	t.Setenv("CONFIG_PATH", "")

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

// mustRun executes args against dataDir and fails the test on error
func mustRun(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := executeCommand(t, append(args, "--data-dir", dataDir)...)
	require.NoError(t, err, out)
	return out
}

// seedScenario stores three friends and three foods with a known best party
func seedScenario(t *testing.T, dataDir string) {
	t.Helper()
	mustRun(t, dataDir, "foods", "add", "--name", "Chips", "--cost", "2.99", "--category", "snack")
	mustRun(t, dataDir, "foods", "add", "--name", "Candy", "--cost", "0.99", "--category", "dessert")
	mustRun(t, dataDir, "foods", "add", "--name", "Soda", "--cost", "2.49", "--category", "drink")
	mustRun(t, dataDir, "friends", "add", "--name", "Tom", "--intimacy", "7", "--prefs", "Chips=4,Candy=3,Soda=4")
	mustRun(t, dataDir, "friends", "add", "--name", "Bob", "--intimacy", "8", "--prefs", "Chips=3,Candy=4,Soda=4")
	mustRun(t, dataDir, "friends", "add", "--name", "Mike", "--intimacy", "9", "--prefs", "Chips=4,Candy=3,Soda=4")
}
