package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/party-optimizer/internal/types"
)

func TestOptimizeCommand_WorkedScenario(t *testing.T) {
	dataDir := t.TempDir()
	seedScenario(t, dataDir)
	exportPath := filepath.Join(t.TempDir(), "out", "recs.json")

	out := mustRun(t, dataDir, "optimize",
		"--budget", "50", "--max-guests", "3", "--weights", "0.4,0.2,0.4",
		"--top", "7", "--details", "0", "--stats", "--export", exportPath)

	assert.Contains(t, out, "Budget $50.00, up to 3 guests")
	assert.Contains(t, out, "Tom, Bob, Mike")
	assert.Contains(t, out, "OPTIMIZATION STATISTICS")
	assert.Contains(t, out, "Exported 7 recommendations")
	assert.NotContains(t, out, "RECOMMENDATION #1")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)

	var doc exportFile
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 7, doc.TotalViable)
	require.Len(t, doc.Recommendations, 7)
	assert.Equal(t, 1, doc.Recommendations[0].Rank)
	assert.InDelta(t, 50.0, doc.Config.Budget, 1e-9)

	var found bool
	for _, r := range doc.Recommendations {
		if assert.ObjectsAreEqual([]string{"Tom", "Bob", "Mike"}, r.Guests) {
			found = true
			assert.Equal(t, []string{"Chips", "Candy", "Soda"}, r.Menu)
			assert.InDelta(t, 19.41, r.TotalCost, 1e-9)
			assert.InDelta(t, 33.0, r.TotalSatisfaction, 1e-9)
			assert.Equal(t, 24, r.TotalIntimacy)
			assert.InDelta(t, 3.0385, r.Happiness, 1e-3)
		}
	}
	assert.True(t, found)
}

func TestOptimizeCommand_DefaultsAndDetails(t *testing.T) {
	dataDir := t.TempDir()
	seedScenario(t, dataDir)

	// default max guests (8) is capped at the three stored friends
	out := mustRun(t, dataDir, "optimize", "--budget", "50", "--details", "2")
	assert.Contains(t, out, "up to 3 guests")
	assert.Contains(t, out, "RECOMMENDATION #1")
	assert.Contains(t, out, "RECOMMENDATION #2")
	assert.NotContains(t, out, "RECOMMENDATION #3")
	assert.Contains(t, out, "... and 2 more viable parties")
}

func TestOptimizeCommand_MinGuests(t *testing.T) {
	dataDir := t.TempDir()
	seedScenario(t, dataDir)
	exportPath := filepath.Join(t.TempDir(), "recs.json")

	out := mustRun(t, dataDir, "optimize", "--budget", "50", "--min-guests", "2",
		"--top", "10", "--details", "0", "--export", exportPath)
	assert.Contains(t, out, "up to 3 guests (at least 2)")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)

	var doc exportFile
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 4, doc.TotalViable)
	assert.Equal(t, 2, doc.Config.MinGuests)
	for _, r := range doc.Recommendations {
		assert.GreaterOrEqual(t, len(r.Guests), 2)
	}
}

func TestOptimizeCommand_NoViableParty(t *testing.T) {
	dataDir := t.TempDir()
	seedScenario(t, dataDir)

	out := mustRun(t, dataDir, "optimize", "--budget", "2.5")
	assert.Contains(t, out, "No viable party found")
}

func TestOptimizeCommand_Errors(t *testing.T) {
	dataDir := t.TempDir()
	seedScenario(t, dataDir)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"max guests above friend count", []string{"--max-guests", "4"}, "invalid configuration"},
		{"weights not summing to one", []string{"--weights", "0.4,0.1,0.4"}, "invalid configuration"},
		{"malformed weights", []string{"--weights", "0.5,0.5"}, "3 comma-separated values"},
		{"negative budget", []string{"--budget", "-1"}, "invalid configuration"},
		{"budget above range", []string{"--budget", "20000"}, "invalid configuration"},
		{"min guests above max", []string{"--min-guests", "4"}, "min_guests"},
		{"min guests zero", []string{"--min-guests", "0"}, "min_guests"},
		{"save without database", []string{"--save"}, "requires a database URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"optimize", "--data-dir", dataDir}, tt.args...)
			_, err := executeCommand(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOptimizeCommand_EmptyCatalog(t *testing.T) {
	_, err := executeCommand(t, "optimize", "--data-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty catalog")
}

func TestParseWeights(t *testing.T) {
	w, err := parseWeights("0.5, 0.25,0.25")
	require.NoError(t, err)
	assert.Equal(t, types.Weights{Satisfaction: 0.5, Savings: 0.25, Intimacy: 0.25}, w)

	_, err = parseWeights("a,b,c")
	assert.Error(t, err)
	_, err = parseWeights("1")
	assert.Error(t, err)
}
