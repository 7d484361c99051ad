package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendsCommands(t *testing.T) {
	dataDir := t.TempDir()

	out := mustRun(t, dataDir, "friends", "add", "--name", "Ann", "--intimacy", "9",
		"--prefs", "Chips=5, Soda=2", "--restrictions", "vegan, halal")
	assert.Contains(t, out, "Added friend Ann (intimacy 9, 2 ratings)")

	_, err := executeCommand(t, "friends", "add", "--name", "ann", "--data-dir", dataDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out = mustRun(t, dataDir, "friends", "add", "--name", "ann", "--intimacy", "3", "--replace")
	assert.Contains(t, out, "Updated friend ann")

	out = mustRun(t, dataDir, "friends", "list")
	assert.Contains(t, out, "Total: 1 friends")

	mustRun(t, dataDir, "friends", "add", "--name", "Bob")
	out = mustRun(t, dataDir, "friends", "delete", "Bob")
	assert.Contains(t, out, "Deleted friend Bob")

	_, err = executeCommand(t, "friends", "delete", "Bob", "--data-dir", dataDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = executeCommand(t, "friends", "clear", "--data-dir", dataDir)
	require.Error(t, err)
	out = mustRun(t, dataDir, "friends", "clear", "--yes")
	assert.Contains(t, out, "Deleted 1 friends")

	out = mustRun(t, dataDir, "friends", "list")
	assert.Contains(t, out, "No friends available")
}

func TestFriendsAdd_Invalid(t *testing.T) {
	dataDir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"missing name", []string{"friends", "add", "--intimacy", "4"}},
		{"intimacy out of range", []string{"friends", "add", "--name", "Zed", "--intimacy", "11"}},
		{"rating out of range", []string{"friends", "add", "--name", "Zed", "--prefs", "Chips=6"}},
		{"malformed prefs", []string{"friends", "add", "--name", "Zed", "--prefs", "Chips"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, append(tt.args, "--data-dir", dataDir)...)
			assert.Error(t, err)
		})
	}
}

func TestFoodsCommands(t *testing.T) {
	dataDir := t.TempDir()

	out := mustRun(t, dataDir, "foods", "seed")
	assert.Contains(t, out, "Seeded 8 food items (8 total)")
	out = mustRun(t, dataDir, "foods", "seed")
	assert.Contains(t, out, "Seeded 0 food items (8 total)")

	out = mustRun(t, dataDir, "foods", "add", "--name", "Lemonade", "--cost", "1.5", "--category", "Drink", "--tags", "vegan")
	assert.Contains(t, out, "Added drink Lemonade ($1.50 per guest)")

	out = mustRun(t, dataDir, "foods", "list", "--category", "drink")
	assert.Contains(t, out, "Lemonade")
	assert.Contains(t, out, "Tea")
	assert.NotContains(t, out, "Chips")
	assert.Contains(t, out, "Total: 4 items")

	_, err := executeCommand(t, "foods", "add", "--name", "Salad", "--cost", "3", "--category", "appetizer", "--data-dir", dataDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")

	out = mustRun(t, dataDir, "foods", "delete", "Tea")
	assert.Contains(t, out, "Deleted food Tea")
	out = mustRun(t, dataDir, "foods", "list")
	assert.Contains(t, out, "Total: 8 items")
}

func TestParsePreferences(t *testing.T) {
	prefs, err := parsePreferences(" Fried Chicken = 5 ,Soda=1,")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Fried Chicken": 5, "Soda": 1}, prefs)

	prefs, err = parsePreferences("")
	require.NoError(t, err)
	assert.Empty(t, prefs)

	_, err = parsePreferences("Soda=great")
	assert.Error(t, err)
}
