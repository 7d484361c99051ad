package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/party-optimizer/internal/types"
)

var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "Manage the friend catalog",
}

var friendsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all friends",
	Args:  cobra.NoArgs,
	RunE:  runFriendsList,
}

var friendsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a friend",
	Args:  cobra.NoArgs,
	RunE:  runFriendsAdd,
}

var friendsDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a friend by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runFriendsDelete,
}

var friendsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every friend",
	Args:  cobra.NoArgs,
	RunE:  runFriendsClear,
}

var (
	friendName         string
	friendIntimacy     int
	friendPrefs        string
	friendRestrictions string
	friendReplace      bool
	friendsClearYes    bool
)

func init() {
	friendsAddCmd.Flags().StringVar(&friendName, "name", "", "Friend name (required)")
	friendsAddCmd.Flags().IntVar(&friendIntimacy, "intimacy", 5, "Closeness from 1 to 10")
	friendsAddCmd.Flags().StringVar(&friendPrefs, "prefs", "", "Food ratings from 1 to 5, e.g. \"Chips=4,Soda=5\"")
	friendsAddCmd.Flags().StringVar(&friendRestrictions, "restrictions", "", "Comma-separated dietary restrictions")
	friendsAddCmd.Flags().BoolVar(&friendReplace, "replace", false, "Replace an existing friend with the same name")
	if err := friendsAddCmd.MarkFlagRequired("name"); err != nil {
		panic(fmt.Sprintf("failed to mark name flag as required: %v", err))
	}

	friendsClearCmd.Flags().BoolVar(&friendsClearYes, "yes", false, "Confirm deleting every friend")

	friendsCmd.AddCommand(friendsListCmd, friendsAddCmd, friendsDeleteCmd, friendsClearCmd)
	rootCmd.AddCommand(friendsCmd)
}

// parsePreferences reads "Food=rating" pairs separated by commas
func parsePreferences(s string) (map[string]int, error) {
	prefs := make(map[string]int)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		food, rating, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid preference %q, want Food=rating", pair)
		}
		v, err := strconv.Atoi(strings.TrimSpace(rating))
		if err != nil {
			return nil, fmt.Errorf("invalid rating for %q: %w", food, err)
		}
		prefs[strings.TrimSpace(food)] = v
	}
	return prefs, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func runFriendsList(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	printer(cmd).PrintFriends(store.ListFriends())
	return nil
}

func runFriendsAdd(cmd *cobra.Command, _ []string) error {
	prefs, err := parsePreferences(friendPrefs)
	if err != nil {
		return err
	}
	f := types.Friend{
		Name:                friendName,
		Intimacy:            friendIntimacy,
		Preferences:         prefs,
		DietaryRestrictions: splitList(friendRestrictions),
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	verb := "Added"
	if friendReplace {
		replaced, err := store.UpsertFriend(f)
		if err != nil {
			return err
		}
		if replaced {
			verb = "Updated"
		}
	} else if err := store.AddFriend(f); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s friend %s (intimacy %d, %d ratings)\n",
		verb, strings.TrimSpace(f.Name), f.Intimacy, len(f.Preferences))
	return nil
}

func runFriendsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.DeleteFriend(args[0]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted friend %s\n", args[0])
	return nil
}

func runFriendsClear(cmd *cobra.Command, _ []string) error {
	if !friendsClearYes {
		return fmt.Errorf("refusing to delete every friend without --yes")
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	n, err := store.ClearFriends()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d friends\n", n)
	return nil
}
