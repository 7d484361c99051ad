package csvio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/party-optimizer/internal/catalog"
	"github.com/jonathan/party-optimizer/internal/logging"
	"github.com/jonathan/party-optimizer/internal/types"
)

// FriendStore is the subset of the catalog store an import writes to
type FriendStore interface {
	AddFriend(types.Friend) error
	UpdateFriend(types.Friend) error
}

// ImportOptions controls how rows that name an existing friend are handled
type ImportOptions struct {
	UpdateExisting bool
}

// ImportStats summarizes an import
type ImportStats struct {
	TotalRows  int            `json:"total_rows"`
	Successful int            `json:"successful"`
	Updated    int            `json:"updated"`
	Failed     int            `json:"failed"`
	Errors     []*ImportError `json:"errors,omitempty"`
}

// ErrorMessages flattens Errors for display
func (s *ImportStats) ErrorMessages() []string {
	out := make([]string, len(s.Errors))
	for i, e := range s.Errors {
		out[i] = e.Error()
	}
	return out
}

// ImportFriends reads friends from r and writes them into store
func ImportFriends(r io.Reader, store FriendStore, opts ImportOptions) (*ImportStats, error) {
	records, rowErrs, err := ReadFriends(r)
	if err != nil {
		return nil, err
	}

	stats := &ImportStats{
		TotalRows: len(records) + len(rowErrs),
		Failed:    len(rowErrs),
		Errors:    rowErrs,
	}

	for _, rec := range records {
		f := rec.Friend
		err := store.AddFriend(f)
		switch {
		case err == nil:
			stats.Successful++
		case errors.Is(err, catalog.ErrDuplicate) && opts.UpdateExisting:
			if uErr := store.UpdateFriend(f); uErr != nil {
				stats.Failed++
				stats.Errors = append(stats.Errors, &ImportError{Row: rec.Line, Name: f.Name, Message: uErr.Error()})
				continue
			}
			stats.Updated++
		case errors.Is(err, catalog.ErrDuplicate):
			stats.Failed++
			stats.Errors = append(stats.Errors, &ImportError{Row: rec.Line, Name: f.Name, Message: "already exists (skipped)"})
		default:
			stats.Failed++
			stats.Errors = append(stats.Errors, &ImportError{Row: rec.Line, Name: f.Name, Message: err.Error()})
		}
	}

	logging.Info().
		Int("rows", stats.TotalRows).
		Int("added", stats.Successful).
		Int("updated", stats.Updated).
		Int("failed", stats.Failed).
		Msg("friends imported")

	return stats, nil
}

// ImportFriendsFile opens path and runs ImportFriends
func ImportFriendsFile(path string, store FriendStore, opts ImportOptions) (*ImportStats, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("CSV file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ImportFriends(f, store, opts)
}
