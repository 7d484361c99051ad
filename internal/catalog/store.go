// Package catalog persists friends and foods as JSON files in a data directory.
// Names are unique per collection, compared case-insensitively.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	rootschemas "github.com/jonathan/party-optimizer/schemas"

	"github.com/jonathan/party-optimizer/internal/logging"
	"github.com/jonathan/party-optimizer/internal/schemas"
	"github.com/jonathan/party-optimizer/internal/types"
)

const (
	FriendsFile = "friends.json"
	FoodsFile   = "foods.json"
)

// Store is a file-backed repository for the friend and food catalogs.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	dir     string
	friends *table[types.Friend]
	foods   *table[types.Food]
}

// Open loads (or initializes) the catalog files under dir
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	friendsSchema, err := schemas.Compile("friends.schema.json", rootschemas.Friends)
	if err != nil {
		return nil, err
	}
	foodsSchema, err := schemas.Compile("foods.schema.json", rootschemas.Foods)
	if err != nil {
		return nil, err
	}

	s := &Store{
		dir: dir,
		friends: &table[types.Friend]{
			kind:   "friend",
			path:   filepath.Join(dir, FriendsFile),
			root:   "friends",
			schema: friendsSchema,
			name:   func(f types.Friend) string { return f.Name },
			clone:  func(f types.Friend) types.Friend { return f.Clone() },
		},
		foods: &table[types.Food]{
			kind:   "food",
			path:   filepath.Join(dir, FoodsFile),
			root:   "foods",
			schema: foodsSchema,
			name:   func(f types.Food) string { return f.Name },
			clone:  cloneFood,
		},
	}

	if err := s.friends.load(); err != nil {
		return nil, err
	}
	if err := s.foods.load(); err != nil {
		return nil, err
	}

	logging.Debug().
		Str("dir", dir).
		Int("friends", len(s.friends.rows)).
		Int("foods", len(s.foods.rows)).
		Msg("catalog loaded")

	return s, nil
}

// Dir returns the data directory
func (s *Store) Dir() string {
	return s.dir
}

// Reload re-reads both files from disk
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.friends.load(); err != nil {
		return err
	}
	return s.foods.load()
}

func cloneFood(f types.Food) types.Food {
	if f.Tags != nil {
		f.Tags = append([]string(nil), f.Tags...)
	}
	return f
}

func normalizeFriend(f types.Friend) (types.Friend, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Preferences == nil {
		f.Preferences = map[string]int{}
	}
	if err := f.Validate(); err != nil {
		return f, fmt.Errorf("invalid friend %q: %w", f.Name, err)
	}
	return f, nil
}

func normalizeFood(f types.Food) (types.Food, error) {
	f.Name = strings.TrimSpace(f.Name)
	if err := f.Validate(); err != nil {
		return f, fmt.Errorf("invalid food %q: %w", f.Name, err)
	}
	return f, nil
}

// AddFriend stores a new friend. Returns *DuplicateError when the name exists.
func (s *Store) AddFriend(f types.Friend) error {
	f, err := normalizeFriend(f)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.friends.add(f)
}

// UpsertFriend adds or replaces a friend and reports whether one was replaced
func (s *Store) UpsertFriend(f types.Friend) (bool, error) {
	f, err := normalizeFriend(f)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.friends.upsert(f)
}

func (s *Store) GetFriend(name string) (types.Friend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.friends.get(name)
}

// ListFriends returns copies in insertion order
func (s *Store) ListFriends() []types.Friend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.friends.list()
}

func (s *Store) UpdateFriend(f types.Friend) error {
	f, err := normalizeFriend(f)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.friends.update(f)
}

func (s *Store) DeleteFriend(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.friends.remove(name)
}

func (s *Store) CountFriends() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.friends.rows)
}

// ClearFriends removes every friend and returns how many were removed
func (s *Store) ClearFriends() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.friends.clear()
}

// AddFood stores a new food. Returns *DuplicateError when the name exists.
func (s *Store) AddFood(f types.Food) error {
	f, err := normalizeFood(f)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.foods.add(f)
}

func (s *Store) GetFood(name string) (types.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.foods.get(name)
}

func (s *Store) ListFoods() []types.Food {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.foods.list()
}

// FoodsByCategory returns the foods in one category, in catalog order
func (s *Store) FoodsByCategory(c types.Category) []types.Food {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []types.Food
	for _, f := range s.foods.rows {
		if f.Category == c {
			out = append(out, cloneFood(f))
		}
	}
	return out
}

func (s *Store) UpdateFood(f types.Food) error {
	f, err := normalizeFood(f)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.foods.update(f)
}

func (s *Store) DeleteFood(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.foods.remove(name)
}

func (s *Store) CountFoods() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.foods.rows)
}

func (s *Store) ClearFoods() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.foods.clear()
}

// SeedDefaultFoods adds any default food missing from the catalog and returns how
// many were added
func (s *Store) SeedDefaultFoods() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, f := range DefaultFoods() {
		if s.foods.index(f.Name) >= 0 {
			continue
		}
		if err := s.foods.add(f); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// Snapshot returns a deep copy of both catalogs for one optimization run
func (s *Store) Snapshot() types.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return types.Catalog{
		Friends: s.friends.list(),
		Foods:   s.foods.list(),
	}
}
