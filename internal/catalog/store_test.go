package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/party-optimizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	return s
}

func tom() types.Friend {
	return types.Friend{Name: "Tom", Intimacy: 7, Preferences: map[string]int{"Chips": 4, "Soda": 5}}
}

func TestOpen_EmptyDirectory(t *testing.T) {
	s := openTemp(t)
	assert.Equal(t, 0, s.CountFriends())
	assert.Equal(t, 0, s.CountFoods())
	assert.Empty(t, s.Snapshot().Friends)
}

func TestFriends_CRUD(t *testing.T) {
	s := openTemp(t)

	require.NoError(t, s.AddFriend(tom()))
	assert.Equal(t, 1, s.CountFriends())

	got, err := s.GetFriend("tom")
	require.NoError(t, err)
	assert.Equal(t, "Tom", got.Name)
	assert.Equal(t, 5, got.Preference("Soda"))

	updated := tom()
	updated.Name = "TOM"
	updated.Intimacy = 10
	require.NoError(t, s.UpdateFriend(updated))
	got, err = s.GetFriend("Tom")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Intimacy)

	require.NoError(t, s.DeleteFriend("tOm"))
	assert.Equal(t, 0, s.CountFriends())

	_, err = s.GetFriend("Tom")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFriends_DuplicateIsCaseInsensitive(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.AddFriend(tom()))

	dup := tom()
	dup.Name = "  tom "
	err := s.AddFriend(dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)

	var dupErr *DuplicateError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "friend", dupErr.Kind)
	assert.Equal(t, 1, s.CountFriends())
}

func TestFriends_Validation(t *testing.T) {
	s := openTemp(t)

	bad := tom()
	bad.Intimacy = 11
	assert.Error(t, s.AddFriend(bad))

	bad = tom()
	bad.Preferences["Chips"] = 0
	assert.Error(t, s.AddFriend(bad))

	assert.Error(t, s.AddFriend(types.Friend{Name: "  ", Intimacy: 5}))
	assert.Equal(t, 0, s.CountFriends())
}

func TestFriends_UpsertAndMissingUpdate(t *testing.T) {
	s := openTemp(t)

	replaced, err := s.UpsertFriend(tom())
	require.NoError(t, err)
	assert.False(t, replaced)

	again := tom()
	again.Intimacy = 2
	replaced, err = s.UpsertFriend(again)
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, 1, s.CountFriends())

	err = s.UpdateFriend(types.Friend{Name: "Nobody", Intimacy: 3})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteFriend("Nobody"), ErrNotFound)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.AddFriend(tom()))
	require.NoError(t, s.AddFriend(types.Friend{Name: "Ann", Intimacy: 3}))
	added, err := s.SeedDefaultFoods()
	require.NoError(t, err)
	assert.Equal(t, 8, added)

	reopened, err := Open(dir)
	require.NoError(t, err)

	names := []string{}
	for _, f := range reopened.ListFriends() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Tom", "Ann"}, names, "insertion order survives")
	assert.Equal(t, 8, reopened.CountFoods())

	food, err := reopened.GetFood("chips")
	require.NoError(t, err)
	assert.Equal(t, 2.99, food.Cost)
	assert.Equal(t, types.CategorySnack, food.Category)
}

func TestSeedDefaultFoods_Idempotent(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.AddFood(types.Food{Name: "soda", Cost: 1.50, Category: types.CategoryDrink}))

	added, err := s.SeedDefaultFoods()
	require.NoError(t, err)
	assert.Equal(t, 7, added)

	added, err = s.SeedDefaultFoods()
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	soda, err := s.GetFood("Soda")
	require.NoError(t, err)
	assert.Equal(t, 1.50, soda.Cost, "existing entry is not overwritten")
}

func TestFoods_CategoryAndValidation(t *testing.T) {
	s := openTemp(t)
	_, err := s.SeedDefaultFoods()
	require.NoError(t, err)

	drinks := s.FoodsByCategory(types.CategoryDrink)
	require.Len(t, drinks, 3)
	assert.Equal(t, "Soda", drinks[0].Name)

	assert.Error(t, s.AddFood(types.Food{Name: "Pizza", Cost: -1, Category: types.CategoryMain}))
	assert.Error(t, s.AddFood(types.Food{Name: "Pizza", Cost: 1, Category: "beverage"}))

	require.NoError(t, s.UpdateFood(types.Food{Name: "tea", Cost: 0.5, Category: types.CategoryDrink}))
	tea, err := s.GetFood("Tea")
	require.NoError(t, err)
	assert.Equal(t, 0.5, tea.Cost)

	require.NoError(t, s.DeleteFood("Tea"))
	assert.Equal(t, 7, s.CountFoods())

	n, err := s.ClearFoods()
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, 0, s.CountFoods())
}

func TestSnapshot_IsIsolated(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.AddFriend(tom()))

	snap := s.Snapshot()
	snap.Friends[0].Preferences["Chips"] = 1
	snap.Friends[0].Name = "Changed"

	got, err := s.GetFriend("Tom")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Preference("Chips"))
}

func TestOpen_RejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FriendsFile),
		[]byte(`{"friends": [{"name": "Tom", "intimacy": 42}]}`), 0644))

	_, err := Open(dir)
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Message, "schema")
}

func TestOpen_RejectsDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FoodsFile), []byte(`{"foods": [
		{"name": "Chips", "cost": 1, "category": "snack"},
		{"name": "CHIPS", "cost": 2, "category": "snack"}
	]}`), 0644))

	_, err := Open(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate food")
}

func TestClearFriends(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.AddFriend(tom()))
	require.NoError(t, s.AddFriend(types.Friend{Name: "Ann", Intimacy: 1}))

	n, err := s.ClearFriends()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, s.Reload())
	assert.Equal(t, 0, s.CountFriends())
}
