package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/party-optimizer/internal/catalog"
	"github.com/jonathan/party-optimizer/internal/config"
	"github.com/jonathan/party-optimizer/internal/db"
	"github.com/jonathan/party-optimizer/internal/types"
)

// mockRuns records SaveRun calls instead of writing to PostgreSQL
type mockRuns struct {
	saved []db.RunInput
	id    uuid.UUID
}

func (m *mockRuns) SaveRun(_ context.Context, in db.RunInput) (uuid.UUID, error) {
	m.saved = append(m.saved, in)
	return m.id, nil
}

func newTestServer(t *testing.T, runs RunRecorder) (*Server, *catalog.Store) {
	t.Helper()
	store, err := catalog.Open(t.TempDir())
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Server.RateLimitReqs = 0
	return New(cfg, store, runs), store
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func scenarioRequest() map[string]any {
	return map[string]any{
		"budget":     50,
		"max_guests": 3,
		"top_n":      -1,
		"weights":    map[string]float64{"satisfaction": 0.4, "savings": 0.2, "intimacy": 0.4},
		"friends": []types.Friend{
			{Name: "Tom", Intimacy: 7, Preferences: map[string]int{"Chips": 4, "Candy": 3, "Soda": 4}},
			{Name: "Bob", Intimacy: 8, Preferences: map[string]int{"Chips": 3, "Candy": 4, "Soda": 4}},
			{Name: "Mike", Intimacy: 9, Preferences: map[string]int{"Chips": 4, "Candy": 3, "Soda": 4}},
		},
		"foods": []types.Food{
			{Name: "Chips", Cost: 2.99, Category: types.CategorySnack},
			{Name: "Candy", Cost: 0.99, Category: types.CategoryDessert},
			{Name: "Soda", Cost: 2.49, Category: types.CategoryDrink},
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	s, store := newTestServer(t, nil)
	_, err := store.SeedDefaultFoods()
	require.NoError(t, err)

	w := doRequest(t, s.Handler(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.EqualValues(t, 0, resp["friends"])
	assert.EqualValues(t, 8, resp["foods"])
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, nil)

	doRequest(t, s.Handler(), http.MethodGet, "/health", nil)
	w := doRequest(t, s.Handler(), http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "party_api_requests_total")
}

func TestFriendsCRUD(t *testing.T) {
	s, store := newTestServer(t, nil)
	h := s.Handler()

	friend := types.Friend{Name: "Ann Lee", Intimacy: 9, Preferences: map[string]int{"Chips": 5}}
	w := doRequest(t, h, http.MethodPost, "/friends", friend)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created types.Friend
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Ann Lee", created.Name)
	assert.Equal(t, 1, store.CountFriends())

	// duplicate, case-insensitive
	w = doRequest(t, h, http.MethodPost, "/friends", types.Friend{Name: "ann lee", Intimacy: 3})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, h, http.MethodGet, "/friends/Ann%20Lee", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, h, http.MethodGet, "/friends", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Friends []types.Friend `json:"friends"`
		Count   int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)

	w = doRequest(t, h, http.MethodDelete, "/friends/Ann%20Lee", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, store.CountFriends())

	w = doRequest(t, h, http.MethodDelete, "/friends/Ann%20Lee", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateFriend_Invalid(t *testing.T) {
	s, _ := newTestServer(t, nil)
	h := s.Handler()

	tests := []struct {
		name string
		body any
	}{
		{name: "intimacy out of range", body: types.Friend{Name: "Zed", Intimacy: 11}},
		{name: "rating out of range", body: types.Friend{Name: "Zed", Intimacy: 5, Preferences: map[string]int{"Chips": 9}}},
		{name: "unknown field", body: map[string]any{"name": "Zed", "intimacy": 5, "age": 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, h, http.MethodPost, "/friends", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestFoodsCRUD(t *testing.T) {
	s, store := newTestServer(t, nil)
	h := s.Handler()
	_, err := store.SeedDefaultFoods()
	require.NoError(t, err)

	w := doRequest(t, h, http.MethodPost, "/foods", types.Food{Name: "Lemonade", Cost: 1.5, Category: types.CategoryDrink})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, h, http.MethodGet, "/foods?category=drink", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Foods []types.Food `json:"foods"`
		Count int          `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 4, list.Count)
	for _, f := range list.Foods {
		assert.Equal(t, types.CategoryDrink, f.Category)
	}

	w = doRequest(t, h, http.MethodGet, "/foods?category=appetizer", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, h, http.MethodPost, "/foods", types.Food{Name: "Gold", Cost: -1, Category: types.CategoryMain})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, h, http.MethodDelete, "/foods/Tea", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doRequest(t, h, http.MethodGet, "/foods/Tea", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOptimize_RequestCatalog(t *testing.T) {
	s, _ := newTestServer(t, nil)

	w := doRequest(t, s.Handler(), http.MethodPost, "/optimize", scenarioRequest())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.RunID)
	assert.Equal(t, 7, resp.Total)
	require.Len(t, resp.Recommendations, 7)
	assert.Equal(t, 7, resp.Statistics.Total)

	for i := 1; i < len(resp.Recommendations); i++ {
		assert.GreaterOrEqual(t, resp.Recommendations[i-1].Happiness, resp.Recommendations[i].Happiness)
	}

	var found bool
	for _, r := range resp.Recommendations {
		if assert.ObjectsAreEqual([]string{"Tom", "Bob", "Mike"}, r.Guests) {
			found = true
			assert.InDelta(t, 19.41, r.TotalCost, 1e-9)
			assert.InDelta(t, 33.0, r.TotalSatisfaction, 1e-9)
			assert.InDelta(t, 3.0385, r.Happiness, 1e-3)
		}
	}
	assert.True(t, found)
}

func TestOptimize_StoreCatalogAndTopN(t *testing.T) {
	s, store := newTestServer(t, nil)
	_, err := store.SeedDefaultFoods()
	require.NoError(t, err)
	require.NoError(t, store.AddFriend(types.Friend{Name: "Alex", Intimacy: 9, Preferences: map[string]int{"Soda": 5, "Chips": 3}}))
	require.NoError(t, store.AddFriend(types.Friend{Name: "Sam", Intimacy: 4, Preferences: map[string]int{"Candy": 5, "Tea": 2}}))

	w := doRequest(t, s.Handler(), http.MethodPost, "/optimize", map[string]any{"budget": 40, "top_n": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total, "three non-empty subsets of two friends")
	assert.Len(t, resp.Recommendations, 2)
}

func TestOptimize_Errors(t *testing.T) {
	s, _ := newTestServer(t, nil)
	h := s.Handler()

	// empty store, no catalog in the request
	w := doRequest(t, h, http.MethodPost, "/optimize", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	req := scenarioRequest()
	req["weights"] = map[string]float64{"satisfaction": 0.4, "savings": 0.1, "intimacy": 0.4}
	w = doRequest(t, h, http.MethodPost, "/optimize", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = scenarioRequest()
	req["max_guests"] = 4
	w = doRequest(t, h, http.MethodPost, "/optimize", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = scenarioRequest()
	req["min_guests"] = 4
	w = doRequest(t, h, http.MethodPost, "/optimize", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "min_guests")

	req = scenarioRequest()
	req["save"] = true
	w = doRequest(t, h, http.MethodPost, "/optimize", req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestOptimize_BudgetRange(t *testing.T) {
	s, _ := newTestServer(t, nil)

	for _, budget := range []float64{0, -5, 20000} {
		req := scenarioRequest()
		req["budget"] = budget
		w := doRequest(t, s.Handler(), http.MethodPost, "/optimize", req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "budget %v", budget)
		assert.Contains(t, w.Body.String(), "budget")
	}
}

func TestOptimize_MinGuests(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := scenarioRequest()
	req["min_guests"] = 2
	w := doRequest(t, s.Handler(), http.MethodPost, "/optimize", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Total)
	for _, r := range resp.Recommendations {
		assert.GreaterOrEqual(t, len(r.Guests), 2)
	}
}

func TestOptimize_NoViableParty(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := scenarioRequest()
	req["budget"] = 2.5
	w := doRequest(t, s.Handler(), http.MethodPost, "/optimize", req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Total)
	assert.Empty(t, resp.Recommendations)
}

func TestOptimize_SavesRun(t *testing.T) {
	runs := &mockRuns{id: uuid.New()}
	s, _ := newTestServer(t, runs)

	req := scenarioRequest()
	req["save"] = true
	req["top_n"] = 3
	w := doRequest(t, s.Handler(), http.MethodPost, "/optimize", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.RunID)
	assert.Equal(t, runs.id, *resp.RunID)

	require.Len(t, runs.saved, 1)
	assert.Equal(t, 3, runs.saved[0].NumFriends)
	assert.Equal(t, 3, runs.saved[0].NumFoods)
	assert.Len(t, runs.saved[0].Recommendations, 3)
	assert.InDelta(t, 50.0, runs.saved[0].Config.Budget, 1e-9)
}

func TestReloadCatalog(t *testing.T) {
	s, store := newTestServer(t, nil)

	// a second store over the same directory stands in for the CLI
	other, err := catalog.Open(store.Dir())
	require.NoError(t, err)
	_, err = other.SeedDefaultFoods()
	require.NoError(t, err)

	w := doRequest(t, s.Handler(), http.MethodGet, "/foods", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)

	w = doRequest(t, s.Handler(), http.MethodPost, "/catalog/reload", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 0, resp["friends"])
	assert.EqualValues(t, 8, resp["foods"])
	assert.Len(t, store.ListFoods(), 8)
}

func TestRateLimit(t *testing.T) {
	store, err := catalog.Open(t.TempDir())
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Server.RateLimitReqs = 2
	cfg.Server.RateLimitWindow = time.Minute
	h := New(cfg, store, nil).Handler()

	for i := 0; i < 2; i++ {
		w := doRequest(t, h, http.MethodGet, "/friends", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := doRequest(t, h, http.MethodGet, "/friends", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// health checks are not limited
	w = doRequest(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
