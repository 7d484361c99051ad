package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/party-optimizer/internal/types"
)

// Run is a persisted optimization run header
type Run struct {
	ID                 uuid.UUID       `json:"id"`
	Budget             float64         `json:"budget"`
	MaxGuests          int             `json:"max_guests"`
	Weights            types.Weights   `json:"weights"`
	Rules              types.MenuRules `json:"rules"`
	NumFriends         int             `json:"num_friends"`
	NumFoods           int             `json:"num_foods"`
	NumRecommendations int             `json:"num_recommendations"`
	Duration           time.Duration   `json:"duration"`
	CreatedAt          time.Time       `json:"created_at"`
}

// RunInput is what SaveRun needs to record one optimization
type RunInput struct {
	Config          types.OptimizationConfig
	NumFriends      int
	NumFoods        int
	Duration        time.Duration
	Recommendations []types.Recommendation
}

// StoredRecommendation is a recommendation row with its 1-based rank
type StoredRecommendation struct {
	Rank int `json:"rank"`
	types.Recommendation
}

// RunWithRecommendations is a run plus its ranked recommendations
type RunWithRecommendations struct {
	Run
	Recommendations []StoredRecommendation `json:"recommendations"`
}
