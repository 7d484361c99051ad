package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/party-optimizer/internal/config"
	"github.com/jonathan/party-optimizer/internal/db"
	"github.com/jonathan/party-optimizer/internal/logging"
	"github.com/jonathan/party-optimizer/internal/optimizer"
	"github.com/jonathan/party-optimizer/internal/types"
)

// OptimizeRequest overrides configured defaults for one run. Friends and Foods, when
// present, replace the stored catalog for that side of the search.
type OptimizeRequest struct {
	Budget    *float64         `json:"budget,omitempty"`
	MinGuests *int             `json:"min_guests,omitempty"`
	MaxGuests *int             `json:"max_guests,omitempty"`
	Weights   *types.Weights   `json:"weights,omitempty"`
	Rules     *types.MenuRules `json:"rules,omitempty"`
	Workers   *int             `json:"workers,omitempty"`
	TopN      *int             `json:"top_n,omitempty"`
	Friends   []types.Friend   `json:"friends,omitempty"`
	Foods     []types.Food     `json:"foods,omitempty"`
	Save      bool             `json:"save,omitempty"`
}

// OptimizeResponse carries the best parties and statistics over every viable one
type OptimizeResponse struct {
	RunID           *uuid.UUID             `json:"run_id,omitempty"`
	Total           int                    `json:"total"`
	Recommendations []types.Recommendation `json:"recommendations"`
	Statistics      optimizer.Statistics   `json:"statistics"`
	DurationMS      int64                  `json:"duration_ms"`
}

// resolve merges the request onto configured defaults and the stored catalog
func (s *Server) resolve(req *OptimizeRequest) (types.Catalog, types.OptimizationConfig, int, error) {
	c := s.store.Snapshot()

	if len(req.Friends) > 0 {
		for i := range req.Friends {
			if err := req.Friends[i].Validate(); err != nil {
				return c, types.OptimizationConfig{}, 0, &ErrValidation{
					Field:   fmt.Sprintf("friends[%d]", i),
					Message: err.Error(),
				}
			}
		}
		c.Friends = req.Friends
	}
	if len(req.Foods) > 0 {
		for i := range req.Foods {
			if err := req.Foods[i].Validate(); err != nil {
				return c, types.OptimizationConfig{}, 0, &ErrValidation{
					Field:   fmt.Sprintf("foods[%d]", i),
					Message: err.Error(),
				}
			}
		}
		c.Foods = req.Foods
	}

	cfg := s.cfg.OptimizerConfig(len(c.Friends))
	if req.Budget != nil {
		if err := config.CheckBudget(*req.Budget); err != nil {
			return c, types.OptimizationConfig{}, 0, &ErrValidation{Field: "budget", Message: err.Error()}
		}
		cfg.Budget = *req.Budget
	}
	if req.MinGuests != nil {
		cfg.MinGuests = *req.MinGuests
	}
	if req.MaxGuests != nil {
		cfg.MaxGuests = *req.MaxGuests
	}
	if req.Weights != nil {
		cfg.Weights = *req.Weights
	}
	if req.Rules != nil {
		cfg.Rules = *req.Rules
	}
	if req.Workers != nil {
		cfg.Workers = *req.Workers
	}

	topN := s.cfg.Optimization.TopN
	if req.TopN != nil {
		topN = *req.TopN
	}
	return c, cfg, topN, nil
}

// handleOptimize runs the optimizer and returns the top N recommendations
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Save && s.runs == nil {
		writeError(w, &ErrPersistenceDisabled{})
		return
	}

	c, cfg, topN, err := s.resolve(&req)
	if err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	recs, err := optimizer.OptimizeContext(r.Context(), c.Friends, c.Foods, cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	elapsed := time.Since(start)

	resp := OptimizeResponse{
		Total:           len(recs),
		Recommendations: optimizer.Top(recs, topN),
		Statistics:      optimizer.Summarize(recs),
		DurationMS:      elapsed.Milliseconds(),
	}

	if req.Save {
		id, err := s.runs.SaveRun(r.Context(), db.RunInput{
			Config:          cfg,
			NumFriends:      len(c.Friends),
			NumFoods:        len(c.Foods),
			Duration:        elapsed,
			Recommendations: resp.Recommendations,
		})
		if err != nil {
			writeError(w, fmt.Errorf("failed to save run: %w", err))
			return
		}
		resp.RunID = &id
	}

	logging.Info().
		Int("friends", len(c.Friends)).
		Int("foods", len(c.Foods)).
		Int("viable", len(recs)).
		Dur("duration", elapsed).
		Msg("optimization complete")

	jsonResponse(w, http.StatusOK, resp)
}
