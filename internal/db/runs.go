package db

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/party-optimizer/internal/types"
)

// menuItem is the JSONB shape of one menu entry
type menuItem struct {
	Name     string         `json:"name"`
	Cost     float64        `json:"cost"`
	Category types.Category `json:"category"`
}

func encodeMenu(m types.Menu) ([]byte, error) {
	items := make([]menuItem, len(m))
	for i, f := range m {
		items[i] = menuItem{Name: f.Name, Cost: f.Cost, Category: f.Category}
	}
	return json.Marshal(items)
}

func decodeMenu(data []byte) (types.Menu, error) {
	var items []menuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	m := make(types.Menu, len(items))
	for i, it := range items {
		m[i] = types.Food{Name: it.Name, Cost: it.Cost, Category: it.Category}
	}
	return m, nil
}

// SaveRun stores a run header and its recommendations (in rank order) atomically
func (db *DB) SaveRun(ctx context.Context, in RunInput) (uuid.UUID, error) {
	rulesJSON, err := json.Marshal(in.Config.Rules)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal rules: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id := uuid.New()
	cfg := in.Config
	_, err = tx.Exec(ctx,
		`INSERT INTO optimization_runs
		   (id, budget, max_guests, weight_satisfaction, weight_savings, weight_intimacy,
		    rules, num_friends, num_foods, num_recommendations, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, cfg.Budget, cfg.MaxGuests, cfg.Weights.Satisfaction, cfg.Weights.Savings, cfg.Weights.Intimacy,
		rulesJSON, in.NumFriends, in.NumFoods, len(in.Recommendations), in.Duration.Milliseconds(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert run: %w", err)
	}

	batch := &pgx.Batch{}
	for i, r := range in.Recommendations {
		menuJSON, err := encodeMenu(r.Menu)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal menu: %w", err)
		}
		batch.Queue(
			`INSERT INTO recommendations
			   (run_id, rank, guests, menu, total_cost, total_satisfaction, avg_satisfaction,
			    cost_savings, total_intimacy, happiness)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			id, i+1, r.Guests, menuJSON, r.TotalCost, r.TotalSatisfaction, r.AvgSatisfaction,
			r.CostSavings, r.TotalIntimacy, r.Happiness,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert recommendations: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

const runColumns = `id, budget, max_guests, weight_satisfaction, weight_savings, weight_intimacy,
	rules, num_friends, num_foods, num_recommendations, duration_ms, created_at`

func scanRun(row pgx.Row) (*Run, error) {
	var run Run
	var rulesJSON []byte
	var durationMS int64
	err := row.Scan(&run.ID, &run.Budget, &run.MaxGuests,
		&run.Weights.Satisfaction, &run.Weights.Savings, &run.Weights.Intimacy,
		&rulesJSON, &run.NumFriends, &run.NumFoods, &run.NumRecommendations, &durationMS, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rulesJSON, &run.Rules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rules: %w", err)
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}

// GetRun retrieves a run with its recommendations; nil when the ID is unknown
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*RunWithRecommendations, error) {
	run, err := scanRun(db.pool.QueryRow(ctx,
		`SELECT `+runColumns+` FROM optimization_runs WHERE id = $1`, runID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	recs, err := db.GetRecommendations(ctx, runID, 0)
	if err != nil {
		return nil, err
	}
	return &RunWithRecommendations{Run: *run, Recommendations: recs}, nil
}

// ListRuns retrieves recent runs, newest first
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+runColumns+` FROM optimization_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRecommendations returns a run's recommendations by rank. limit <= 0 means all.
func (db *DB) GetRecommendations(ctx context.Context, runID uuid.UUID, limit int) ([]StoredRecommendation, error) {
	query := `SELECT rank, guests, menu, total_cost, total_satisfaction, avg_satisfaction,
	                 cost_savings, total_intimacy, happiness
	          FROM recommendations WHERE run_id = $1 ORDER BY rank`
	args := []any{runID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []StoredRecommendation
	for rows.Next() {
		var r StoredRecommendation
		var menuJSON []byte
		if err := rows.Scan(&r.Rank, &r.Guests, &menuJSON, &r.TotalCost, &r.TotalSatisfaction,
			&r.AvgSatisfaction, &r.CostSavings, &r.TotalIntimacy, &r.Happiness); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		if r.Menu, err = decodeMenu(menuJSON); err != nil {
			return nil, fmt.Errorf("failed to unmarshal menu: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// DeleteRun removes a run and, by cascade, its recommendations
func (db *DB) DeleteRun(ctx context.Context, runID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM optimization_runs WHERE id = $1`, runID)
	if err != nil {
		return false, fmt.Errorf("failed to delete run: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
