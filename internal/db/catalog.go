package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jonathan/party-optimizer/internal/types"
)

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// execer is satisfied by both the pool and a transaction
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// UpsertFriend inserts a friend or replaces the one with the same case-insensitive name
func (db *DB) UpsertFriend(ctx context.Context, f types.Friend) error {
	return upsertFriend(ctx, db.pool, f)
}

func upsertFriend(ctx context.Context, q execer, f types.Friend) error {
	prefs := f.Preferences
	if prefs == nil {
		prefs = map[string]int{}
	}
	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	_, err = q.Exec(ctx,
		`INSERT INTO friends (name, name_key, intimacy, preferences, dietary_restrictions)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (name_key) DO UPDATE SET
		   name = EXCLUDED.name,
		   intimacy = EXCLUDED.intimacy,
		   preferences = EXCLUDED.preferences,
		   dietary_restrictions = EXCLUDED.dietary_restrictions,
		   updated_at = NOW()`,
		strings.TrimSpace(f.Name), nameKey(f.Name), f.Intimacy, prefsJSON, nonNil(f.DietaryRestrictions),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert friend %s: %w", f.Name, err)
	}
	return nil
}

// GetFriend returns nil when no friend has that name
func (db *DB) GetFriend(ctx context.Context, name string) (*types.Friend, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT name, intimacy, preferences, dietary_restrictions FROM friends WHERE name_key = $1`,
		nameKey(name),
	)
	f, err := scanFriend(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get friend %s: %w", name, err)
	}
	return f, nil
}

// ListFriends returns all friends in insertion order
func (db *DB) ListFriends(ctx context.Context) ([]types.Friend, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT name, intimacy, preferences, dietary_restrictions FROM friends ORDER BY created_at, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []types.Friend
	for rows.Next() {
		f, err := scanFriend(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, *f)
	}
	return friends, rows.Err()
}

// DeleteFriend reports whether a row was removed
func (db *DB) DeleteFriend(ctx context.Context, name string) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM friends WHERE name_key = $1`, nameKey(name))
	if err != nil {
		return false, fmt.Errorf("failed to delete friend %s: %w", name, err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanFriend(row pgx.Row) (*types.Friend, error) {
	var f types.Friend
	var prefsJSON []byte
	if err := row.Scan(&f.Name, &f.Intimacy, &prefsJSON, &f.DietaryRestrictions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(prefsJSON, &f.Preferences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	if len(f.DietaryRestrictions) == 0 {
		f.DietaryRestrictions = nil
	}
	return &f, nil
}

// UpsertFood inserts a food or replaces the one with the same case-insensitive name
func (db *DB) UpsertFood(ctx context.Context, f types.Food) error {
	return upsertFood(ctx, db.pool, f)
}

func upsertFood(ctx context.Context, q execer, f types.Food) error {
	_, err := q.Exec(ctx,
		`INSERT INTO foods (name, name_key, cost, category, tags)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (name_key) DO UPDATE SET
		   name = EXCLUDED.name,
		   cost = EXCLUDED.cost,
		   category = EXCLUDED.category,
		   tags = EXCLUDED.tags,
		   updated_at = NOW()`,
		strings.TrimSpace(f.Name), nameKey(f.Name), f.Cost, string(f.Category), nonNil(f.Tags),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert food %s: %w", f.Name, err)
	}
	return nil
}

// ListFoods returns all foods in insertion order
func (db *DB) ListFoods(ctx context.Context) ([]types.Food, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT name, cost, category, tags FROM foods ORDER BY created_at, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	defer rows.Close()

	var foods []types.Food
	for rows.Next() {
		var f types.Food
		var category string
		if err := rows.Scan(&f.Name, &f.Cost, &category, &f.Tags); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		f.Category = types.Category(category)
		if len(f.Tags) == 0 {
			f.Tags = nil
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

func (db *DB) DeleteFood(ctx context.Context, name string) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM foods WHERE name_key = $1`, nameKey(name))
	if err != nil {
		return false, fmt.Errorf("failed to delete food %s: %w", name, err)
	}
	return tag.RowsAffected() > 0, nil
}

// SyncCatalog upserts every friend and food of a snapshot in one transaction
func (db *DB) SyncCatalog(ctx context.Context, c types.Catalog) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, f := range c.Friends {
		if err := upsertFriend(ctx, tx, f); err != nil {
			return err
		}
	}
	for _, f := range c.Foods {
		if err := upsertFood(ctx, tx, f); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit catalog sync: %w", err)
	}
	return nil
}

// LoadCatalog reads both tables into a snapshot
func (db *DB) LoadCatalog(ctx context.Context) (types.Catalog, error) {
	friends, err := db.ListFriends(ctx)
	if err != nil {
		return types.Catalog{}, err
	}
	foods, err := db.ListFoods(ctx)
	if err != nil {
		return types.Catalog{}, err
	}
	return types.Catalog{Friends: friends, Foods: foods}, nil
}
