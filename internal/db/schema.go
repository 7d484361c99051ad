package db

// Schema is the idempotent DDL applied by Migrate
const Schema = `
CREATE TABLE IF NOT EXISTS friends (
    name                 TEXT PRIMARY KEY,
    name_key             TEXT NOT NULL UNIQUE,
    intimacy             INTEGER NOT NULL CHECK (intimacy BETWEEN 1 AND 10),
    preferences          JSONB NOT NULL DEFAULT '{}'::jsonb,
    dietary_restrictions TEXT[] NOT NULL DEFAULT '{}',
    created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS foods (
    name       TEXT PRIMARY KEY,
    name_key   TEXT NOT NULL UNIQUE,
    cost       DOUBLE PRECISION NOT NULL CHECK (cost >= 0),
    category   TEXT NOT NULL CHECK (category IN ('main', 'snack', 'dessert', 'drink')),
    tags       TEXT[] NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS optimization_runs (
    id                  UUID PRIMARY KEY,
    budget              DOUBLE PRECISION NOT NULL,
    max_guests          INTEGER NOT NULL,
    weight_satisfaction DOUBLE PRECISION NOT NULL,
    weight_savings      DOUBLE PRECISION NOT NULL,
    weight_intimacy     DOUBLE PRECISION NOT NULL,
    rules               JSONB NOT NULL,
    num_friends         INTEGER NOT NULL,
    num_foods           INTEGER NOT NULL,
    num_recommendations INTEGER NOT NULL,
    duration_ms         BIGINT NOT NULL DEFAULT 0,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS recommendations (
    run_id             UUID NOT NULL REFERENCES optimization_runs(id) ON DELETE CASCADE,
    rank               INTEGER NOT NULL,
    guests             TEXT[] NOT NULL,
    menu               JSONB NOT NULL,
    total_cost         DOUBLE PRECISION NOT NULL,
    total_satisfaction DOUBLE PRECISION NOT NULL,
    avg_satisfaction   DOUBLE PRECISION NOT NULL,
    cost_savings       DOUBLE PRECISION NOT NULL,
    total_intimacy     INTEGER NOT NULL,
    happiness          DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (run_id, rank)
);

CREATE INDEX IF NOT EXISTS idx_optimization_runs_created_at ON optimization_runs (created_at DESC);
`
