package database

import (
	"context"
)

// EnsureSchema creates required extensions and tables if they do not exist.
// Idempotent; safe to run on every boot.
func EnsureSchema(ctx context.Context, db DB) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			industry TEXT,
			skills TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS industry_insights (
			industry TEXT PRIMARY KEY,
			salary_ranges JSONB NOT NULL DEFAULT '[]'::jsonb,
			growth_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			demand_level TEXT NOT NULL DEFAULT 'Medium',
			top_skills TEXT[] NOT NULL DEFAULT '{}',
			market_outlook TEXT NOT NULL DEFAULT 'Neutral',
			key_trends TEXT[] NOT NULL DEFAULT '{}',
			recommended_skills TEXT[] NOT NULL DEFAULT '{}',
			last_updated TIMESTAMPTZ NOT NULL DEFAULT now(),
			next_update TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS assessments (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			quiz_score DOUBLE PRECISION NOT NULL,
			questions JSONB NOT NULL DEFAULT '[]'::jsonb,
			category TEXT NOT NULL,
			improvement_tip TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS assessments_user_id_created_at_idx ON assessments(user_id, created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
