package database

import (
	"context"
	"fmt"
)

// Statements are idempotent so Migrate can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              UUID PRIMARY KEY,
		username        VARCHAR(80) NOT NULL UNIQUE,
		email           VARCHAR(120) NOT NULL UNIQUE,
		hashed_password VARCHAR(128) NOT NULL,
		is_helper       BOOLEAN NOT NULL DEFAULT FALSE,
		reputation      INTEGER NOT NULL DEFAULT 0,
		profile_pic     TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS problems (
		id               UUID PRIMARY KEY,
		title            VARCHAR(200) NOT NULL,
		slug             VARCHAR(220) NOT NULL UNIQUE,
		description      TEXT NOT NULL,
		category         VARCHAR(50) NOT NULL DEFAULT '',
		device_type      VARCHAR(50) NOT NULL DEFAULT '',
		operating_system VARCHAR(50) NOT NULL DEFAULT '',
		urgency          VARCHAR(20) NOT NULL DEFAULT 'medium',
		is_solved        BOOLEAN NOT NULL DEFAULT FALSE,
		views            INTEGER NOT NULL DEFAULT 0,
		solution_count   INTEGER NOT NULL DEFAULT 0,
		user_id          UUID NOT NULL REFERENCES users(id),
		created_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS solutions (
		id             UUID PRIMARY KEY,
		title          VARCHAR(200) NOT NULL,
		steps          TEXT NOT NULL,
		difficulty     VARCHAR(20) NOT NULL DEFAULT 'Beginner',
		estimated_time VARCHAR(20) NOT NULL DEFAULT '',
		upvotes        INTEGER NOT NULL DEFAULT 0 CHECK (upvotes >= 0),
		downvotes      INTEGER NOT NULL DEFAULT 0 CHECK (downvotes >= 0),
		is_verified    BOOLEAN NOT NULL DEFAULT FALSE,
		problem_id     UUID NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
		user_id        UUID NOT NULL REFERENCES users(id),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS votes (
		id          UUID PRIMARY KEY,
		solution_id UUID NOT NULL REFERENCES solutions(id) ON DELETE CASCADE,
		user_id     UUID NOT NULL REFERENCES users(id),
		value       VARCHAR(10) NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (solution_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_problems_category ON problems(category)`,
	`CREATE INDEX IF NOT EXISTS idx_problems_created_at ON problems(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_solutions_problem_id ON solutions(problem_id)`,
}

// Migrate creates the schema. Called explicitly from main after Connect, so
// store initialization is part of the startup lifecycle rather than an
// import-time side effect.
func Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database.Migrate: %w", err)
		}
	}
	fmt.Println("Database schema is up to date.")
	return nil
}
