package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

var tables = []string{
	`
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		google_id VARCHAR(255) UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL DEFAULT '',
		profile_picture TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS posts (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		platforms TEXT[] NOT NULL,
		scheduled_time TIMESTAMPTZ NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'draft',
		hashtags TEXT[] NOT NULL DEFAULT '{}',
		media_urls TEXT[] NOT NULL DEFAULT '{}',
		engagement JSONB,
		ai_generated BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT posts_status_check CHECK (status IN ('draft', 'scheduled', 'published', 'failed')),
		CONSTRAINT posts_platforms_check CHECK (cardinality(platforms) > 0)
	);
	CREATE INDEX IF NOT EXISTS idx_posts_user_time ON posts(user_id, scheduled_time);
	CREATE INDEX IF NOT EXISTS idx_posts_status_time ON posts(status, scheduled_time);
	`,
	`
	CREATE TABLE IF NOT EXISTS settings (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		industry VARCHAR(255) NOT NULL DEFAULT '',
		tone_preference VARCHAR(100) NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS posting_history (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_posting_history_post ON posting_history(post_id);
	`,
	`
	CREATE TABLE IF NOT EXISTS media_assets (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		file_name TEXT NOT NULL,
		file_type VARCHAR(100) NOT NULL,
		file_size BIGINT NOT NULL,
		file_url TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`,
}

// CreateTables creates every table the service uses. It is safe to run
// repeatedly.
func CreateTables(ctx context.Context, db *sql.DB) error {
	slog.Info("creating database tables")

	for _, table := range tables {
		if _, err := db.ExecContext(ctx, table); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}

	slog.Info("database tables ready")
	return nil
}
