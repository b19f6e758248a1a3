package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/summit-seekers/forum-service/internal/config"
)

// Connect opens a pgx pool for the configured database.
func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.SSLMode,
	)

	return pgxpool.New(ctx, dsn)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS identities(
		id UUID PRIMARY KEY,
		secret_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS posts(
		id BIGSERIAL PRIMARY KEY,
		user_id UUID NOT NULL,
		title TEXT NOT NULL CHECK (title <> ''),
		content TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		grade TEXT NOT NULL DEFAULT '',
		upvotes BIGINT NOT NULL DEFAULT 0 CHECK (upvotes >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS post_flags(
		post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		flag TEXT NOT NULL,
		PRIMARY KEY (post_id, flag)
	)`,
	`CREATE TABLE IF NOT EXISTS post_upvotes(
		post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		user_id UUID NOT NULL,
		PRIMARY KEY (post_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments(
		id BIGSERIAL PRIMARY KEY,
		post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		user_id UUID NOT NULL,
		content TEXT NOT NULL CHECK (content <> ''),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_upvotes ON posts(upvotes DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id, created_at)`,
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
