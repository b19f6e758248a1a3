package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/summit-seekers/forum-service/internal/model"
)

type identityRepo struct {
	db DB
}

func newIdentityRepo(db DB) Identity {
	return &identityRepo{
		db: db,
	}
}

func (r *identityRepo) Upsert(ctx context.Context, id uuid.UUID, secretHash string) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO identities(id, secret_hash) VALUES($1, $2) ON CONFLICT (id) DO UPDATE SET secret_hash = EXCLUDED.secret_hash",
		id,
		secretHash,
	)
	return err
}

func (r *identityRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Identity, error) {
	var identity model.Identity
	if err := r.db.QueryRow(
		ctx,
		`SELECT
		i.id, i.secret_hash, i.created_at, EXISTS(SELECT 1 FROM posts p WHERE p.user_id = i.id)
		FROM identities i
		WHERE i.id = $1`,
		id,
	).Scan(
		&identity.ID,
		&identity.SecretHash,
		&identity.CreatedAt,
		&identity.HasPosts,
	); err != nil {
		return nil, err
	}

	return &identity, nil
}
