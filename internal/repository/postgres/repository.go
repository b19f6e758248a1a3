package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/summit-seekers/forum-service/internal/model"
)

const MAX_LIMIT = 50

func maxLimit(limit *int) {
	if *limit <= 0 || *limit > MAX_LIMIT {
		*limit = MAX_LIMIT
	}
}

var ErrAlreadyUpvoted = errors.New("post already upvoted by this identity")

// DB is the subset of pgxpool.Pool the repositories use. Tests substitute a
// pgxmock pool for it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Identity interface {
	Upsert(ctx context.Context, id uuid.UUID, secretHash string) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Identity, error)
}

type Post interface {
	Create(ctx context.Context, post model.Post, flags []string) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	FindAll(ctx context.Context, orderBy string, limit int, offset int) ([]*model.FullPost, error)
	Update(ctx context.Context, post model.Post, flags *[]string) error
	Delete(ctx context.Context, id int64) error
	Upvote(ctx context.Context, postID int64, userID uuid.UUID) (int64, error)
	IsUpvoted(ctx context.Context, postID int64, userID uuid.UUID) (bool, error)
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64, limit int, offset int) ([]*model.Comment, error)
}

type PostgresRepository struct {
	Identity
	Post
	Comment
}

func New(db DB) *PostgresRepository {
	return &PostgresRepository{
		Identity: newIdentityRepo(db),
		Post: newPostRepo(db),
		Comment: newCommentRepo(db),
	}
}
