package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/summit-seekers/forum-service/internal/model"
)

type postRepo struct {
	db DB
}

func newPostRepo(db DB) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post, flags []string) (*model.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	post.Upvotes = 0

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(
		ctx,
		`INSERT INTO posts(user_id, title, content, image_url, location, grade, upvotes, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		post.UserID,
		post.Title,
		post.Content,
		post.ImageURL,
		post.Location,
		post.Grade,
		post.Upvotes,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID); err != nil {
		return nil, err
	}

	for _, flag := range flags {
		if _, err := tx.Exec(
			ctx,
			"INSERT INTO post_flags(post_id, flag) VALUES($1, $2) ON CONFLICT DO NOTHING",
			post.ID,
			flag,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	var post model.Post
	if err := r.db.QueryRow(
		ctx,
		`SELECT
		id, user_id, title, content, image_url, location, grade, upvotes, created_at, updated_at
		FROM posts
		WHERE id = $1`,
		id,
	).Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.Content,
		&post.ImageURL,
		&post.Location,
		&post.Grade,
		&post.Upvotes,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	flags, err := r.findFlags(ctx, []int64{post.ID})
	if err != nil {
		return nil, err
	}

	return &model.FullPost{Post: post, Flags: flags[post.ID]}, nil
}

func (r *postRepo) FindAll(ctx context.Context, orderBy string, limit int, offset int) ([]*model.FullPost, error) {
	maxLimit(&limit)

	// orderBy is one of the fixed clauses produced by feed.SortKey, never
	// user input.
	rows, err := r.db.Query(
		ctx,
		fmt.Sprintf(
			`SELECT
			id, user_id, title, content, image_url, location, grade, upvotes, created_at, updated_at
			FROM posts
			ORDER BY %s
			LIMIT $1
			OFFSET $2`,
			orderBy,
		),
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.FullPost
	var ids []int64
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Title,
			&post.Content,
			&post.ImageURL,
			&post.Location,
			&post.Grade,
			&post.Upvotes,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, err
		}

		posts = append(posts, &model.FullPost{Post: post})
		ids = append(ids, post.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return posts, nil
	}

	flags, err := r.findFlags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		post.Flags = flags[post.Post.ID]
	}

	return posts, nil
}

func (r *postRepo) findFlags(ctx context.Context, postIDs []int64) (map[int64][]string, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT post_id, flag FROM post_flags WHERE post_id = ANY($1) ORDER BY flag",
		postIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flags := make(map[int64][]string)
	for rows.Next() {
		var (
			postID int64
			flag string
		)
		if err := rows.Scan(&postID, &flag); err != nil {
			return nil, err
		}

		flags[postID] = append(flags[postID], flag)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return flags, nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post, flags *[]string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(
		ctx,
		`UPDATE posts
		SET title = $1, content = $2, image_url = $3, location = $4, grade = $5, updated_at = $6
		WHERE id = $7`,
		post.Title,
		post.Content,
		post.ImageURL,
		post.Location,
		post.Grade,
		time.Now(),
		post.ID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if flags != nil {
		if _, err := tx.Exec(ctx, "DELETE FROM post_flags WHERE post_id = $1", post.ID); err != nil {
			return err
		}
		for _, flag := range *flags {
			if _, err := tx.Exec(
				ctx,
				"INSERT INTO post_flags(post_id, flag) VALUES($1, $2) ON CONFLICT DO NOTHING",
				post.ID,
				flag,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Upvote inserts the (post, identity) join row and bumps the counter in one
// transaction, so the count can never drift from the join table and
// concurrent upvotes cannot lose updates.
func (r *postRepo) Upvote(ctx context.Context, postID int64, userID uuid.UUID) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(
		ctx,
		"INSERT INTO post_upvotes(post_id, user_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
		postID,
		userID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, pgx.ErrNoRows
		}
		return 0, err
	}
	if ct.RowsAffected() == 0 {
		return 0, ErrAlreadyUpvoted
	}

	var upvotes int64
	if err := tx.QueryRow(
		ctx,
		"UPDATE posts SET upvotes = upvotes + 1 WHERE id = $1 RETURNING upvotes",
		postID,
	).Scan(&upvotes); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return upvotes, nil
}

func (r *postRepo) IsUpvoted(ctx context.Context, postID int64, userID uuid.UUID) (bool, error) {
	var upvoted bool
	err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM post_upvotes WHERE post_id = $1 AND user_id = $2)",
		postID,
		userID,
	).Scan(&upvoted)
	return upvoted, err
}
