package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/summit-seekers/forum-service/internal/dto"
	"github.com/summit-seekers/forum-service/internal/feed"
	"github.com/summit-seekers/forum-service/internal/model"
	"github.com/summit-seekers/forum-service/internal/repository/postgres"
)

func TestPostCreateRequiresTitle(t *testing.T) {
	posts := &mockPostRepo{}
	services := newTestService(&mockIdentityRepo{}, posts, &mockCommentRepo{})

	_, err := services.Post.Create(context.Background(), uuid.New(), dto.CreatePostRequest{Title: "   "})

	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestPostCreateTrimsFieldsAndNormalizesFlags(t *testing.T) {
	userID := uuid.New()
	var gotPost model.Post
	var gotFlags []string
	posts := &mockPostRepo{
		CreateFn: func(ctx context.Context, post model.Post, flags []string) (*model.Post, error) {
			gotPost = post
			gotFlags = flags
			post.ID = 1
			return &post, nil
		},
	}
	services := newTestService(&mockIdentityRepo{}, posts, &mockCommentRepo{})

	created, err := services.Post.Create(context.Background(), userID, dto.CreatePostRequest{
		Title: "  First Lead at Red River Gorge  ",
		Content: " scary but great ",
		Location: " Red River Gorge, Kentucky ",
		Grade: "5.10a",
		Flags: []string{" Trip-Report ", "trip-report", "", "question"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, userID, gotPost.UserID)
	assert.Equal(t, "First Lead at Red River Gorge", gotPost.Title)
	assert.Equal(t, "scary but great", gotPost.Content)
	assert.Equal(t, "Red River Gorge, Kentucky", gotPost.Location)
	assert.Equal(t, []string{"trip-report", "question"}, gotFlags)
}

func TestPostFindByIDNotFound(t *testing.T) {
	posts := &mockPostRepo{
		FindByIDFn: func(ctx context.Context, id int64) (*model.FullPost, error) {
			return nil, pgx.ErrNoRows
		},
	}
	services := newTestService(&mockIdentityRepo{}, posts, &mockCommentRepo{})

	_, err := services.Post.FindByID(context.Background(), 42)

	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostEditOwnershipGate(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	posts := &mockPostRepo{
		FindByIDFn: func(ctx context.Context, id int64) (*model.FullPost, error) {
			return &model.FullPost{Post: model.Post{ID: id, UserID: owner, Title: "El Cap"}}, nil
		},
	}
	services := newTestService(&mockIdentityRepo{}, posts, &mockCommentRepo{})

	title := "Taken over"
	_, err := services.Post.Edit(context.Background(), 1, stranger, dto.EditPostRequest{Title: &title})

	assert.ErrorIs(t, err, ErrNotPostAuthor)
}

func TestPostEditAppliesPatchAndKeepsImmutableFields(t *testing.T) {
	owner := uuid.New()
	existing := model.Post{ID: 1, UserID: owner, Title: "El Cap", Content: "old", Grade: "5.9"}
	var updated model.Post
	posts := &mockPostRepo{
		FindByIDFn: func(ctx context.Context, id int64) (*model.FullPost, error) {
			return &model.FullPost{Post: existing, Flags: []string{"trip-report"}}, nil
		},
		UpdateFn: func(ctx context.Context, post model.Post, flags *[]string) error {
			updated = post
			return nil
		},
	}
	services := newTestService(&mockIdentityRepo{}, posts, &mockCommentRepo{})

	content := "new story"
	result, err := services.Post.Edit(context.Background(), 1, owner, dto.EditPostRequest{Content: &content})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, existing.UserID, updated.UserID)
	assert.Equal(t, "El Cap", updated.Title)
	assert.Equal(t, "new story", updated.Content)
	assert.Equal(t, []string{"trip-report"}, result.Flags)
}

func TestPostEditRejectsBlankTitle(t *testing.T) {
	owner := uuid.New()
	posts := &mockPostRepo{
		FindByIDFn: func(ctx context.Context, id int64) (*model.FullPost, error) {
			return &model.FullPost{Post: model.Post{ID: id, UserID: owner, Title: "El Cap"}}, nil
		},
	}
	services := newTestService(&mockIdentityRepo{}, posts, &mockCommentRepo{})

	title := "   "
	_, err := services.Post.Edit(context.Background(), 1, owner, dto.EditPostRequest{Title: &title})

	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestPostDeleteOwnershipGate(t *testing.T) {
	owner := uuid.New()
	posts := &mockPostRepo{
		FindByIDFn: func(ctx context.Context, id int64) (*model.FullPost, error) {
			return &model.FullPost{Post: model.Post{ID: id, UserID: owner}}, nil
		},
	}
	services := newTestService(&mockIdentityRepo{}, posts, &mockCommentRepo{})

	err := services.Post.Delete(context.Background(), 1, uuid.New())

	assert.ErrorIs(t, err, ErrNotPostAuthor)
}

func TestPostDeleteByOwner(t *testing.T) {
	owner := uuid.New()
	deleted := false
	posts := &mockPostRepo{
		FindByIDFn: func(ctx context.Context, id int64) (*model.FullPost, error) {
			return &model.FullPost{Post: model.Post{ID: id, UserID: owner}}, nil
		},
		DeleteFn: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}
	services := newTestService(&mockIdentityRepo{}, posts, &mockCommentRepo{})

	require.NoError(t, services.Post.Delete(context.Background(), 1, owner))
	assert.True(t, deleted)
}

func TestPostUpvoteIncrementsOnce(t *testing.T) {
	userID := uuid.New()
	calls := 0
	posts := &mockPostRepo{
		UpvoteFn: func(ctx context.Context, postID int64, id uuid.UUID) (int64, error) {
			calls++
			if calls > 1 {
				return 0, postgres.ErrAlreadyUpvoted
			}
			return 4, nil
		},
	}
	services := newTestService(&mockIdentityRepo{}, posts, &mockCommentRepo{})

	upvotes, err := services.Post.Upvote(context.Background(), 1, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), upvotes)

	_, err = services.Post.Upvote(context.Background(), 1, userID)
	assert.ErrorIs(t, err, ErrAlreadyUpvoted)
}

func TestPostUpvoteMissingPost(t *testing.T) {
	posts := &mockPostRepo{
		UpvoteFn: func(ctx context.Context, postID int64, id uuid.UUID) (int64, error) {
			return 0, pgx.ErrNoRows
		},
	}
	services := newTestService(&mockIdentityRepo{}, posts, &mockCommentRepo{})

	_, err := services.Post.Upvote(context.Background(), 42, uuid.New())

	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostFeedAppliesFilter(t *testing.T) {
	posts := &mockPostRepo{
		FindAllFn: func(ctx context.Context, orderBy string, limit int, offset int) ([]*model.FullPost, error) {
			assert.Equal(t, feed.SortRecency.OrderBy(), orderBy)
			return []*model.FullPost{
				{Post: model.Post{ID: 1, Title: "Red River"}},
				{Post: model.Post{ID: 2, Title: "El Cap"}},
			}, nil
		},
	}
	services := newTestService(&mockIdentityRepo{}, posts, &mockCommentRepo{})

	result, err := services.Post.Feed(context.Background(), feed.SortRecency, "red", nil, 10, 0)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(1), result[0].Post.ID)
}
