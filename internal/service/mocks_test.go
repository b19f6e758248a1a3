package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/summit-seekers/forum-service/internal/model"
	"github.com/summit-seekers/forum-service/internal/repository"
	"github.com/summit-seekers/forum-service/internal/repository/postgres"
	"github.com/summit-seekers/forum-service/internal/repository/redisrepo"
	"go.uber.org/zap"
)

// fakeCache is a redis stand-in that always misses and accepts every write.
type fakeCache struct{}

func (fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (fakeCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	cmd.SetErr(redis.Nil)
	return cmd
}

func (fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return redis.NewIntCmd(ctx)
}

func (fakeCache) DelByPattern(ctx context.Context, pattern string) error {
	return nil
}

type mockIdentityRepo struct {
	UpsertFn func(ctx context.Context, id uuid.UUID, secretHash string) error
	FindByIDFn func(ctx context.Context, id uuid.UUID) (*model.Identity, error)
}

func (m *mockIdentityRepo) Upsert(ctx context.Context, id uuid.UUID, secretHash string) error {
	return m.UpsertFn(ctx, id, secretHash)
}

func (m *mockIdentityRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Identity, error) {
	return m.FindByIDFn(ctx, id)
}

type mockPostRepo struct {
	CreateFn func(ctx context.Context, post model.Post, flags []string) (*model.Post, error)
	FindByIDFn func(ctx context.Context, id int64) (*model.FullPost, error)
	FindAllFn func(ctx context.Context, orderBy string, limit int, offset int) ([]*model.FullPost, error)
	UpdateFn func(ctx context.Context, post model.Post, flags *[]string) error
	DeleteFn func(ctx context.Context, id int64) error
	UpvoteFn func(ctx context.Context, postID int64, userID uuid.UUID) (int64, error)
	IsUpvotedFn func(ctx context.Context, postID int64, userID uuid.UUID) (bool, error)
}

func (m *mockPostRepo) Create(ctx context.Context, post model.Post, flags []string) (*model.Post, error) {
	return m.CreateFn(ctx, post, flags)
}

func (m *mockPostRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *mockPostRepo) FindAll(ctx context.Context, orderBy string, limit int, offset int) ([]*model.FullPost, error) {
	return m.FindAllFn(ctx, orderBy, limit, offset)
}

func (m *mockPostRepo) Update(ctx context.Context, post model.Post, flags *[]string) error {
	return m.UpdateFn(ctx, post, flags)
}

func (m *mockPostRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFn(ctx, id)
}

func (m *mockPostRepo) Upvote(ctx context.Context, postID int64, userID uuid.UUID) (int64, error) {
	return m.UpvoteFn(ctx, postID, userID)
}

func (m *mockPostRepo) IsUpvoted(ctx context.Context, postID int64, userID uuid.UUID) (bool, error) {
	return m.IsUpvotedFn(ctx, postID, userID)
}

type mockCommentRepo struct {
	CreateFn func(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindPostCommentsFn func(ctx context.Context, postID int64, limit int, offset int) ([]*model.Comment, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	return m.CreateFn(ctx, comment)
}

func (m *mockCommentRepo) FindPostComments(ctx context.Context, postID int64, limit int, offset int) ([]*model.Comment, error) {
	return m.FindPostCommentsFn(ctx, postID, limit, offset)
}

type fakeFileStore struct {
	UploadFn func(ctx context.Context, key string, body io.Reader) (string, error)
}

func (f *fakeFileStore) Upload(ctx context.Context, key string, body io.Reader) (string, error) {
	if f.UploadFn != nil {
		return f.UploadFn(ctx, key, body)
	}
	return "https://cdn.example.com/" + key, nil
}

func newTestRepo(identities *mockIdentityRepo, posts *mockPostRepo, comments *mockCommentRepo) *repository.Repository {
	return &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Identity: identities,
			Post: posts,
			Comment: comments,
		},
		Redis: &redisrepo.RedisRepository{
			Default: fakeCache{},
		},
	}
}

func newTestService(identities *mockIdentityRepo, posts *mockPostRepo, comments *mockCommentRepo) *Service {
	return New(zap.NewNop(), newTestRepo(identities, posts, comments), &fakeFileStore{})
}
