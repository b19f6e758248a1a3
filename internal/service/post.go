package service

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/summit-seekers/forum-service/internal/dto"
	"github.com/summit-seekers/forum-service/internal/feed"
	"github.com/summit-seekers/forum-service/internal/model"
	"github.com/summit-seekers/forum-service/internal/repository"
	"github.com/summit-seekers/forum-service/internal/repository/postgres"
	"github.com/summit-seekers/forum-service/internal/repository/redisrepo"
	"go.uber.org/zap"
)

var validImageExtensions = map[string]bool{
	".jpg": true,
	".jpeg": true,
	".png": true,
	".gif": true,
	".webp": true,
}

type postService struct {
	logger *zap.Logger
	repo *repository.Repository
	files FileStore
}

func newPostService(logger *zap.Logger, repo *repository.Repository, files FileStore) Post {
	return &postService{
		logger: logger,
		repo: repo,
		files: files,
	}
}

func (s *postService) Create(ctx context.Context, userID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	post := model.Post{
		UserID: userID,
		Title: title,
		Content: strings.TrimSpace(input.Content),
		ImageURL: strings.TrimSpace(input.ImageURL),
		Location: strings.TrimSpace(input.Location),
		Grade: strings.TrimSpace(input.Grade),
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post, normalizeFlags(input.Flags))
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidateFeed(ctx)

	return createdPost, nil
}

func (s *postService) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	cachedPost, err := redisrepo.Get[model.FullPost](s.repo.Redis.Default, ctx, redisrepo.PostKey(id))
	if err == nil && cachedPost != nil {
		return cachedPost, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%d) from redis: %s", id, err.Error())
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(id), post, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%d) in redis: %s", id, err.Error())
	}

	return post, nil
}

// Feed returns one page of the feed. Unfiltered pages are served cache-aside
// from redis; search and flag filtering run on the fetched page via the pure
// feed.Filter and are never cached.
func (s *postService) Feed(ctx context.Context, sortKey feed.SortKey, searchTerm string, flags []string, limit int, offset int) ([]*model.FullPost, error) {
	filtered := strings.TrimSpace(searchTerm) != "" || len(flags) > 0

	if !filtered {
		cachedPosts, err := redisrepo.GetMany[model.FullPost](s.repo.Redis.Default, ctx, redisrepo.FeedKey(string(sortKey), limit, offset))
		if err == nil {
			return cachedPosts, nil
		}
		if err != redis.Nil {
			s.logger.Sugar().Errorf("failed to get feed page from redis: %s", err.Error())
		}
	}

	posts, err := s.repo.Postgres.Post.FindAll(ctx, sortKey.OrderBy(), limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	if !filtered {
		if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.FeedKey(string(sortKey), limit, offset), posts, time.Minute*5); err != nil {
			s.logger.Sugar().Errorf("failed to set feed page in redis: %s", err.Error())
		}
		return posts, nil
	}

	return feed.Filter(posts, searchTerm, flags), nil
}

func (s *postService) Edit(ctx context.Context, postID int64, callerID uuid.UUID, input dto.EditPostRequest) (*model.FullPost, error) {
	existing, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err == pgx.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	if existing.Post.UserID != callerID {
		return nil, ErrNotPostAuthor
	}

	post := existing.Post
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		post.Title = title
	}
	if input.Content != nil {
		post.Content = strings.TrimSpace(*input.Content)
	}
	if input.ImageURL != nil {
		post.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Location != nil {
		post.Location = strings.TrimSpace(*input.Location)
	}
	if input.Grade != nil {
		post.Grade = strings.TrimSpace(*input.Grade)
	}

	var flags *[]string
	if input.Flags != nil {
		normalized := normalizeFlags(*input.Flags)
		flags = &normalized
	}

	if err := s.repo.Postgres.Post.Update(ctx, post, flags); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to update post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	s.invalidatePost(ctx, postID)
	s.invalidateFeed(ctx)

	updated := &model.FullPost{Post: post, Flags: existing.Flags}
	if flags != nil {
		updated.Flags = *flags
	}

	return updated, nil
}

func (s *postService) Delete(ctx context.Context, postID int64, callerID uuid.UUID) error {
	existing, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err == pgx.ErrNoRows {
		return ErrPostNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", postID, err.Error())
		return ErrInternal
	}

	if existing.Post.UserID != callerID {
		return ErrNotPostAuthor
	}

	if err := s.repo.Postgres.Post.Delete(ctx, postID); err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to delete post(%d): %s", postID, err.Error())
		return ErrInternal
	}

	s.invalidatePost(ctx, postID)
	s.invalidateFeed(ctx)

	return nil
}

func (s *postService) Upvote(ctx context.Context, postID int64, userID uuid.UUID) (int64, error) {
	upvotes, err := s.repo.Postgres.Post.Upvote(ctx, postID, userID)
	if err == postgres.ErrAlreadyUpvoted {
		return 0, ErrAlreadyUpvoted
	}
	if err == pgx.ErrNoRows {
		return 0, ErrPostNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to upvote post(%d) by user(%s): %s", postID, userID.String(), err.Error())
		return 0, ErrInternal
	}

	s.invalidatePost(ctx, postID)
	s.invalidateFeed(ctx)

	return upvotes, nil
}

func (s *postService) IsUpvoted(ctx context.Context, postID int64, userID uuid.UUID) bool {
	upvoted, err := s.repo.Postgres.Post.IsUpvoted(ctx, postID, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check upvote on post(%d) by user(%s): %s", postID, userID.String(), err.Error())
		return false
	}
	return upvoted
}

func (s *postService) UploadImage(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (string, error) {
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrFileMustBeImage
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !validImageExtensions[ext] {
		return "", ErrFileMustHaveAValidExtension
	}

	key := "post-images/" + uuid.NewString() + ext
	url, err := s.files.Upload(ctx, key, file)
	if err != nil {
		s.logger.Sugar().Errorf("failed to upload post image: %s", err.Error())
		return "", ErrInternal
	}

	return url, nil
}

func (s *postService) invalidatePost(ctx context.Context, postID int64) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostKey(postID)).Err(); err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to invalidate post(%d) cache: %s", postID, err.Error())
	}
}

func (s *postService) invalidateFeed(ctx context.Context) {
	if err := s.repo.Redis.Default.DelByPattern(ctx, redisrepo.FEED_KEY_PATTERN); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate feed cache: %s", err.Error())
	}
}

func normalizeFlags(flags []string) []string {
	seen := make(map[string]bool, len(flags))
	var normalized []string
	for _, flag := range flags {
		flag = strings.ToLower(strings.TrimSpace(flag))
		if flag == "" || seen[flag] {
			continue
		}
		seen[flag] = true
		normalized = append(normalized, flag)
	}
	return normalized
}
