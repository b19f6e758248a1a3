package service

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/summit-seekers/forum-service/internal/dto"
	"github.com/summit-seekers/forum-service/internal/feed"
	"github.com/summit-seekers/forum-service/internal/model"
	"github.com/summit-seekers/forum-service/internal/repository"
	"go.uber.org/zap"
)

type Identity interface {
	RegisterKey(ctx context.Context, id uuid.UUID, key string) (string, error)
	Session(ctx context.Context, id uuid.UUID, key string) (string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Identity, error)
}

type Post interface {
	Create(ctx context.Context, userID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	Feed(ctx context.Context, sortKey feed.SortKey, searchTerm string, flags []string, limit int, offset int) ([]*model.FullPost, error)
	Edit(ctx context.Context, postID int64, callerID uuid.UUID, input dto.EditPostRequest) (*model.FullPost, error)
	Delete(ctx context.Context, postID int64, callerID uuid.UUID) error
	Upvote(ctx context.Context, postID int64, userID uuid.UUID) (int64, error)
	IsUpvoted(ctx context.Context, postID int64, userID uuid.UUID) bool
	UploadImage(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (string, error)
}

type Comment interface {
	Create(ctx context.Context, postID int64, userID uuid.UUID, content string) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64, limit int, offset int) ([]*model.Comment, error)
}

// FileStore is where uploaded post images end up; the returned string is
// the public URL.
type FileStore interface {
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
}

type Service struct {
	Identity
	Post
	Comment
}

func New(logger *zap.Logger, repo *repository.Repository, files FileStore) *Service {
	return &Service{
		Identity: newIdentityService(logger, repo),
		Post: newPostService(logger, repo, files),
		Comment: newCommentService(logger, repo),
	}
}
