package service

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/summit-seekers/forum-service/internal/model"
	"github.com/summit-seekers/forum-service/internal/repository"
	"github.com/summit-seekers/forum-service/internal/repository/redisrepo"
	"github.com/summit-seekers/forum-service/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type identityService struct {
	logger *zap.Logger
	repo *repository.Repository
}

func newIdentityService(logger *zap.Logger, repo *repository.Repository) Identity {
	return &identityService{
		logger: logger,
		repo: repo,
	}
}

// RegisterKey stores the bcrypt hash of the secret key for a client-generated
// identity id and returns a session token. While the identity has no posts the
// key may be overwritten freely; once posts exist the submitted key has to
// match the stored one, otherwise anyone could take over a posting identity.
func (s *identityService) RegisterKey(ctx context.Context, id uuid.UUID, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptySecretKey
	}

	existing, err := s.repo.Postgres.Identity.FindByID(ctx, id)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find identity(%s): %s", id.String(), err.Error())
		return "", ErrInternal
	}

	if existing != nil && existing.HasPosts {
		if bcrypt.CompareHashAndPassword([]byte(existing.SecretHash), []byte(key)) != nil {
			return "", ErrInvalidCredentials
		}
		return s.issueToken(id)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash secret key for identity(%s): %s", id.String(), err.Error())
		return "", ErrInternal
	}

	if err := s.repo.Postgres.Identity.Upsert(ctx, id, string(hash)); err != nil {
		s.logger.Sugar().Errorf("failed to upsert identity(%s): %s", id.String(), err.Error())
		return "", ErrInternal
	}

	if err := s.repo.Redis.Default.Del(ctx, redisrepo.IdentityKey(id.String())).Err(); err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to invalidate identity(%s) cache: %s", id.String(), err.Error())
	}

	return s.issueToken(id)
}

func (s *identityService) Session(ctx context.Context, id uuid.UUID, key string) (string, error) {
	identity, err := s.repo.Postgres.Identity.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find identity(%s): %s", id.String(), err.Error())
		return "", ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(identity.SecretHash), []byte(strings.TrimSpace(key))) != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(id)
}

func (s *identityService) FindByID(ctx context.Context, id uuid.UUID) (*model.Identity, error) {
	cached, err := redisrepo.Get[model.Identity](s.repo.Redis.Default, ctx, redisrepo.IdentityKey(id.String()))
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get identity(%s) from redis: %s", id.String(), err.Error())
	}

	identity, err := s.repo.Postgres.Identity.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find identity(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.IdentityKey(id.String()), identity, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set identity(%s) in redis: %s", id.String(), err.Error())
	}

	return identity, nil
}

func (s *identityService) issueToken(id uuid.UUID) (string, error) {
	ttl := viper.GetDuration("auth.session-ttl")
	if ttl == 0 {
		ttl = time.Hour * 24
	}

	token, err := utils.GenerateJWT(jwt.MapClaims{"id": id.String()}, []byte(os.Getenv("ACCESS_SECRET")), ttl)
	if err != nil {
		s.logger.Sugar().Errorf("failed to sign session token for identity(%s): %s", id.String(), err.Error())
		return "", ErrInternal
	}

	return token, nil
}
