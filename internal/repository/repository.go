package repository

import (
	"github.com/redis/go-redis/v9"
	"github.com/summit-seekers/forum-service/internal/repository/postgres"
	"github.com/summit-seekers/forum-service/internal/repository/redisrepo"
)

type Repository struct {
	Postgres *postgres.PostgresRepository
	Redis *redisrepo.RedisRepository
}

func New(db postgres.DB, rdb *redis.Client) *Repository {
	return &Repository{
		Postgres: postgres.New(db),
		Redis: redisrepo.New(rdb),
	}
}
