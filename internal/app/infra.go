package app

import (
	"context"

	"github.com/jeffandersoncharriot/ByteBoard/internal/config"
	"github.com/jeffandersoncharriot/ByteBoard/internal/logger"
	"github.com/jeffandersoncharriot/ByteBoard/internal/redis"
	"github.com/jeffandersoncharriot/ByteBoard/internal/session"
	"github.com/jeffandersoncharriot/ByteBoard/internal/store"
)

type Infra struct {
	Store    *store.Store
	Sessions session.Store
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	st, err := store.Open(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	// Sessions live in Redis when an address is configured, otherwise in
	// process memory. Both stores behave identically.
	var sessions session.Store = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		sessions = session.NewRedisStore(redisClient.Client)

		logger.Info("redis ready", nil)
	}

	return &Infra{
		Store:    st,
		Sessions: sessions,
	}, nil
}
