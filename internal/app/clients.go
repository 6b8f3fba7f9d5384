package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

type Clients struct {
	Redis *redis.Client
}

// wireClients connects optional external clients. Redis is best-effort: a
// missing or unreachable instance leaves the plan-view cache disabled.
func wireClients(log *logger.Logger, cfg Config) Clients {
	var clients Clients
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set; plan view cache disabled")
		return clients
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable; plan view cache disabled", "addr", cfg.RedisAddr, "error", err)
		_ = client.Close()
		return clients
	}
	clients.Redis = client
	return clients
}
