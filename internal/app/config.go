package app

import (
	"time"

	"github.com/planvane/planvane-backend/internal/pkg/logger"
	"github.com/planvane/planvane-backend/internal/utils"
)

type Config struct {
	Port             string
	RedisAddr        string
	RedisPassword    string
	PlanViewCacheTTL time.Duration
	Environment      string
	Version          string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	redisPassword := utils.GetEnv("REDIS_PASSWORD", "", log)
	cacheTTLSeconds := utils.GetEnvAsInt("PLAN_VIEW_CACHE_TTL", 300, log)
	environment := utils.GetEnv("ENVIRONMENT", "development", log)
	version := utils.GetEnv("SERVICE_VERSION", "dev", log)
	return Config{
		Port:             port,
		RedisAddr:        redisAddr,
		RedisPassword:    redisPassword,
		PlanViewCacheTTL: time.Duration(cacheTTLSeconds) * time.Second,
		Environment:      environment,
		Version:          version,
	}
}
