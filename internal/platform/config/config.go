package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration. Everything comes from the
// environment so main stays lean.
type Server struct {
	Addr          string
	DatabaseURL   string
	Redis         RedisConfig
	JWTSigningKey string

	// FetchConcurrency caps parallel per-workspace fetches per resource.
	FetchConcurrency int
	// PartitionTimeout bounds each per-workspace fetch.
	PartitionTimeout time.Duration
	// StatsCacheTTL bounds staleness of cached per-workspace rollups.
	StatsCacheTTL time.Duration
}

// RedisConfig carries Redis connection settings. Empty URL disables the
// stats cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("WORKSCOPE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default, override in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   os.Getenv("WORKSCOPE_DATABASE_URL"),
		JWTSigningKey: jwtSigningKey,
		Redis: RedisConfig{
			URL:          os.Getenv("WORKSCOPE_REDIS_URL"),
			PoolSize:     envInt("WORKSCOPE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("WORKSCOPE_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("WORKSCOPE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("WORKSCOPE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("WORKSCOPE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		FetchConcurrency: envInt("WORKSCOPE_FETCH_CONCURRENCY", 8),
		PartitionTimeout: envDuration("WORKSCOPE_PARTITION_TIMEOUT", 5*time.Second),
		StatsCacheTTL:    envDuration("WORKSCOPE_STATS_CACHE_TTL", 60*time.Second),
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
