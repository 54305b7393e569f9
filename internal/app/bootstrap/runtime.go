package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/SteveHoareau18/timetravelagency/internal/booking"
	"github.com/SteveHoareau18/timetravelagency/internal/chat"
	appconfig "github.com/SteveHoareau18/timetravelagency/internal/config"
	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
)

const sessionStoreRedis = "redis"

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || cfg.SessionStore != sessionStoreRedis || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, falling back to in-memory sessions", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildSessionStores picks Redis-backed stores when a client is available and
// process-local ones otherwise.
func BuildSessionStores(cfg *appconfig.Config, redisClient *redis.Client) (booking.SessionStore, chat.TranscriptStore) {
	ttl := cfg.SessionTTL
	if redisClient != nil {
		return booking.NewRedisStore(redisClient, ttl), chat.NewRedisTranscript(redisClient, ttl)
	}
	return booking.NewMemoryStore(ttl), chat.NewMemoryTranscript(ttl)
}
