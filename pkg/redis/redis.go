package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/opsio/esignpro-backend/pkg/config"
	"github.com/opsio/esignpro-backend/pkg/logger"
)

var (
	// Client is the global redis client (nil when the cache is disabled)
	Client *redis.Client

	isRedisEnabled bool
)

// Init initializes the redis connection. A disabled or unreachable redis
// degrades gracefully: template reads fall back to the database.
func Init(cfg *config.RedisConfig) error {
	if !cfg.Enabled {
		logger.Infof("Redis is disabled in config - template cache off")
		isRedisEnabled = false
		return nil
	}

	cfg.SetDefaults()

	Client = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.ConnectTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ConnectTimeout)*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		Client.Close()
		Client = nil
		isRedisEnabled = false
		return fmt.Errorf("failed to connect to Redis at %s:%d: %w (template cache off)", cfg.Host, cfg.Port, err)
	}

	isRedisEnabled = true
	logger.Infof("Connected to Redis at %s:%d (DB: %d, PoolSize: %d)",
		cfg.Host, cfg.Port, cfg.DB, cfg.PoolSize)
	return nil
}

// Close closes the redis connection
func Close() error {
	if Client != nil {
		err := Client.Close()
		Client = nil
		isRedisEnabled = false
		return err
	}
	return nil
}

// IsEnabled reports whether redis is enabled and connected
func IsEnabled() bool {
	return Client != nil && isRedisEnabled
}

// GetClient returns the redis client (nil when disabled)
func GetClient() *redis.Client {
	return Client
}
