package cache

import (
	"context"
	"os"
	"time"

	"kenflash-backend/utils"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

// InitRedis connects to the Redis instance holding visitor sessions and
// chat channels. REDIS_URL format: redis://[:password@]host:port/db
func InitRedis() error {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return err
	}

	Client = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Client.Ping(ctx).Err(); err != nil {
		return err
	}

	utils.LogSuccess("Redis connection successful")
	return nil
}
