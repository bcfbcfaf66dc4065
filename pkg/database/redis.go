package database

import (
	"context"
	"fmt"
	"log"
	"studyquest_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis 连接Redis。聊天历史属于尽力而为的功能，调用方决定连接失败是否致命。
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	ctx := context.Background()
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	log.Println("Redis connection established")
	return rdb, nil
}
