package redis

import (
	"atithi/config"
	"context"
	"fmt"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func New(config *config.Config) *goRedis.Client {
	ctx := context.Background()
	client := goRedis.NewClient(&goRedis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Limiter.Redis.Host, config.Limiter.Redis.Port),
		Password: config.Limiter.Redis.Password,
		DB:       config.Limiter.Redis.DB,
	})

	_, err := client.Ping(ctx).Result()

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
		panic(err)
	}

	log.Info().
		Int("db", config.Limiter.Redis.DB).
		Str("host", config.Limiter.Redis.Host).
		Str("port", config.Limiter.Redis.Port).
		Msg("Connected to Redis")

	return client
}
