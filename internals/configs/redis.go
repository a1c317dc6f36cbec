package configs

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis mengembalikan nil kalau REDIS_ADDR kosong / tidak bisa di-ping.
// Pemakai wajib siap dengan client nil (fallback ke DB).
func ConnectRedis(cfg Config) *redis.Client {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR tidak diset, cache blacklist token dimatikan")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("❌ Redis tidak bisa dihubungi (%s): %v", addr, err)
		_ = rdb.Close()
		return nil
	}

	log.Println("✅ Redis connected.")
	return rdb
}
