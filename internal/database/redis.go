package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/miron-alexandru/PlayStyleCompass/internal/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Chat quotas and presence caching will be disabled.", err)
		Redis = nil
		return
	}
	log.Println("Connected to Redis successfully")
}

// CheckMessageQuota enforces a fixed-window send quota for the global chat.
// It returns whether the send is allowed and, when it is not, how many
// seconds remain until the window resets (the client runs a countdown off
// this value).
func CheckMessageQuota(username string, limit int, window time.Duration) (bool, int, error) {
	if Redis == nil {
		return true, 0, nil
	}
	key := fmt.Sprintf("global_message_count_%s", username)
	count, err := Redis.Incr(Ctx, key).Result()
	if err != nil {
		return false, 0, err
	}

	if count == 1 {
		Redis.Expire(Ctx, key, window)
	}

	if count > int64(limit) {
		ttl, err := Redis.TTL(Ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = window
		}
		return false, int(ttl.Seconds()), nil
	}
	return true, 0, nil
}

// Presence cache: last-online timestamps survive process restarts so the
// "last seen" line stays meaningful after a deploy.

func SetLastOnline(userID string, at time.Time) error {
	if Redis == nil {
		return nil
	}
	key := fmt.Sprintf("last_online:%s", userID)
	return Redis.Set(Ctx, key, at.Format(time.RFC3339), 0).Err()
}

func GetLastOnline(userID string) (time.Time, bool) {
	if Redis == nil {
		return time.Time{}, false
	}
	key := fmt.Sprintf("last_online:%s", userID)
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Caching
func CacheSet(key string, value interface{}, expiration time.Duration) error {
	if Redis == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, data, expiration).Err()
}

var ErrCacheMiss = errors.New("cache miss")

func CacheGet(key string, dest interface{}) error {
	if Redis == nil {
		return ErrCacheMiss
	}
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}
