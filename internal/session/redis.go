package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis persists sessions as one hash per browser session.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to redis with short timeouts.
func NewRedis(addr, password string, db int) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Redis{client: client}
}

// Healthy verifies redis connectivity.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.client == nil {
		return false
	}
	return r.client.Ping(ctx).Err() == nil
}

func sessionKey(sid string) string {
	return "campulse:session:" + sid
}

// Get returns the value for key, or ErrNotFound.
func (r *Redis) Get(ctx context.Context, sid, key string) (string, error) {
	val, err := r.client.HGet(ctx, sessionKey(sid), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores value under key for the session. No TTL is applied; entries
// live until an explicit Remove.
func (r *Redis) Set(ctx context.Context, sid, key, value string) error {
	return r.client.HSet(ctx, sessionKey(sid), key, value).Err()
}

// Remove deletes key for the session.
func (r *Redis) Remove(ctx context.Context, sid, key string) error {
	return r.client.HDel(ctx, sessionKey(sid), key).Err()
}
