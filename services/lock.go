package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// releaseScript deletes the lock only if it still holds our token, so an
// expired lock re-acquired by another request is left alone.
var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`)

// RedisLocker is a Locker backed by SET NX with a TTL.
type RedisLocker struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisLocker(rdb redis.Cmdable, ttl time.Duration) *RedisLocker {
	return &RedisLocker{rdb: rdb, ttl: ttl}
}

func fmtVoteLockKey(videoID, userID primitive.ObjectID) string {
	return fmt.Sprintf("lock:vote:%s:%s", videoID.Hex(), userID.Hex())
}

func (l *RedisLocker) Acquire(ctx context.Context, videoID, userID primitive.ObjectID) (func(), error) {
	key := fmtVoteLockKey(videoID, userID)
	token := uuid.NewString()

	locked, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get lock, key=%s: %w", ErrPersistence, key, err)
	}
	if !locked {
		return nil, ErrVoteInProgress
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil {
			log.Printf("failed to release lock %s: %v", key, err)
		}
	}, nil
}
