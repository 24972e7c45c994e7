package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS not set, skipping Redis integration test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not reachable: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisLocker_ExcludesSamePair(t *testing.T) {
	rdb := setupTestRedis(t)
	locker := NewRedisLocker(rdb, 5*time.Second)
	ctx := context.Background()
	videoID, userID := primitive.NewObjectID(), primitive.NewObjectID()

	release, err := locker.Acquire(ctx, videoID, userID)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, videoID, userID)
	assert.ErrorIs(t, err, ErrVoteInProgress)

	other, err := locker.Acquire(ctx, videoID, primitive.NewObjectID())
	require.NoError(t, err)
	other()

	release()
	again, err := locker.Acquire(ctx, videoID, userID)
	require.NoError(t, err)
	again()
}

func TestRedisLocker_ReleaseKeepsForeignLock(t *testing.T) {
	rdb := setupTestRedis(t)
	locker := NewRedisLocker(rdb, 5*time.Second)
	ctx := context.Background()
	videoID, userID := primitive.NewObjectID(), primitive.NewObjectID()
	key := fmtVoteLockKey(videoID, userID)

	release, err := locker.Acquire(ctx, videoID, userID)
	require.NoError(t, err)

	// simulate expiry and takeover by another request
	require.NoError(t, rdb.Set(ctx, key, "someone-else", 5*time.Second).Err())
	release()

	val, err := rdb.Get(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, "someone-else", val)
	require.NoError(t, rdb.Del(ctx, key).Err())
}
