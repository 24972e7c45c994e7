package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	authUtils "youtube-be/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware("secret"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UserIDKey))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := authUtils.GenerateToken("user-1", "secret", time.Hour)
	require.NoError(t, err)
	forged, err := authUtils.GenerateToken("user-1", "other", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"no header", "", http.StatusUnauthorized, ""},
		{"not bearer", valid, http.StatusUnauthorized, ""},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, ""},
		{"forged", "Bearer " + forged, http.StatusUnauthorized, ""},
		{"valid", "Bearer " + valid, http.StatusOK, "user-1"},
	}

	r := newAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestLogger_RequestID(t *testing.T) {
	r := gin.New()
	r.Use(Logger())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestVoteRateLimiter(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS not set, skipping Redis integration test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not reachable: %v", err)
	}

	prefix := "vote_limit_test_" + uuid.NewString()
	r := gin.New()
	r.POST("/vote", func(c *gin.Context) {
		c.Set(UserIDKey, "user-1")
		c.Next()
	}, VoteRateLimiter(rdb, prefix, 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/vote", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	rdb.Del(context.Background(), prefix+":user-1")
}

func TestVoteRateLimiter_RequiresUser(t *testing.T) {
	r := gin.New()
	r.POST("/vote", VoteRateLimiter(nil, "p", 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/vote", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
