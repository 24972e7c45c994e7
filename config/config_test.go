package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5050", cfg.Port)
	assert.Equal(t, "yut", cfg.MongoDatabase)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 60, cfg.VoteRateLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.VoteLockEnabled)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("VOTE_LOCK_ENABLED", "true")
	t.Setenv("VOTE_LOCK_TTL", "2s")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.VoteLockEnabled)
	assert.Equal(t, 2*time.Second, cfg.VoteLockTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing mongo uri",
			env:     map[string]string{"JWT_SECRET": "s"},
			wantErr: "MONGODB_URI",
		},
		{
			name:    "missing jwt secret",
			env:     map[string]string{"MONGODB_URI": "mongodb://x"},
			wantErr: "JWT_SECRET",
		},
		{
			name:    "bad duration",
			env:     map[string]string{"MONGODB_URI": "mongodb://x", "JWT_SECRET": "s", "JWT_TTL": "soon"},
			wantErr: "JWT_TTL",
		},
		{
			name:    "lock without redis",
			env:     map[string]string{"MONGODB_URI": "mongodb://x", "JWT_SECRET": "s", "VOTE_LOCK_ENABLED": "1"},
			wantErr: "REDIS_ADDRESS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MONGODB_URI", "")
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
