package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server settings read from the environment.
type Config struct {
	Port string

	MongoURI      string
	MongoDatabase string

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// VoteRateLimit is the number of vote requests a user may send per
	// VoteRateWindow. Zero disables the limiter.
	VoteRateLimit   int
	VoteRateWindow  time.Duration
	VoteLimitPrefix string

	VoteLockEnabled bool
	VoteLockTTL     time.Duration

	MediaDir    string
	CORSOrigins []string
	GinMode     string
}

// Default returns the configuration used when no variable is set.
func Default() *Config {
	return &Config{
		Port:            "5050",
		MongoDatabase:   "yut",
		JWTTTL:          7 * 24 * time.Hour,
		VoteRateLimit:   60,
		VoteRateWindow:  time.Minute,
		VoteLimitPrefix: "vote_limit",
		VoteLockTTL:     5 * time.Second,
		MediaDir:        "media",
		CORSOrigins:     []string{"*"},
	}
}

// Load reads .env (if present) and the process environment.
// Priority: env vars > .env > defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := Default()
	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFromEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	c.MongoURI = os.Getenv("MONGODB_URI")
	if v := os.Getenv("MONGODB_DATABASE"); v != "" {
		c.MongoDatabase = v
	}
	c.JWTSecret = os.Getenv("JWT_SECRET")
	c.RedisAddress = os.Getenv("REDIS_ADDRESS")
	c.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if v := os.Getenv("REDIS_QUEUE_FOR_VOTE_LIMIT"); v != "" {
		c.VoteLimitPrefix = v
	}
	if v := os.Getenv("MEDIA_DIR"); v != "" {
		c.MediaDir = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	c.GinMode = os.Getenv("GIN_MODE")

	var err error
	if c.JWTTTL, err = durationEnv("JWT_TTL", c.JWTTTL); err != nil {
		return err
	}
	if c.RedisDB, err = intEnv("REDIS_DB", c.RedisDB); err != nil {
		return err
	}
	if c.VoteRateLimit, err = intEnv("VOTE_RATE_LIMIT", c.VoteRateLimit); err != nil {
		return err
	}
	if c.VoteRateWindow, err = durationEnv("VOTE_RATE_WINDOW", c.VoteRateWindow); err != nil {
		return err
	}
	if c.VoteLockTTL, err = durationEnv("VOTE_LOCK_TTL", c.VoteLockTTL); err != nil {
		return err
	}
	if v := os.Getenv("VOTE_LOCK_ENABLED"); v != "" {
		c.VoteLockEnabled = v == "true" || v == "1"
	}
	return nil
}

// Validate reports the first missing or inconsistent setting.
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("please define the MONGODB_URI environment variable")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.VoteRateLimit < 0 {
		return fmt.Errorf("VOTE_RATE_LIMIT must be non-negative")
	}
	if c.VoteRateLimit > 0 && c.VoteRateWindow <= 0 {
		return fmt.Errorf("VOTE_RATE_WINDOW must be positive")
	}
	if c.VoteLockEnabled {
		if c.RedisAddress == "" {
			return fmt.Errorf("VOTE_LOCK_ENABLED requires REDIS_ADDRESS")
		}
		if c.VoteLockTTL <= 0 {
			return fmt.Errorf("VOTE_LOCK_TTL must be positive")
		}
	}
	return nil
}

// RedisEnabled reports whether a Redis server was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddress != ""
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
