package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/scoreline/score-sync/internal/domain"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a sensible default; only DATABASE_URL is required.
type Config struct {
	// Server
	HTTPPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Database
	DatabaseURL   string
	DBMaxConns    int32
	DBMinConns    int32
	MigrationsDir string

	// Live score feed
	FeedProvider  string
	FeedBaseURL   string
	FeedAPIToken  string
	FeedTimeout   time.Duration
	FeedRateLimit int

	// Score sync job
	NotifyMode         domain.NotifyMode
	SyncInterval       time.Duration
	SyncBudget         time.Duration
	SyncAcceptSnapshot bool

	// Auth: HS256 secret shared with the hosted identity provider.
	JWTSecret              string
	SyncRequireServiceRole bool

	// Requests per second per client IP on the public API.
	RateLimit int
}

func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	mode := domain.NotifyMode(strings.ToLower(getEnv("NOTIFY_MODE", string(domain.NotifyOnDelta))))
	if !mode.IsValid() {
		return nil, fmt.Errorf("NOTIFY_MODE must be %q or %q, got %q", domain.NotifyOnDelta, domain.NotifyEveryPoll, mode)
	}

	provider := strings.ToLower(getEnv("FEED_PROVIDER", "demo"))
	baseURL := getEnv("FEED_BASE_URL", "")
	if provider == "http" && baseURL == "" {
		return nil, fmt.Errorf("FEED_BASE_URL is required when FEED_PROVIDER=http")
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ReadTimeout:     getDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 45*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		DatabaseURL:   dbURL,
		DBMaxConns:    int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getInt("DB_MIN_CONNS", 2)),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),

		FeedProvider:  provider,
		FeedBaseURL:   baseURL,
		FeedAPIToken:  getEnv("FEED_API_TOKEN", ""),
		FeedTimeout:   getDuration("FEED_TIMEOUT", 10*time.Second),
		FeedRateLimit: getInt("FEED_RATE_LIMIT", 1),

		NotifyMode:         mode,
		SyncInterval:       getDuration("SYNC_INTERVAL", 60*time.Second),
		SyncBudget:         getDuration("SYNC_BUDGET", 30*time.Second),
		SyncAcceptSnapshot: getBool("SYNC_ACCEPT_SNAPSHOT", false),

		JWTSecret:              getEnv("JWT_SECRET", ""),
		SyncRequireServiceRole: getBool("SYNC_REQUIRE_SERVICE_ROLE", true),

		RateLimit: getInt("RATE_LIMIT_PER_IP", 20),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
