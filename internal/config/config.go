package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Redis. Empty RedisAddr switches to the in-memory store (dev/test only).
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Auth
	JWTSecret string        // HS256 signing key
	JWTExpiry time.Duration // token lifetime (default: 168h = 7 days)

	// TMDB catalog
	TMDBBaseURL      string // default: https://api.themoviedb.org/3
	TMDBAPIKey       string // optional, empty = movie routes disabled
	TMDBImageBaseURL string // default: https://image.tmdb.org/t/p

	// Web push
	VAPIDPublicKey  string // optional, empty = push disabled
	VAPIDPrivateKey string // optional
	VAPIDSubject    string // ex: mailto:admin@movie-mate.app
	PushTTL         int    // seconds the push service keeps an undelivered message
	PushConcurrency int    // max in-flight deliveries during bulk sends

	// Feed
	FeedLimit int // max items per activity feed source

	// Bookmark reminders
	ReminderInterval   time.Duration // how often the reminder loop scans (default: 24h)
	ReminderStaleAfter time.Duration // bookmark age before a reminder fires (default: 168h)

	SeedFile string // path to a users.yaml seed file (optional, empty = no seeding)

	AllowedOrigins []string // CORS origins for the browser frontend
	TrustProxy     bool     // true => trust X-Forwarded-For headers

	// Rate limiting on auth endpoints
	AuthRateLimit  int           // attempts per window per IP (0 = disabled)
	AuthRateWindow time.Duration // window the attempts are counted over
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("MOVIEMATE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("MOVIEMATE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("MOVIEMATE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("MOVIEMATE_PRETTY_LOG", true),

		// Redis settings
		RedisAddr:             getenv("MOVIEMATE_REDIS_ADDR", ""),
		RedisUser:             getenv("MOVIEMATE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("MOVIEMATE_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("MOVIEMATE_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("MOVIEMATE_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Auth
		JWTSecret: requireEnv("MOVIEMATE_JWT_SECRET"),
		JWTExpiry: mustDuration("MOVIEMATE_JWT_EXPIRY", 168*time.Hour),

		// TMDB
		TMDBBaseURL:      getenv("MOVIEMATE_TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBAPIKey:       getenv("MOVIEMATE_TMDB_API_KEY", ""),
		TMDBImageBaseURL: getenv("MOVIEMATE_TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p"),

		// Web push
		VAPIDPublicKey:  getenv("MOVIEMATE_VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey: getenv("MOVIEMATE_VAPID_PRIVATE_KEY", ""),
		VAPIDSubject:    getenv("MOVIEMATE_VAPID_SUBJECT", "mailto:admin@movie-mate.app"),
		PushTTL:         getenvInt("MOVIEMATE_PUSH_TTL", 86400),
		PushConcurrency: getenvInt("MOVIEMATE_PUSH_CONCURRENCY", 64),

		// Feed
		FeedLimit: getenvInt("MOVIEMATE_FEED_LIMIT", 10),

		// Bookmark reminders
		ReminderInterval:   mustDuration("MOVIEMATE_REMINDER_INTERVAL", 24*time.Hour),
		ReminderStaleAfter: mustDuration("MOVIEMATE_REMINDER_STALE_AFTER", 168*time.Hour),

		SeedFile: getenv("MOVIEMATE_SEED_FILE", ""),

		AllowedOrigins: splitAndTrim(getenv("MOVIEMATE_ALLOWED_ORIGINS", "http://localhost:3000")),
		TrustProxy:     mustBool("MOVIEMATE_TRUST_PROXY", true),

		AuthRateLimit:  getenvInt("MOVIEMATE_AUTH_RATE_LIMIT", 10),
		AuthRateWindow: mustDuration("MOVIEMATE_AUTH_RATE_WINDOW", time.Minute),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: MOVIEMATE_REDIS_PASSWORD is required when MOVIEMATE_REDIS_PASSWORD_REQUIRED=true")
	}

	// Push needs both halves of the VAPID key pair
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey == "" {
		panic("❌ FATAL: MOVIEMATE_VAPID_PRIVATE_KEY is required when MOVIEMATE_VAPID_PUBLIC_KEY is set")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		cfgCopy.JWTSecret = "***REDACTED***"
		cfgCopy.TMDBAPIKey = "***REDACTED***"
		cfgCopy.VAPIDPrivateKey = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
