package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	MongoURI       string
	MongoDB        string // database name; empty means the one named in MongoURI
	RedisURI       string // optional; enables token revocation for deleted accounts
	JWTSecret      string
	JWTTTL         time.Duration
	Port           string
	FrontendURL    string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	Environment    string   // ENV: production, development, etc.
	LogLevel       string
	RequestTimeout time.Duration // bound on store calls per request

	GitHubClientID string
	GitHubSecret   string
	GitHubToken    string // personal access token; preferred over client id/secret
	GitHubAPIURL   string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	return &Config{
		MongoURI:       getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/devconnect")),
		MongoDB:        getEnv("MONGO_DB", ""),
		RedisURI:       getEnv("REDIS_URI", ""),
		JWTSecret:      getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:         getDuration("JWT_TTL", 100*time.Hour),
		Environment:    env,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Port:           getEnv("PORT", "5000"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: allowedOrigins,
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 5*time.Second),
		GitHubClientID: getEnv("GITHUB_CLIENT_ID", ""),
		GitHubSecret:   getEnv("GITHUB_SECRET", ""),
		GitHubToken:    getEnv("GITHUB_TOKEN", ""),
		GitHubAPIURL:   getEnv("GITHUB_API_URL", "https://api.github.com"),
	}
}

// Validate rejects settings the server cannot run with safely.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.MongoURI) == "" {
		errs = append(errs, errors.New("MONGODB_URI is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be changed in production"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go durations ("100h") or plain seconds ("360000").
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	secs, err := strconv.ParseInt(value, 10, 64)
	if err != nil || secs < 0 {
		return defaultValue
	}
	return time.Duration(secs) * time.Second
}
