package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds the assistant service settings read from the environment
type ServerConfig struct {
	Port string

	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterBaseURL string

	// ResumePath points at the JSON document the assistant answers from
	ResumePath string
	// MySQLDSN enables the chat log when set
	MySQLDSN string

	AllowedOrigins     string
	RateLimitPerMinute int
	ShutdownTimeout    time.Duration
}

// Server defaults
const (
	DefaultPort              = "8000"
	DefaultOpenRouterModel   = "arcee-ai/trinity-large-preview:free"
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultResumePath        = "resume.json"
	DefaultAllowedOrigins    = "*"
	DefaultRateLimit         = 30
)

// LoadServerConfig reads .env files (missing files are skipped) and then the
// process environment. Variables already set in the environment win.
func LoadServerConfig(envFiles ...string) (ServerConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return ServerConfig{}, fmt.Errorf("failed to stat %s: %w", f, err)
		}
		if err := godotenv.Load(f); err != nil {
			return ServerConfig{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	rateLimit, err := getEnvInt("RATE_LIMIT_PER_MINUTE", DefaultRateLimit)
	if err != nil {
		return ServerConfig{}, err
	}

	shutdownSeconds, err := getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 15)
	if err != nil {
		return ServerConfig{}, err
	}

	return ServerConfig{
		Port:               getEnv("PORT", DefaultPort),
		OpenRouterAPIKey:   getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterModel:    getEnv("OPENROUTER_MODEL", DefaultOpenRouterModel),
		OpenRouterBaseURL:  getEnv("OPENROUTER_BASE_URL", DefaultOpenRouterBaseURL),
		ResumePath:         getEnv("RESUME_PATH", DefaultResumePath),
		MySQLDSN:           getEnv("MYSQL_DSN", ""),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", DefaultAllowedOrigins),
		RateLimitPerMinute: rateLimit,
		ShutdownTimeout:    time.Duration(shutdownSeconds) * time.Second,
	}, nil
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Origins splits AllowedOrigins on commas
func (c ServerConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, value)
	}
	return n, nil
}
