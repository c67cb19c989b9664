// Package config loads suite configuration from the environment. Base URLs
// are injected here rather than hard-coded in tests, so the same suite runs
// against the hermetic mock server or a real reader deployment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the E2E suite and the mock server read from the
// environment.
type Config struct {
	// ReaderBaseURL points the suite at an already-running reader instance.
	// Empty means each test boots its own mock server on a random port.
	ReaderBaseURL string

	// Headless controls the Chrome launch mode for e2e runs.
	Headless bool

	// NavTimeout bounds navigation and element waits.
	NavTimeout time.Duration

	// ArticleCount is how many fixture articles the mock server seeds.
	ArticleCount int

	// Addr is the listen address for `readermock serve`.
	Addr string

	// LogLevel and LogPretty configure zerolog.
	LogLevel  string
	LogPretty bool
}

// Load reads .env (when present) and the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ReaderBaseURL: getEnv("READER_BASE_URL", ""),
		Headless:      getEnvAsBool("READER_HEADLESS", true),
		NavTimeout:    getEnvAsDuration("READER_NAV_TIMEOUT", 30*time.Second),
		ArticleCount:  getEnvAsInt("READER_ARTICLE_COUNT", 50),
		Addr:          getEnv("READER_ADDR", ":8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogPretty:     getEnvAsBool("LOG_PRETTY", false),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvAsInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
