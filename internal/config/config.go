// ABOUTME: Centralized configuration for the triage query router
// ABOUTME: Loads from environment variables (and optional .env files) with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// AppName names the XDG config directory
const AppName = "triage"

// Trace exporters accepted by TRIAGE_TRACE
const (
	TraceOff    = "off"
	TraceStdout = "stdout"
)

// Config holds all configuration for the router
type Config struct {
	// OpenAI settings
	OpenAIKey     string
	OpenAIBaseURL string
	ChatModel     string
	Timeout       time.Duration // 0 means no per-call deadline
	MaxRetries    int
	RetryDelay    time.Duration

	// Tavily settings
	TavilyKey     string
	TavilyBaseURL string
	MaxResults    int

	// Observability
	Trace string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		ChatModel:     getEnv("TRIAGE_OPENAI_MODEL", "gpt-4o-mini"),
		Timeout:       getEnvDuration("OPENAI_TIMEOUT", 0),
		MaxRetries:    getEnvInt("OPENAI_MAX_RETRIES", 0),
		RetryDelay:    getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		TavilyKey:     os.Getenv("TAVILY_API_KEY"),
		TavilyBaseURL: getEnv("TAVILY_BASE_URL", "https://api.tavily.com"),
		MaxResults:    getEnvInt("TAVILY_MAX_RESULTS", 3),
		Trace:         strings.ToLower(getEnv("TRIAGE_TRACE", TraceOff)),
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges and the trace exporter name
func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.MaxResults < 1 || c.MaxResults > 20 {
		return fmt.Errorf("TAVILY_MAX_RESULTS must be 1-20, got %d", c.MaxResults)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("OPENAI_TIMEOUT must not be negative, got %v", c.Timeout)
	}
	if c.Trace != TraceOff && c.Trace != TraceStdout {
		return fmt.Errorf("TRIAGE_TRACE must be %q or %q, got %q", TraceOff, TraceStdout, c.Trace)
	}
	return nil
}

// HasModel reports whether a language model key is configured
func (c *Config) HasModel() bool {
	return c.OpenAIKey != ""
}

// DotEnvPaths returns the .env files consulted by LoadDotEnv, highest precedence first
func DotEnvPaths() []string {
	return []string{
		".env",
		filepath.Join(xdg.ConfigHome, AppName, ".env"),
	}
}

// LoadDotEnv loads any existing .env files into the process environment.
// Variables already set are never overridden. Returns the files that were loaded.
func LoadDotEnv() ([]string, error) {
	var loaded []string
	for _, path := range DotEnvPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, fmt.Errorf("loading %s: %w", path, err)
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
