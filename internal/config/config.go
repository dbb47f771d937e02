// Package config provides configuration for the docqa service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Ollama settings
	OllamaURL  string
	Model      string
	LLMTimeout time.Duration

	// Document fetcher settings
	MaxPDFSizeMB int
	FetchTimeout time.Duration

	// Audit database
	DatabaseURL string

	// Request-admission policy file; empty means the built-in default policy.
	PolicyPath string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:     getEnvInt("HTTP_PORT", 8000),
		OllamaURL:    getEnv("OLLAMA_URL", "http://localhost:11434"),
		Model:        getEnv("MODEL_NAME", "deepseek-r1:1.5b"),
		LLMTimeout:   time.Duration(getEnvInt("LLM_TIMEOUT_MS", 120000)) * time.Millisecond,
		MaxPDFSizeMB: getEnvInt("MAX_PDF_SIZE_MB", 50),
		FetchTimeout: time.Duration(getEnvInt("FETCH_TIMEOUT_MS", 30000)) * time.Millisecond,
		DatabaseURL:  getEnv("DATABASE_URL", "file:docqa.db?cache=shared&mode=rwc"),
		PolicyPath:   getEnv("POLICY_PATH", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
