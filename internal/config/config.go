package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	apperrors "github.com/namastra/namastra-go/pkg/errors"
)

type Config struct {
	Server  ServerConfig
	Site    SiteConfig
	Redis   RedisConfig
	Gemini  GeminiConfig
	OpenAI  OpenAIConfig
	AI      AIConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type SiteConfig struct {
	BaseURL string
	Name    string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Enabled reports whether a Redis cache is configured at all.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type AIConfig struct {
	RequestTimeout time.Duration
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("SERVER_ADDR", ":8080"),
			ReadTimeout:     time.Duration(getEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second,
			WriteTimeout:    time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 30)) * time.Second,
			ShutdownTimeout: time.Duration(getEnvInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Site: SiteConfig{
			BaseURL: strings.TrimRight(getEnv("SITE_BASE_URL", "https://namastra.com"), "/"),
			Name:    getEnv("SITE_NAME", "NamAstra"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		AI: AIConfig{
			RequestTimeout: time.Duration(getEnvInt("AI_REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks cross-field consistency. Model credentials are optional:
// without them the wish parser runs in heuristic-only mode.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return apperrors.NewValidationError("SERVER_ADDR is required", "SERVER_ADDR", c.Server.Addr)
	}
	if c.Site.BaseURL == "" {
		return apperrors.NewValidationError("SITE_BASE_URL is required", "SITE_BASE_URL", c.Site.BaseURL)
	}
	if !strings.HasPrefix(c.Site.BaseURL, "http://") && !strings.HasPrefix(c.Site.BaseURL, "https://") {
		return apperrors.NewValidationError("SITE_BASE_URL must be an absolute URL", "SITE_BASE_URL", c.Site.BaseURL)
	}
	if c.AI.RequestTimeout <= 0 {
		return apperrors.NewValidationError("AI_REQUEST_TIMEOUT_SECONDS must be positive", "AI_REQUEST_TIMEOUT_SECONDS", c.AI.RequestTimeout)
	}
	return nil
}

// HasModelCredentials reports whether any external model provider is usable.
func (c *Config) HasModelCredentials() bool {
	return c.Gemini.APIKey != "" || c.OpenAI.APIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
