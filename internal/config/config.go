package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the BrandTrack server.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	AI       AIConfig
	Tracking TrackingConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

// AIConfig names the enabled AI providers and their credentials. Multiple
// providers are active in one analysis run.
type AIConfig struct {
	Providers        []string
	InferenceTimeout time.Duration
	OpenAI           OpenAIConfig
	Anthropic        AnthropicConfig
	Perplexity       PerplexityConfig
	Gemini           GeminiConfig
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type PerplexityConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// TrackingConfig controls scheduled re-analysis of tracked brands.
type TrackingConfig struct {
	// Schedule is "daily", "weekly", or "off".
	Schedule string
}

var validProviders = map[string]bool{
	"openai":     true,
	"anthropic":  true,
	"perplexity": true,
	"gemini":     true,
	"mock":       true,
}

var validSchedules = map[string]bool{
	"daily":  true,
	"weekly": true,
	"off":    true,
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("BRANDTRACK_PORT", 8080),
			Env:  envString("BRANDTRACK_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		AI: AIConfig{
			Providers:        splitCSV(os.Getenv("AI_PROVIDERS")),
			InferenceTimeout: envDurationSecs("AI_INFERENCE_TIMEOUT_SECS", 60*time.Second),
			OpenAI: OpenAIConfig{
				APIKey: os.Getenv("OPENAI_API_KEY"),
				Model:  envString("OPENAI_MODEL", "gpt-4o"),
			},
			Anthropic: AnthropicConfig{
				APIKey:  os.Getenv("ANTHROPIC_API_KEY"),
				Model:   envString("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
				BaseURL: envString("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
			},
			Perplexity: PerplexityConfig{
				APIKey:  os.Getenv("PERPLEXITY_API_KEY"),
				Model:   envString("PERPLEXITY_MODEL", "sonar"),
				BaseURL: envString("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
			},
			Gemini: GeminiConfig{
				APIKey:  os.Getenv("GEMINI_API_KEY"),
				Model:   envString("GEMINI_MODEL", "gemini-2.0-flash"),
				BaseURL: envString("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			},
		},
		Tracking: TrackingConfig{
			Schedule: envString("TRACKING_SCHEDULE", "daily"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if len(c.AI.Providers) == 0 {
		return fmt.Errorf("AI_PROVIDERS is required")
	}
	for _, p := range c.AI.Providers {
		if !validProviders[p] {
			return fmt.Errorf("AI_PROVIDERS must name only openai, anthropic, perplexity, gemini, mock; got %q", p)
		}
	}

	if c.providerEnabled("openai") && c.AI.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when AI_PROVIDERS includes openai")
	}
	if c.providerEnabled("anthropic") && c.AI.Anthropic.APIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required when AI_PROVIDERS includes anthropic")
	}
	if c.providerEnabled("perplexity") && c.AI.Perplexity.APIKey == "" {
		return fmt.Errorf("PERPLEXITY_API_KEY is required when AI_PROVIDERS includes perplexity")
	}
	if c.providerEnabled("gemini") && c.AI.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when AI_PROVIDERS includes gemini")
	}

	if !validSchedules[c.Tracking.Schedule] {
		return fmt.Errorf("TRACKING_SCHEDULE must be daily, weekly, or off; got %q", c.Tracking.Schedule)
	}

	return nil
}

func (c *Config) providerEnabled(name string) bool {
	for _, p := range c.AI.Providers {
		if p == name {
			return true
		}
	}
	return false
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(strings.ToLower(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
