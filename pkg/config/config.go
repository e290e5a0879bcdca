package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported generation backends.
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

type Config struct {
	Port        string `yaml:"port"`
	DatabaseURL string `yaml:"database_url"`
	LogLevel    string `yaml:"log_level"`
	CORSOrigins string `yaml:"cors_origins"`

	LLMProvider     string        `yaml:"llm_provider"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`

	GeminiAPIKey  string `yaml:"gemini_api_key"`
	GeminiModel   string `yaml:"gemini_model"`
	GeminiBaseURL string `yaml:"gemini_base_url"`

	OpenRouterAPIKey   string `yaml:"openrouter_api_key"`
	OpenRouterBase     string `yaml:"openrouter_base"`
	OpenRouterModel    string `yaml:"openrouter_model"`
	OpenRouterAppTitle string `yaml:"openrouter_app_title"`
	OpenRouterReferer  string `yaml:"openrouter_referer"`
}

func defaults() Config {
	return Config{
		Port:            "5000",
		LogLevel:        "info",
		CORSOrigins:     "*",
		LLMProvider:     ProviderGemini,
		UpstreamTimeout: 60 * time.Second,
		GeminiModel:     "gemini-2.5-flash",
		OpenRouterBase:  "https://openrouter.ai/api/v1",
		OpenRouterModel: "qwen/qwen2.5-32b-instruct",
	}
}

// Load builds the configuration in three layers: built-in defaults, the YAML
// file named by LEGALASSIST_CONFIG (if any), then environment variables,
// optionally read from a .env file if present.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("LEGALASSIST_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	c.Port = getEnv("PORT", c.Port)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.CORSOrigins = getEnv("CORS_ORIGINS", c.CORSOrigins)

	c.LLMProvider = getEnv("LLM_PROVIDER", c.LLMProvider)
	c.UpstreamTimeout = getEnvDuration("UPSTREAM_TIMEOUT", c.UpstreamTimeout)

	c.GeminiAPIKey = getEnv("GEMINI_API_KEY", c.GeminiAPIKey)
	c.GeminiModel = getEnv("GEMINI_MODEL", c.GeminiModel)
	c.GeminiBaseURL = getEnv("GEMINI_BASE_URL", c.GeminiBaseURL)

	c.OpenRouterAPIKey = getEnv("OPENROUTER_API_KEY", c.OpenRouterAPIKey)
	c.OpenRouterBase = getEnv("OPENROUTER_BASE_URL", c.OpenRouterBase)
	c.OpenRouterModel = getEnv("OPENROUTER_MODEL", c.OpenRouterModel)
	c.OpenRouterAppTitle = getEnv("OPENROUTER_APP_TITLE", c.OpenRouterAppTitle)
	c.OpenRouterReferer = getEnv("OPENROUTER_REFERER", c.OpenRouterReferer)
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider %q", c.LLMProvider)
		}
	case ProviderOpenRouter:
		if c.OpenRouterAPIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is required for provider %q", c.LLMProvider)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must not be negative")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("45s") or a bare number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if n := getEnvInt(key, -1); n >= 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
