// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	historyPath := cfg.Storage.HistoryPath
//	apiKey := cfg.ExtractionAPIKey()
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Extraction    ExtractionConfig    `yaml:"extraction"`
	Storage       StorageConfig       `yaml:"storage"`
	Server        ServerConfig        `yaml:"server"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ExtractionConfig selects the LLM provider used to turn order text into rows
type ExtractionConfig struct {
	Provider string `yaml:"provider"` // "gemini" or "openai"
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

// StorageConfig holds history storage configuration
type StorageConfig struct {
	HistoryPath string `yaml:"history_path"` // JSON file used by the server
	KVPath      string `yaml:"kv_path"`      // SQLite file used as the local fallback
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// RemoteURL is the server the CLI persists to before falling back locally.
	RemoteURL string `yaml:"remote_url"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text", "json" or "maven"
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${API_KEY})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Extraction: ExtractionConfig{
			Provider: getEnv("ORDERPARSER_PROVIDER", "gemini"),
			Model:    os.Getenv("ORDERPARSER_MODEL"),
		},
		Storage: StorageConfig{
			HistoryPath: getEnv("HISTORY_DB_PATH", "history_db.json"),
			KVPath:      getEnv("KV_DB_PATH", "orderparser_local.db"),
		},
		Server: ServerConfig{
			Port:           getEnvInt("PORT", 3001),
			AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
			RemoteURL:      getEnv("ORDERPARSER_SERVER_URL", "http://localhost:3001"),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "maven"),
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

func (c *Config) applyDefaults() {
	if c.Extraction.Provider == "" {
		c.Extraction.Provider = "gemini"
	}
	c.Extraction.Provider = strings.ToLower(strings.TrimSpace(c.Extraction.Provider))
	if c.Storage.HistoryPath == "" {
		c.Storage.HistoryPath = "history_db.json"
	}
	if c.Storage.KVPath == "" {
		c.Storage.KVPath = "orderparser_local.db"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "maven"
	}
}

// Environment variables consulted for each provider's API key, in order.
var (
	GeminiKeyEnv = []string{"API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"}
	OpenAIKeyEnv = []string{"OPENAI_API_KEY", "OPENAI_APIKEY"}
)

// CredentialEnvKeys lists every variable that can supply an API key.
func CredentialEnvKeys() []string {
	keys := make([]string, 0, len(GeminiKeyEnv)+len(OpenAIKeyEnv))
	keys = append(keys, GeminiKeyEnv...)
	return append(keys, OpenAIKeyEnv...)
}

// ExtractionAPIKey resolves the key for the configured provider: the config
// value first, then the provider's environment variables.
func (c *Config) ExtractionAPIKey() string {
	switch c.Extraction.Provider {
	case "openai":
		return c.GetAPIKey(c.Extraction.APIKey, OpenAIKeyEnv...)
	default:
		return c.GetAPIKey(c.Extraction.APIKey, GeminiKeyEnv...)
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetAPIKey retrieves an API key from config first, then tries multiple environment variable names
// Usage: GetAPIKey(cfg.Extraction.APIKey, "API_KEY", "GEMINI_API_KEY")
func (c *Config) GetAPIKey(configValue string, envVarNames ...string) string {
	// First, try the config value
	if configValue != "" {
		return configValue
	}

	// Then try each environment variable in order
	for _, envVar := range envVarNames {
		if val := os.Getenv(envVar); val != "" {
			return val
		}
	}

	return ""
}
