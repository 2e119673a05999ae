package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"paperless-enrich/internal/common"
)

// Config holds all application configuration
type Config struct {
	Paperless PaperlessConfig
	OpenAI    OpenAIConfig
	Prompt    PromptConfig
	Pipeline  PipelineConfig
}

// PaperlessConfig holds backend-related configuration
type PaperlessConfig struct {
	BaseURL string
	APIKey  string
	OwnerID int
	Timeout time.Duration
}

// OpenAIConfig holds completion-endpoint configuration
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// PromptConfig holds prompt-assembly configuration
type PromptConfig struct {
	Template       string // empty means the built-in template
	CharacterLimit int    // 0 means derive from the model name
	DateMode       string // "prefix" or "context"
}

// PipelineConfig holds per-run configuration
type PipelineConfig struct {
	DocumentID int
	FieldSet   string
	DryRun     bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Paperless: PaperlessConfig{
			BaseURL: getEnv("PAPERLESS_URL", "http://localhost:8000"),
			APIKey:  getEnv("PAPERLESS_API_KEY", ""),
			OwnerID: getEnvAsInt("OWNER_ID", 0),
			Timeout: getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4-turbo"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
		},
		Prompt: PromptConfig{
			Template:       getEnv("OVERRIDE_PROMPT", ""),
			CharacterLimit: getEnvAsInt("CHARACTER_LIMIT", 0),
			DateMode:       getEnv("DATE_MODE", "prefix"),
		},
		Pipeline: PipelineConfig{
			DocumentID: getEnvAsInt("DOCUMENT_ID", 0),
			FieldSet:   getEnv("FIELD_SET", "full"),
			DryRun:     getEnvAsBool("DRY_RUN", false),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "1", "t", "true", "y", "yes", "on":
			return true
		case "0", "f", "false", "n", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the loaded configuration before any network call is made.
func (c *Config) Validate() error {
	if c.Paperless.BaseURL == "" {
		return common.NewAppError("CONFIG_ERROR", "PAPERLESS_URL is required", common.ErrConfig)
	}
	if c.Paperless.APIKey == "" {
		return common.NewAppError("CONFIG_ERROR", "PAPERLESS_API_KEY is required", common.ErrConfig)
	}
	if c.OpenAI.APIKey == "" {
		return common.NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", common.ErrConfig)
	}
	if c.OpenAI.Model == "" {
		return common.NewAppError("CONFIG_ERROR", "OPENAI_MODEL is required", common.ErrConfig)
	}
	if c.Pipeline.DocumentID <= 0 {
		return common.NewAppError("CONFIG_ERROR", "DOCUMENT_ID is required", common.ErrConfig)
	}
	switch c.Prompt.DateMode {
	case "prefix", "context":
	default:
		return common.NewAppError("CONFIG_ERROR", "DATE_MODE must be \"prefix\" or \"context\"", common.ErrConfig)
	}
	return nil
}
