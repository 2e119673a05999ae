package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"paperless-enrich/internal/common"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PAPERLESS_API_KEY", "paperless-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("DOCUMENT_ID", "42")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)
	cfg := LoadConfig()

	if cfg.Paperless.BaseURL != "http://localhost:8000" {
		t.Errorf("paperless base url = %q", cfg.Paperless.BaseURL)
	}
	if cfg.OpenAI.Model != "gpt-4-turbo" {
		t.Errorf("model = %q", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.Timeout != 10*time.Second {
		t.Errorf("timeout = %s", cfg.OpenAI.Timeout)
	}
	if cfg.Prompt.DateMode != "prefix" {
		t.Errorf("date mode = %q", cfg.Prompt.DateMode)
	}
	if cfg.Pipeline.FieldSet != "full" {
		t.Errorf("field set = %q", cfg.Pipeline.FieldSet)
	}
	if cfg.Pipeline.DryRun {
		t.Error("dry run must default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	cases := []struct {
		name  string
		unset string
	}{
		{"paperless api key", "PAPERLESS_API_KEY"},
		{"openai api key", "OPENAI_API_KEY"},
		{"document id", "DOCUMENT_ID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.unset, "")
			err := LoadConfig().Validate()
			if !errors.Is(err, common.ErrConfig) {
				t.Fatalf("expected ErrConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.unset) {
				t.Fatalf("error should name the missing variable: %v", err)
			}
		})
	}
}

func TestValidateRejectsUnknownDateMode(t *testing.T) {
	setRequired(t)
	t.Setenv("DATE_MODE", "sideways")
	if err := LoadConfig().Validate(); !errors.Is(err, common.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestBooleanAndNumericParsing(t *testing.T) {
	setRequired(t)
	t.Setenv("DRY_RUN", "yes")
	t.Setenv("OWNER_ID", "7")
	t.Setenv("CHARACTER_LIMIT", "5000")
	t.Setenv("REQUEST_TIMEOUT", "30s")

	cfg := LoadConfig()
	if !cfg.Pipeline.DryRun {
		t.Error("DRY_RUN=yes should enable dry run")
	}
	if cfg.Paperless.OwnerID != 7 {
		t.Errorf("owner id = %d", cfg.Paperless.OwnerID)
	}
	if cfg.Prompt.CharacterLimit != 5000 {
		t.Errorf("character limit = %d", cfg.Prompt.CharacterLimit)
	}
	if cfg.Paperless.Timeout != 30*time.Second {
		t.Errorf("timeout = %s", cfg.Paperless.Timeout)
	}
}

func TestInvalidNumericFallsBackToDefault(t *testing.T) {
	setRequired(t)
	t.Setenv("CHARACTER_LIMIT", "lots")
	if got := LoadConfig().Prompt.CharacterLimit; got != 0 {
		t.Errorf("character limit = %d, want default 0", got)
	}
}
