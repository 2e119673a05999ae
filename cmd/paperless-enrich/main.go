package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"paperless-enrich/internal/config"
	"paperless-enrich/internal/llm"
	"paperless-enrich/internal/llm/openai"
	"paperless-enrich/internal/paperless"
	"paperless-enrich/internal/pipeline"
)

func main() {
	// Best-effort dotenv bootstrap; a missing file is fine.
	if path := os.Getenv("DOTENV_PATH"); path != "" {
		_ = godotenv.Load(path)
	} else {
		_ = godotenv.Load()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel()}))
	slog.SetDefault(logger)

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	fields, err := pipeline.ParseFieldSet(cfg.Pipeline.FieldSet)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	charLimit := cfg.Prompt.CharacterLimit
	if charLimit <= 0 {
		charLimit = llm.CharacterLimit(cfg.OpenAI.Model)
	}

	backend := paperless.NewClient(paperless.Config{
		BaseURL: cfg.Paperless.BaseURL,
		APIKey:  cfg.Paperless.APIKey,
		OwnerID: cfg.Paperless.OwnerID,
		Timeout: cfg.Paperless.Timeout,
		DryRun:  cfg.Pipeline.DryRun,
	}, logger)

	completer := openai.NewClient(openai.Config{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.OpenAI.Temperature,
		Timeout:     cfg.OpenAI.Timeout,
	}, logger)

	pipe := pipeline.New(pipeline.Config{
		Fields: fields,
		Prompt: llm.PromptSpec{
			Template:       cfg.Prompt.Template,
			CharacterLimit: charLimit,
			Mode:           llm.DateMode(cfg.Prompt.DateMode),
		},
		DryRun: cfg.Pipeline.DryRun,
	}, backend, completer, logger)

	docID := cfg.Pipeline.DocumentID
	logger.Info("pipeline.run.start", "doc_id", docID, "dry_run", cfg.Pipeline.DryRun, "field_set", cfg.Pipeline.FieldSet)

	status, err := pipe.Run(context.Background(), docID)
	if err != nil {
		// Runtime failures are logged, not raised; the process still exits 0.
		logger.Error("pipeline.run.failed", "doc_id", docID, "status", string(status), "error", err)
		return
	}
	logger.Info("pipeline.run.ok", "doc_id", docID, "status", string(status))
}

func logLevel() slog.Level {
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
