package pipeline

import (
	"context"
	"log/slog"
	"time"

	"paperless-enrich/internal/llm"
	"paperless-enrich/internal/paperless"
)

// Status tracks a document run through its stages.
type Status string

const (
	StatusFetched    Status = "FETCHED"
	StatusPrompted   Status = "PROMPTED"
	StatusParsed     Status = "PARSED"
	StatusReconciled Status = "RECONCILED"
	StatusApplied    Status = "APPLIED"
	StatusAborted    Status = "ABORTED"
)

// Backend is the subset of the paperless client the pipeline depends on.
type Backend interface {
	Document(ctx context.Context, id int) (*paperless.Document, error)
	PatchDocument(ctx context.Context, id int, patch paperless.DocumentPatch) error
	ResolveTags(ctx context.Context, names []string) []int
	ResolveCorrespondent(ctx context.Context, name string) (int, bool)
	ResolveDocumentType(ctx context.Context, name string) (int, bool)
	ResolveCustomField(ctx context.Context, name string) (int, bool)
}

// Config holds behavior flags for one pipeline instance.
type Config struct {
	Fields FieldSet
	Prompt llm.PromptSpec
	DryRun bool
}

// Pipeline enriches one document per Run: fetch, prompt, parse, reconcile,
// apply. Fully sequential, no internal concurrency, no retries.
type Pipeline struct {
	log       *slog.Logger
	cfg       Config
	backend   Backend
	completer llm.Completer
	now       func() time.Time
}

func New(cfg Config, backend Backend, completer llm.Completer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		log:       logger,
		cfg:       cfg,
		backend:   backend,
		completer: completer,
		now:       time.Now,
	}
}

// Run processes one document end to end and returns its terminal status.
// Every failure before apply transitions to StatusAborted with no writes
// issued; patch failures after apply started are reported but not rolled back.
func (p *Pipeline) Run(ctx context.Context, docID int) (Status, error) {
	doc, err := p.backend.Document(ctx, docID)
	if err != nil {
		p.log.Error("pipeline.fetch.failed", "doc_id", docID, "error", err)
		return StatusAborted, err
	}
	p.log.Info("pipeline.fetched", "doc_id", docID, "title", doc.Title, "content_bytes", len(doc.Content))

	messages := llm.BuildMessages(p.cfg.Prompt, doc.Content, p.now())
	raw, err := p.completer.Complete(ctx, messages)
	if err != nil {
		p.log.Error("pipeline.complete.failed", "doc_id", docID, "error", err)
		return StatusAborted, err
	}
	p.log.Info("pipeline.prompted", "doc_id", docID, "response_bytes", len(raw))

	sug, err := llm.ParseSuggestion([]byte(raw))
	if err != nil {
		p.log.Error("pipeline.parse.failed", "doc_id", docID, "error", err, "raw", raw)
		return StatusAborted, err
	}
	p.log.Info("pipeline.parsed",
		"doc_id", docID,
		"title", sug.Title,
		"tags", sug.Tags,
		"correspondent", sug.Correspondent,
		"document_type", sug.DocumentType,
		"created_date", sug.CreatedDate,
		"explanation", sug.Explanation,
	)

	patches, err := p.reconcile(ctx, doc, sug)
	if err != nil {
		p.log.Error("pipeline.reconcile.failed", "doc_id", docID, "error", err)
		return StatusAborted, err
	}
	p.log.Info("pipeline.reconciled",
		"doc_id", docID,
		"new_title", patches.core.Title,
		"tag_ids", patches.core.Tags,
		"correspondent_id", patches.core.Correspondent,
		"document_type_id", patches.core.DocumentType,
		"created_date", patches.createdDate,
		"has_summary", patches.customField != nil,
	)

	return p.apply(ctx, doc, patches)
}

// apply issues the patches as independent partial updates: core fields,
// created_date, and the custom field each in their own request, so a skipped
// one never blocks the others. Dry-run logs the intent and writes nothing.
func (p *Pipeline) apply(ctx context.Context, doc *paperless.Document, ps *patchSet) (Status, error) {
	if p.cfg.DryRun {
		p.log.Info("pipeline.apply.dry_run",
			"doc_id", doc.ID,
			"old_title", doc.Title,
			"new_title", ps.core.Title,
			"tag_ids", ps.core.Tags,
			"correspondent_id", ps.core.Correspondent,
			"document_type_id", ps.core.DocumentType,
			"created_date", ps.createdDate,
			"has_summary", ps.customField != nil,
		)
		return StatusApplied, nil
	}

	var failed error
	if err := p.backend.PatchDocument(ctx, doc.ID, ps.core); err != nil {
		p.log.Error("pipeline.apply.core_failed", "doc_id", doc.ID, "error", err)
		failed = err
	} else {
		p.log.Info("pipeline.apply.core_ok", "doc_id", doc.ID, "old_title", doc.Title, "new_title", ps.core.Title)
	}

	if ps.createdDate != "" {
		if err := p.backend.PatchDocument(ctx, doc.ID, paperless.DocumentPatch{CreatedDate: ps.createdDate}); err != nil {
			p.log.Error("pipeline.apply.date_failed", "doc_id", doc.ID, "error", err)
			failed = err
		} else {
			p.log.Info("pipeline.apply.date_ok", "doc_id", doc.ID, "created_date", ps.createdDate)
		}
	}

	if ps.customField != nil {
		patch := paperless.DocumentPatch{CustomFields: []paperless.CustomFieldValue{*ps.customField}}
		if err := p.backend.PatchDocument(ctx, doc.ID, patch); err != nil {
			p.log.Error("pipeline.apply.custom_field_failed", "doc_id", doc.ID, "error", err)
			failed = err
		} else {
			p.log.Info("pipeline.apply.custom_field_ok", "doc_id", doc.ID, "field_id", ps.customField.Field)
		}
	}

	if failed != nil {
		// Earlier successful patches stay in place; the document may be
		// partially updated at this point.
		return StatusAborted, failed
	}
	return StatusApplied, nil
}
