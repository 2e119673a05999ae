package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"paperless-enrich/internal/common"
	"paperless-enrich/internal/llm"
	"paperless-enrich/internal/paperless"
)

// summaryFieldName is the process-wide custom-field definition for summaries,
// created at most once and shared across all documents.
const summaryFieldName = "summary"

// patchSet holds the up-to-three independent partial updates for one document.
type patchSet struct {
	core        paperless.DocumentPatch
	createdDate string // empty means no date write
	customField *paperless.CustomFieldValue
}

// reconcile maps a Suggestion onto backend entity ids and patch payloads.
// Resolution failure of a blocking field (tags, correspondent, document_type)
// aborts the whole document update before any write.
func (p *Pipeline) reconcile(ctx context.Context, doc *paperless.Document, sug llm.Suggestion) (*patchSet, error) {
	fields := p.cfg.Fields
	ps := &patchSet{}
	title := strings.TrimSpace(sug.Title)

	if fields.Tags && len(sug.Tags) > 0 {
		ids := p.backend.ResolveTags(ctx, sug.Tags)
		if len(ids) == 0 {
			return nil, common.NewAppError("RESOLUTION_ERROR",
				fmt.Sprintf("none of the suggested tags %v could be resolved", sug.Tags), common.ErrResolution)
		}
		ps.core.Tags = ids
	}

	if fields.Correspondent && sug.Correspondent != "" {
		id, ok := p.backend.ResolveCorrespondent(ctx, sug.Correspondent)
		if !ok {
			return nil, common.NewAppError("RESOLUTION_ERROR",
				fmt.Sprintf("correspondent %q could not be resolved", sug.Correspondent), common.ErrResolution)
		}
		ps.core.Correspondent = id
	}

	if fields.DocumentType && sug.DocumentType != "" {
		id, ok := p.backend.ResolveDocumentType(ctx, sug.DocumentType)
		if !ok {
			return nil, common.NewAppError("RESOLUTION_ERROR",
				fmt.Sprintf("document type %q could not be resolved", sug.DocumentType), common.ErrResolution)
		}
		ps.core.DocumentType = id
	}

	if fields.CreatedDate {
		ps.core.Title = title
		date, write, err := reconcileCreatedDate(doc.CreatedDate, sug.CreatedDate)
		if err != nil {
			// Fail-safe: a malformed date only skips the date patch.
			p.log.Warn("pipeline.reconcile.date_skipped", "doc_id", doc.ID, "error", err)
		} else if write {
			ps.createdDate = date
		}
	} else if sug.CreatedDate != "" {
		// Variants without date extraction fold the date into the title.
		ps.core.Title = sug.CreatedDate + " - " + title
	} else {
		ps.core.Title = title
	}

	if fields.Summary {
		if strings.TrimSpace(sug.Summary) == "" {
			return nil, common.NewAppError("SCHEMA_ERROR", "summary is required but empty", common.ErrSchema)
		}
		id, ok := p.backend.ResolveCustomField(ctx, summaryFieldName)
		if !ok {
			return nil, common.NewAppError("RESOLUTION_ERROR",
				"summary custom field could not be resolved", common.ErrResolution)
		}
		ps.customField = &paperless.CustomFieldValue{Field: id, Value: sug.Summary}
	}

	return ps, nil
}

// reconcileCreatedDate applies the date-precedence rule. An extracted date
// earlier than the stored one wins: scan timestamps regularly postdate the
// true document date, so earlier is treated as more authoritative. Equal or
// later suggestions leave the stored date untouched.
func reconcileCreatedDate(existing, suggested string) (string, bool, error) {
	suggested = strings.TrimSpace(suggested)
	if suggested == "" {
		return "", false, nil
	}
	suggestedDate, err := parseDate(suggested)
	if err != nil {
		return "", false, common.NewAppError("DATE_PARSE_ERROR",
			fmt.Sprintf("suggested date %q: %v", suggested, err), common.ErrDateParse)
	}
	if strings.TrimSpace(existing) == "" {
		return suggested, true, nil
	}
	existingDate, err := parseDate(existing)
	if err != nil {
		return "", false, common.NewAppError("DATE_PARSE_ERROR",
			fmt.Sprintf("existing date %q: %v", existing, err), common.ErrDateParse)
	}
	if suggestedDate.Before(existingDate) {
		return suggested, true, nil
	}
	return "", false, nil
}

// parseDate compares calendar dates only; the backend may return created_date
// with a time component, which is ignored.
func parseDate(s string) (time.Time, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	return time.Parse("2006-01-02", s)
}
