package llm

import (
	"errors"
	"testing"

	"paperless-enrich/internal/common"
)

func TestParseSuggestionFull(t *testing.T) {
	raw := `{
		"title": "Steuerbescheid 2023",
		"created_date": "2023-11-02",
		"explanation": "tax assessment from the local authority",
		"tags": ["steuer", "bescheid"],
		"correspondent": "Finanzamt",
		"document_type": "Bescheid",
		"summary": "Steuerbescheid des Finanzamts."
	}`
	s, err := ParseSuggestion([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Title != "Steuerbescheid 2023" {
		t.Errorf("title = %q", s.Title)
	}
	if s.CreatedDate != "2023-11-02" {
		t.Errorf("created_date = %q", s.CreatedDate)
	}
	if len(s.Tags) != 2 || s.Tags[0] != "steuer" || s.Tags[1] != "bescheid" {
		t.Errorf("tags = %v", s.Tags)
	}
	if s.Correspondent != "Finanzamt" || s.DocumentType != "Bescheid" {
		t.Errorf("correspondent = %q, document_type = %q", s.Correspondent, s.DocumentType)
	}
}

func TestParseSuggestionOptionalFieldsDefaultEmpty(t *testing.T) {
	s, err := ParseSuggestion([]byte(`{"title":"Rechnung"}`))
	if err != nil {
		t.Fatalf("title-only response must parse, got %v", err)
	}
	if s.Tags == nil || len(s.Tags) != 0 {
		t.Errorf("tags should default to an empty slice, got %v", s.Tags)
	}
	if s.Correspondent != "" || s.DocumentType != "" || s.CreatedDate != "" || s.Summary != "" {
		t.Errorf("optional fields should default empty: %+v", s)
	}
}

func TestParseSuggestionMalformedJSON(t *testing.T) {
	_, err := ParseSuggestion([]byte("not json"))
	if err == nil {
		t.Fatal("expected an error for malformed json")
	}
	if !errors.Is(err, common.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseSuggestionMissingTitle(t *testing.T) {
	_, err := ParseSuggestion([]byte(`{"tags":["rechnung"]}`))
	if err == nil {
		t.Fatal("expected an error for missing title")
	}
	if !errors.Is(err, common.ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestParseSuggestionEmptyTitle(t *testing.T) {
	_, err := ParseSuggestion([]byte(`{"title":""}`))
	if !errors.Is(err, common.ErrSchema) {
		t.Fatalf("expected ErrSchema for empty title, got %v", err)
	}
}

func TestParseSuggestionWrongFieldType(t *testing.T) {
	_, err := ParseSuggestion([]byte(`{"title":"X","tags":"rechnung"}`))
	if !errors.Is(err, common.ErrSchema) {
		t.Fatalf("expected ErrSchema for non-array tags, got %v", err)
	}
}

func TestParseSuggestionNotAnObject(t *testing.T) {
	_, err := ParseSuggestion([]byte(`"just a string"`))
	if !errors.Is(err, common.ErrSchema) {
		t.Fatalf("expected ErrSchema for non-object response, got %v", err)
	}
}
