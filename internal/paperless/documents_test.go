package paperless

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"paperless-enrich/internal/common"
)

func TestDocumentFetch(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents/42/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"id":42,"title":"scan0001","content":"ocr text","created_date":"2024-05-01"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"}, discardLogger())
	doc, err := c.Document(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != 42 || doc.Title != "scan0001" || doc.Content != "ocr text" || doc.CreatedDate != "2024-05-01" {
		t.Fatalf("document = %+v", doc)
	}
	if gotAuth != "Token secret" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if gotAccept != "application/json; version=4" {
		t.Fatalf("accept header = %q", gotAccept)
	}
}

func TestDocumentFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"}, discardLogger())
	_, err := c.Document(context.Background(), 42)
	if !errors.Is(err, common.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestPatchDocumentOmitsZeroFields(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"}, discardLogger())
	err := c.PatchDocument(context.Background(), 42, DocumentPatch{Title: "Neue Rechnung"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotBody) != 1 || gotBody["title"] != "Neue Rechnung" {
		t.Fatalf("patch body = %v, want title only", gotBody)
	}
}

func TestPatchDocumentFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"}, discardLogger())
	err := c.PatchDocument(context.Background(), 42, DocumentPatch{Title: "X"})
	if !errors.Is(err, common.ErrPatch) {
		t.Fatalf("expected ErrPatch, got %v", err)
	}
}
