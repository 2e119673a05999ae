package llm

import "context"

// Message is one role-tagged chat message, submitted verbatim to the
// completion endpoint.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Suggestion is the normalized shape we want from the model.
type Suggestion struct {
	Title         string   `json:"title"`
	CreatedDate   string   `json:"created_date,omitempty"` // YYYY-MM-DD
	Explanation   string   `json:"explanation,omitempty"`
	Tags          []string `json:"tags,omitempty"` // lowercase singular nouns, up to 5
	Correspondent string   `json:"correspondent,omitempty"`
	DocumentType  string   `json:"document_type,omitempty"`
	Summary       string   `json:"summary,omitempty"` // German, up to 128 chars
}

// Completer is the interface the pipeline depends on.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
