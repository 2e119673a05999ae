package paperless

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"paperless-enrich/internal/common"
)

// Document is the subset of the backend document record this tool reads.
type Document struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	CreatedDate string `json:"created_date"`
}

// CustomFieldValue attaches one custom-field value to a document.
type CustomFieldValue struct {
	Field int    `json:"field"`
	Value string `json:"value"`
}

// DocumentPatch is a partial update; zero-valued fields are left untouched.
type DocumentPatch struct {
	Title         string             `json:"title,omitempty"`
	Tags          []int              `json:"tags,omitempty"`
	Correspondent int                `json:"correspondent,omitempty"`
	DocumentType  int                `json:"document_type,omitempty"`
	CreatedDate   string             `json:"created_date,omitempty"`
	CustomFields  []CustomFieldValue `json:"custom_fields,omitempty"`
}

// Document fetches one document record by id.
func (c *Client) Document(ctx context.Context, id int) (*Document, error) {
	raw, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/api/documents/%d/", id), nil, nil)
	if err != nil {
		return nil, common.NewAppError("FETCH_ERROR", fmt.Sprintf("get document %d: %v", id, err), common.ErrFetch)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, common.NewAppError("FETCH_ERROR", fmt.Sprintf("decode document %d: %v", id, err), common.ErrFetch)
	}
	return &doc, nil
}

// PatchDocument applies one partial update to a document record.
func (c *Client) PatchDocument(ctx context.Context, id int, patch DocumentPatch) error {
	if _, err := c.request(ctx, http.MethodPatch, fmt.Sprintf("/api/documents/%d/", id), nil, patch); err != nil {
		return common.NewAppError("PATCH_ERROR", fmt.Sprintf("patch document %d: %v", id, err), common.ErrPatch)
	}
	return nil
}
