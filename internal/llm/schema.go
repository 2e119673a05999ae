package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildSuggestionJSONSchema returns the expected response shape as a generic
// map. Validation is structural only: field types plus a non-empty title.
// Semantic rules (title length, tag casing, summary language) are the model's
// responsibility per the prompt contract and are not re-checked here. A
// malformed created_date is also not rejected here; the reconciliation step
// handles it without failing the whole document.
func BuildSuggestionJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":         map[string]any{"type": "string", "minLength": 1},
			"created_date":  map[string]any{"type": "string"},
			"explanation":   map[string]any{"type": "string"},
			"tags":          map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"correspondent": map[string]any{"type": "string"},
			"document_type": map[string]any{"type": "string"},
			"summary":       map[string]any{"type": "string"},
		},
		"required": []string{"title"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
