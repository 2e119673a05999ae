package llm

import (
	"encoding/json"
	"fmt"

	"paperless-enrich/internal/common"
)

// ParseSuggestion turns the raw completion output into a typed Suggestion.
// Invalid JSON fails with ErrParse and no partial data; a missing or empty
// title fails with ErrSchema. Every other field defaults to empty when absent.
func ParseSuggestion(raw []byte) (Suggestion, error) {
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Suggestion{}, common.NewAppError("PARSE_ERROR", fmt.Sprintf("invalid json: %v", err), common.ErrParse)
	}
	if err := ValidateJSONAgainstSchema(BuildSuggestionJSONSchema(), raw); err != nil {
		return Suggestion{}, common.NewAppError("SCHEMA_ERROR", err.Error(), common.ErrSchema)
	}
	var s Suggestion
	if err := json.Unmarshal(raw, &s); err != nil {
		return Suggestion{}, common.NewAppError("PARSE_ERROR", fmt.Sprintf("unmarshal suggestion: %v", err), common.ErrParse)
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	return s, nil
}
