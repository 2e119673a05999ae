package pipeline

import (
	"fmt"
	"strings"

	"paperless-enrich/internal/common"
)

// FieldSet declares which suggestion fields a run requests and applies. The
// historical per-variant scripts (title-only, +tags, +correspondent, full)
// collapse into these presets.
type FieldSet struct {
	Tags          bool
	Correspondent bool
	DocumentType  bool
	CreatedDate   bool // patch created_date; otherwise the date goes into the title
	Summary       bool // required when set; written as a custom field
}

var (
	FieldSetTitle         = FieldSet{}
	FieldSetTags          = FieldSet{Tags: true}
	FieldSetCorrespondent = FieldSet{Tags: true, Correspondent: true}
	FieldSetFull          = FieldSet{Tags: true, Correspondent: true, DocumentType: true, CreatedDate: true, Summary: true}
)

// ParseFieldSet maps a configured variant name to its FieldSet.
func ParseFieldSet(s string) (FieldSet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return FieldSetFull, nil
	case "title":
		return FieldSetTitle, nil
	case "tags":
		return FieldSetTags, nil
	case "correspondent":
		return FieldSetCorrespondent, nil
	default:
		return FieldSet{}, common.NewAppError("CONFIG_ERROR", fmt.Sprintf("unknown FIELD_SET %q", s), common.ErrConfig)
	}
}
