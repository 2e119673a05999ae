package llm

import (
	"strings"
	"time"
)

// DefaultPrompt encodes the output schema and the per-field normalization
// rules the model must follow. Overridable via configuration.
const DefaultPrompt = `You are an AI model that is responsible for analyzing OCR text from scanned documents and generating a title, up to 5 tags, a correspondent, the most relevant date, a document type, a summary, and an explanation for those documents that can be used in our digital archiving system. Your response should ONLY be based on the given context and follow the response guidelines and format instructions.

===Response Guidelines
1. Interpret OCR text and generate a title without including any dates in the title itself.
2. Extract and return the most relevant date from the document (e.g., creation date or the date the letter was written) as ` + "`created_date`" + `.
3. Provide an explanation of why the title, date, tags, document type, summary, and correspondent were chosen. The explanation should summarize key points of the document or its content that informed your decisions.
4. Generate a ` + "`summary`" + ` of the document that summarizes the document in no more than 128 characters. The summary must always be in German.
5. Respond in a valid JSON format.
6. The title should not contain any dates.
7. Titles should begin with an uppercase letter, and all nouns should be capitalized.
8. Do not include special characters, slashes, or leading/trailing spaces.
9. The maximum length of the title is 32 characters.
10. Tags should always be single nouns (substantive in German), lowercase, singular (not plural), and separated by commas. Avoid multi-word tags.
11. The correspondent should be the name of a firm, institution, authority, or organization, and must not be a person's name.
12. If no meaningful correspondent can be found, create one that is relevant to the document's purpose (e.g., "Finanzamt" for tax-related documents).
13. Correspondents should always be nouns (substantive in German).
14. The most relevant date should be returned in the format "YYYY-MM-DD" as ` + "`created_date`" + `.
15. The ` + "`document_type`" + ` should be determined independently of the correspondent.
16. The summary must be concise, accurate, and no longer than 128 characters.
17. Tags must always be in singular form.
18. If no relevant date can be found, use today's date.
19. Ensure the title, tags, document_type, correspondent, date, summary, and explanation are appropriate to the document content.

===Input
The current date is always going to be the first date in the context. The rest of the context is the truncated OCR text from the scanned document.

===Response Format
{
  "title": "A valid title with capitalized nouns.",
  "created_date": "YYYY-MM-DD",
  "explanation": "Why the title, date, tags, document_type, summary, and correspondent were chosen.",
  "tags": [],
  "correspondent": "",
  "document_type": "",
  "summary": ""
}
`

// DateMode controls where the current date is placed in the prompt.
type DateMode string

const (
	// DatePrefix prepends the current date to the user content; the template's
	// "first date in the context" convention relies on this.
	DatePrefix DateMode = "prefix"
	// DateContext states the current date in the system instruction instead,
	// leaving the user content as pure document text.
	DateContext DateMode = "context"
)

// PromptSpec is the configured shape of the prompt.
type PromptSpec struct {
	Template       string   // empty means DefaultPrompt
	CharacterLimit int      // 0 means defaultCharacterLimit
	Mode           DateMode // empty means DatePrefix
}

const defaultCharacterLimit = 45000

// CharacterLimit returns how much OCR text the given model can take.
func CharacterLimit(model string) int {
	if strings.Contains(model, "gpt-4") {
		return 200000
	}
	return defaultCharacterLimit
}

// BuildMessages assembles the system instruction and the user content for one
// document. OCR text is truncated to the character limit first, then
// whitespace runs are collapsed to single spaces. Pure function of its inputs.
func BuildMessages(spec PromptSpec, content string, now time.Time) []Message {
	template := spec.Template
	if template == "" {
		template = DefaultPrompt
	}
	limit := spec.CharacterLimit
	if limit <= 0 {
		limit = defaultCharacterLimit
	}
	text := normalizeWhitespace(truncate(content, limit))

	if spec.Mode == DateContext {
		return []Message{
			{Role: "system", Content: template + "\n\nThe current date is " + now.Format("2006-01-02") + "."},
			{Role: "user", Content: text},
		}
	}
	return []Message{
		{Role: "system", Content: template},
		{Role: "user", Content: now.Format("01/02/2006") + " " + text},
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
