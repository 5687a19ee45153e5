package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// CleanMarkdown strips conversational filler and outer markdown code blocks.
// Memo section contents must be pure Markdown ready for rendering.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	if strings.HasPrefix(cleaned, "```markdown") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

// ValidateMarkdown checks that the string parses as Markdown. Goldmark is
// very permissive, so this is a basic sanity check on assembled memos.
func ValidateMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(input))
	doc := parser.Parse(reader)
	return doc != nil
}

// StripHTML flattens HTML fragments to plain text. News summaries from the
// data API sometimes arrive with markup that would pollute LLM prompts.
// Input without markup passes through unchanged (minus whitespace trimming).
func StripHTML(input string) string {
	if !strings.ContainsAny(input, "<>") {
		return strings.TrimSpace(input)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return strings.TrimSpace(input)
	}
	return strings.TrimSpace(strings.Join(strings.Fields(doc.Text()), " "))
}
