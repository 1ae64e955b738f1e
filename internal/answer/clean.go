package answer

import (
	"regexp"
	"strings"
)

var (
	// QA-formatting scaffolding carried over from the retrieval corpus
	reQAScaffold = regexp.MustCompile(`(?s)Q:.*?\n|A:\s*`)
	// Generation artifacts: quote markers, dangling "Therefore..."
	// continuations, bracketed labels, and non-text symbols
	reArtifacts  = regexp.MustCompile(`(?i)##end_quote##|\bTherefore\b.*|[([][^)]*[:\]]|[^\w\s.,!?]`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// CleanOutput strips QA scaffolding and generation artifacts and
// collapses whitespace. Text that cleans down to nothing is replaced by
// the fixed no-answer reply so the caller never emits an empty string.
func CleanOutput(text string) string {
	text = reQAScaffold.ReplaceAllString(text, "")
	text = reArtifacts.ReplaceAllString(text, "")
	text = reWhitespace.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if text == "" {
		return NoAnswerReply
	}
	return text
}
