// Package textutil holds small text helpers shared by the keyword
// driven modules.
package textutil

import "strings"

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"i": {}, "me": {}, "my": {}, "we": {}, "you": {}, "your": {}, "it": {},
	"of": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "with": {},
	"about": {}, "and": {}, "or": {}, "do": {}, "does": {}, "did": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "how": {},
	"can": {}, "could": {}, "will": {}, "would": {}, "should": {},
	"tell": {}, "please": {}, "any": {}, "there": {}, "this": {}, "that": {},
	"have": {}, "has": {}, "be": {}, "by": {}, "from": {}, "as": {},
}

// ExtractKeywords lowercases the input, strips punctuation and drops
// stopwords. Order is preserved and duplicates are kept out.
func ExtractKeywords(input string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(input) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	seen := make(map[string]struct{})
	var keywords []string
	for _, word := range strings.Fields(b.String()) {
		if _, stop := stopwords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}
	return keywords
}
