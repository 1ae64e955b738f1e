package answer

import (
	"fmt"
	"regexp"
	"strings"
)

// The domain gate rejects queries before any retrieval happens. Three
// checks run in order: general-knowledge question patterns, an
// unrelated-topic blacklist, and cities outside the service area.

var blacklistTerms = []string{
	"google", "amazon", "facebook", "pakistan politics", "elon musk", "cooking",
	"games", "yoga", "swimming", "fitness", "music", "photography", "driving",
	"language learning", "dresses", "makeup", "dress", "jewellery",
	"interior design", "bakery", "pizza", "philosophy", "movies", "travel",
	"art", "animals", "cats", "mountains", "river",
}

var generalKnowledgeTerms = []string{
	"capital city", "capital of", "president of", "population of", "history of",
	"who invented", "what is the meaning", "weather in", "stock price",
}

// Cities with Corvit branches the Islamabad assistant has no data for.
var outsideCities = []string{
	"lahore", "karachi", "multan", "peshawar", "faisalabad",
}

var blacklistPatterns = compileWordPatterns(blacklistTerms)

func compileWordPatterns(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		patterns = append(patterns, regexp.MustCompile(fmt.Sprintf(`\b%s\b`, regexp.QuoteMeta(term))))
	}
	return patterns
}

func isOutOfDomain(query string) bool {
	lower := strings.ToLower(query)
	for _, p := range blacklistPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

func isGeneralKnowledge(query string) bool {
	lower := strings.ToLower(query)
	for _, term := range generalKnowledgeTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func isOutsideServiceCity(query string) bool {
	lower := strings.ToLower(query)
	for _, city := range outsideCities {
		if strings.Contains(lower, city) {
			return true
		}
	}
	return false
}
