// Package qna serves curated question and answer pairs. Lookups are
// exact matches against the normalized question text, in English or
// Urdu.
package qna

import (
	"encoding/json"
	"os"
	"sort"
)

// Canonical general-event questions. When a query asks what kinds of
// events happen at all, it is mapped onto one of these instead of going
// through retrieval.
const (
	GeneralEventQuestionEnglish = "What types of events occur at Corvit?"
	GeneralEventQuestionUrdu    = "کوروٹ میں کس قسم کے ایونٹس ہوتے ہیں؟"

	generalEventDefault = "Corvit hosts various events like workshops, seminars, and webinars."
)

// Store holds the curated pairs keyed by exact question text.
type Store struct {
	pairs map[string]string
}

// Load reads the curated pairs from a JSON object file. A missing or
// malformed file yields an empty store.
func Load(path string) *Store {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Store{pairs: map[string]string{}}
	}
	pairs := map[string]string{}
	if err := json.Unmarshal(data, &pairs); err != nil {
		return &Store{pairs: map[string]string{}}
	}
	return &Store{pairs: pairs}
}

// NewStore builds a store from in-memory pairs. Tests only.
func NewStore(pairs map[string]string) *Store {
	if pairs == nil {
		pairs = map[string]string{}
	}
	return &Store{pairs: pairs}
}

// Lookup returns the curated answer for an exact question match.
func (s *Store) Lookup(question string) (string, bool) {
	answer, ok := s.pairs[question]
	return answer, ok
}

// GeneralEventAnswer resolves the canonical general-event question for
// the given language, falling back to a short stock answer when the
// curated pair is absent.
func (s *Store) GeneralEventAnswer(urdu bool) string {
	question := GeneralEventQuestionEnglish
	if urdu {
		question = GeneralEventQuestionUrdu
	}
	if answer, ok := s.pairs[question]; ok {
		return answer
	}
	return generalEventDefault
}

// Questions lists the stored question texts in stable order, for the
// suggested questions endpoint.
func (s *Store) Questions() []string {
	questions := make([]string, 0, len(s.pairs))
	for q := range s.pairs {
		questions = append(questions, q)
	}
	sort.Strings(questions)
	return questions
}
