// Package intent classifies normalized chat input into the handler
// cascade. The cascade is a package-level ordered rule list; the first
// matching rule wins, so precedence is the slice order itself. Anything
// that matches nothing is answered by the retrieval pipeline.
package intent

import "strings"

type Kind int

const (
	// KindOpen falls through to the retrieval pipeline.
	KindOpen Kind = iota
	KindGeneralEvent
	KindRecommendation
	KindEvent
	KindSchedule
	// KindPredefinedQnA is an exact match against the curated set.
	KindPredefinedQnA
)

// Timeframe narrows an event query. TimeframeNone means the query is
// resolved by keyword search instead of a date filter.
type Timeframe int

const (
	TimeframeNone Timeframe = iota
	TimeframeToday
	TimeframeTomorrow
	TimeframeThisWeek
	TimeframeNextWeek
	TimeframeNextMonth
)

// Intent is the classification result. Timeframe is meaningful only for
// KindEvent.
type Intent struct {
	Kind      Kind
	Timeframe Timeframe
}

// generalEventPhrases includes Urdu variants so that input left
// untranslated by a failed-open translator still routes here.
var generalEventPhrases = []string{
	"what type of events", "what kind of events", "which events occur",
	"types of events", "kind of events", "what events happen",
	"what seminars", "what workshops", "what sessions",
	"کس قسم کے ایونٹس", "کوروٹ میں کون سے ایونٹس", "ایونٹس کی اقسام",
}

// timeframeTerms excludes a query from the general-event shortcut even
// when it mentions events at Corvit.
var timeframeTerms = []string{
	"today", "tomorrow", "this week", "next week", "this month", "next month",
}

var recommendationTriggers = []string{
	"recommend", "suggest", "what should i learn", "what do you recommend",
	"which course is good", "which course should i take",
}

var eventTerms = []string{
	"event", "seminar", "webinar", "orientation", "workshop", "meetup",
}

var scheduleTriggers = []string{
	"class timing", "class schedule", "timing", "schedule",
	"class timings", "classes timing", "timing of",
}

// timeframeRules are checked in order and the first hit wins. "this
// month" deliberately has no rule; those queries go to keyword search.
var timeframeRules = []struct {
	term string
	tf   Timeframe
}{
	{"today", TimeframeToday},
	{"tomorrow", TimeframeTomorrow},
	{"this week", TimeframeThisWeek},
	{"next week", TimeframeNextWeek},
	{"next month", TimeframeNextMonth},
}

// rule pairs a predicate with the intent kind it yields. Predicates get
// the raw input (curated lookups are case sensitive) and its lowercased
// form (keyword matching).
type rule struct {
	name  string
	match func(c *Classifier, input, lower string) bool
	kind  Kind
}

// rules is the cascade, highest precedence first. KindOpen is the
// fallthrough when no rule matches, not a rule of its own.
var rules = []rule{
	{
		name:  "general-event",
		match: func(_ *Classifier, _, lower string) bool { return isGeneralEventQuery(lower) },
		kind:  KindGeneralEvent,
	},
	{
		name:  "recommendation",
		match: func(_ *Classifier, _, lower string) bool { return containsAny(lower, recommendationTriggers) },
		kind:  KindRecommendation,
	},
	{
		name:  "event",
		match: func(_ *Classifier, _, lower string) bool { return containsAny(lower, eventTerms) },
		kind:  KindEvent,
	},
	{
		name:  "schedule",
		match: func(_ *Classifier, _, lower string) bool { return containsAny(lower, scheduleTriggers) },
		kind:  KindSchedule,
	},
	{
		name:  "predefined-qna",
		match: func(c *Classifier, input, _ string) bool { return c.curated != nil && c.curated(input) },
		kind:  KindPredefinedQnA,
	},
}

// Classifier walks the rule cascade. The curated predicate reports
// whether an input is an exact curated question; it may be nil.
type Classifier struct {
	curated func(question string) bool
}

func NewClassifier(curated func(question string) bool) *Classifier {
	return &Classifier{curated: curated}
}

// Classify routes one normalized input through the cascade.
func (c *Classifier) Classify(input string) Intent {
	lower := strings.ToLower(input)
	for _, r := range rules {
		if !r.match(c, input, lower) {
			continue
		}
		result := Intent{Kind: r.kind}
		if r.kind == KindEvent {
			result.Timeframe = timeframeOf(lower)
		}
		return result
	}
	return Intent{Kind: KindOpen}
}

// Classify routes input without a curated set wired in.
func Classify(input string) Intent {
	return (&Classifier{}).Classify(input)
}

func isGeneralEventQuery(lower string) bool {
	if containsAny(lower, generalEventPhrases) {
		return true
	}
	return strings.Contains(lower, "events") &&
		strings.Contains(lower, "corvit") &&
		!containsAny(lower, timeframeTerms)
}

func timeframeOf(lower string) Timeframe {
	for _, rule := range timeframeRules {
		if strings.Contains(lower, rule.term) {
			return rule.tf
		}
	}
	return TimeframeNone
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
