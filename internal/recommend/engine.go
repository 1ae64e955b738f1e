// Package recommend builds course recommendations from a user's recent
// questions, classified by keyword with a vector nearest-neighbor
// fallback.
package recommend

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/corvitlabs/support-bot/internal/domain"
	"github.com/corvitlabs/support-bot/internal/embedding"
	"github.com/corvitlabs/support-bot/internal/index"
)

// NeighborDistanceCeiling is the maximum vector distance at which a
// corpus neighbor is trusted to classify or contextualize a query.
const NeighborDistanceCeiling = 0.35

// recentWindow is how many of the user's latest questions feed the
// interest profile.
const recentWindow = 3

// Interest categories, checked in order. The first category whose
// keyword appears in the query wins.
var categories = []struct {
	name     string
	keywords []string
}{
	{"networking", []string{"ccna", "ccnp", "network", "networking", "cisco", "vlan", "ospf", "eigrp"}},
	{"cybersecurity", []string{"cybersecurity", "security", "ethical hacking", "ceh"}},
	{"programming", []string{"python", "programming", "code", "coding", "scripting", "web development", "flask", "django"}},
	{"ai", []string{"ai", "machine learning", "artificial intelligence", "deep learning", "tensorflow", "pytorch"}},
	{"career", []string{"job", "career", "certification", "employment", "internship", "portfolio"}},
	{"enrollment", []string{"enroll", "register", "admission", "fees", "documents"}},
	{"instructor", []string{"instructor", "teacher", "who teaches"}},
	{"location_contact", []string{"location", "contact", "islamabad", "branch"}},
}

// offTopicSignals mark a profile with no IT interest at all; those
// users get a redirection instead of a course pitch.
var offTopicSignals = []string{
	"cook", "cooking", "travel", "traveling", "gaming", "sad", "hobbies",
	"mood", "joke", "dress", "art", "dresses", "animals",
}

const (
	// NoHistoryReply is returned when the user has not asked anything yet.
	NoHistoryReply = "I don't have enough information from your recent questions to recommend anything yet. " +
		"Corvit Systems Islamabad offers top IT courses like CCNA, Cybersecurity, and Artificial Intelligence, taught by 8 CCIE instructors. " +
		"Visit our campus at 70-W, Al-Malik Center, Jinnah Avenue, call 0303-8888555, or check https://corvit.com to start your IT journey!"

	// OffTopicReply redirects users whose history shows no IT interest.
	OffTopicReply = "Corvit Systems Islamabad specializes in IT training, offering courses like CCNA, Cybersecurity, and Artificial Intelligence, but we don't provide training for cooking or travel. " +
		"Explore our industry-recognized programs to build in-demand tech skills. " +
		"Visit our campus at 70-W, Al-Malik Center, Jinnah Avenue, call 0303-8888555, or check https://corvit.com for details."

	// InternalErrorReply is the single apology for any collaborator failure.
	InternalErrorReply = "Error: Unable to generate recommendations due to an internal issue. " +
		"Please try asking about Corvit Systems Islamabad's IT courses, such as CCNA or Cybersecurity. " +
		"Contact us at 70-W, Al-Malik Center, Jinnah Avenue, via 0303-8888555 or https://corvit.com."
)

// templates map the dominant category to its pitch. The lead fragment
// is replaced by a close corpus answer when one is available.
var templates = map[string]struct {
	lead string
	body string
}{
	"networking": {
		lead: "Based on your interest in networking,",
		body: " Corvit Systems Islamabad's CCNA course, covering VLANs, OSPF, and automation, is perfect for you, taught by experts like Mr. Abdul Waheed (3xCCIE). " +
			"Consider our CCNP or Network Automation with Python courses to advance your skills. " +
			"Visit 70-W, Al-Malik Center, Jinnah Avenue, call 0303-8888555, or check https://corvit.com for details.",
	},
	"cybersecurity": {
		lead: "Your interest in cybersecurity is a great fit for",
		body: " Corvit Systems Islamabad's Cybersecurity course, covering ethical hacking and network security. " +
			"You might also explore our Certified Ethical Hacker (CEH) training to boost your credentials. " +
			"Contact our Islamabad campus at 70-W, Al-Malik Center, Jinnah Avenue, at 0303-8888555 or visit https://corvit.com.",
	},
	"programming": {
		lead: "Since you're interested in programming,",
		body: " Corvit Systems Islamabad offers a Web Development course with Flask and Django, ideal for building modern applications. " +
			"You could also explore Python for Data Science to diversify your skills. " +
			"Reach out at 70-W, Al-Malik Center, Jinnah Avenue, via 0303-8888555 or https://corvit.com for enrollment details.",
	},
	"ai": {
		lead: "Your interest in AI aligns with",
		body: " Corvit Systems Islamabad's Artificial Intelligence course, covering machine learning and TensorFlow. " +
			"Consider our Data Science course to master AI-driven analytics. " +
			"Visit our campus at 70-W, Al-Malik Center, Jinnah Avenue, or call 0303-8888555 to get started at https://corvit.com.",
	},
	"career": {
		lead: "To boost your career,",
		body: " Corvit Systems Islamabad offers job-oriented certifications like CCNA, AWS, and Full Stack Development. " +
			"Our career counseling and internship programs can help you build a strong portfolio. " +
			"Contact us at 70-W, Al-Malik Center, Jinnah Avenue, via 0303-8888555 or visit https://corvit.com.",
	},
	"enrollment": {
		lead: "To enroll at Corvit Systems Islamabad,",
		body: " visit https://corvit.com, select a course like CCNA or Cybersecurity, and follow the registration process at our campus, 70-W, Al-Malik Center, Jinnah Avenue. " +
			"Our team can guide you on fees and documents. " +
			"Call 0303-8888555 or email info@corvit.com for assistance.",
	},
	"instructor": {
		lead: "Corvit Systems Islamabad boasts expert instructors like",
		body: " Mr. Abdul Waheed (3xCCIE) for courses like CCNA and CCNP, ensuring top-tier training. " +
			"Learn from our team of 8 CCIE professionals to excel in IT. " +
			"Visit us at 70-W, Al-Malik Center, Jinnah Avenue, or call 0303-8888555 to explore our courses at https://corvit.com.",
	},
	"location_contact": {
		lead: "Corvit Systems Islamabad is located at",
		body: " 70-W, Al-Malik Center, Jinnah Avenue, offering top IT courses like CCNA and Cybersecurity. " +
			"Reach out at 0303-8888555 or info@corvit.com for course schedules. " +
			"Visit https://corvit.com to explore our offerings.",
	},
	"general": {
		lead: "Based on current tech trends,",
		body: " I recommend exploring Corvit Systems Islamabad's popular courses like CCNA, Cybersecurity, or Artificial Intelligence to build in-demand IT skills. " +
			"Our hands-on training and 8 CCIE instructors ensure you're job-ready. " +
			"Visit our campus at 70-W, Al-Malik Center, Jinnah Avenue, call 0303-8888555, or check https://corvit.com for details.",
	},
}

// Engine profiles a user's recent questions and picks a course pitch.
// The embedder and index are optional; without them classification is
// purely keyword driven.
type Engine struct {
	history  domain.HistoryStore
	embedder embedding.Embedder
	idx      *index.Index
	log      zerolog.Logger
}

func NewEngine(history domain.HistoryStore, embedder embedding.Embedder, idx *index.Index, log zerolog.Logger) *Engine {
	return &Engine{
		history:  history,
		embedder: embedder,
		idx:      idx,
		log:      log.With().Str("component", "recommend").Logger(),
	}
}

// Recommend builds a pitch from the user's latest questions in the
// given session, or across sessions when sessionID is empty. It never
// returns an error: failures become the internal-error reply.
func (e *Engine) Recommend(ctx context.Context, userID, sessionID string) string {
	recent, err := e.history.RecentUserMessages(userID, sessionID, recentWindow)
	if err != nil {
		e.log.Error().Err(err).Str("user", userID).Msg("loading history failed")
		return InternalErrorReply
	}
	if len(recent) == 0 {
		return NoHistoryReply
	}

	counts := make(map[string]int)
	order := make([]string, 0, len(recent))
	for _, msg := range recent {
		cat := e.categorize(ctx, strings.ToLower(msg))
		if counts[cat] == 0 {
			order = append(order, cat)
		}
		counts[cat]++
	}

	// Dominant category is the mode; ties go to the earliest seen.
	dominant := "general"
	best := 0
	for _, cat := range order {
		if counts[cat] > best {
			best = counts[cat]
			dominant = cat
		}
	}

	if dominant == "general" && isOffTopic(recent) {
		return OffTopicReply
	}

	tpl := templates[dominant]
	lead := tpl.lead
	if answer := e.neighborAnswer(ctx, recent[len(recent)-1]); answer != "" {
		lead = answer
	}
	return lead + tpl.body
}

// categorize matches interest keywords, falling back to the category of
// the nearest corpus entry when it sits within the distance ceiling.
func (e *Engine) categorize(ctx context.Context, lowerMsg string) string {
	for _, cat := range categories {
		for _, kw := range cat.keywords {
			if strings.Contains(lowerMsg, kw) {
				return cat.name
			}
		}
	}

	if neighbor := e.nearest(ctx, lowerMsg); neighbor != nil {
		content := strings.ToLower(neighbor.Entry.Content)
		for _, cat := range categories {
			for _, kw := range cat.keywords {
				if strings.Contains(content, kw) {
					return cat.name
				}
			}
		}
	}
	return "general"
}

// neighborAnswer returns the stored answer of a close corpus neighbor,
// used to personalize the pitch lead.
func (e *Engine) neighborAnswer(ctx context.Context, query string) string {
	if neighbor := e.nearest(ctx, strings.ToLower(query)); neighbor != nil {
		return strings.TrimSpace(neighbor.Entry.Answer)
	}
	return ""
}

func (e *Engine) nearest(ctx context.Context, query string) *index.Result {
	if e.embedder == nil || e.idx == nil {
		return nil
	}
	vectors, err := e.embedder.Embed(ctx, []string{query})
	if err != nil || len(vectors) != 1 {
		e.log.Warn().Err(err).Msg("neighbor embedding failed")
		return nil
	}
	neighbor, ok := e.idx.Nearest(vectors[0])
	if !ok || neighbor.Distance >= NeighborDistanceCeiling {
		return nil
	}
	return &neighbor
}

func isOffTopic(recent []string) bool {
	joined := strings.ToLower(strings.Join(recent, " "))
	for _, signal := range offTopicSignals {
		if strings.Contains(joined, signal) {
			return true
		}
	}
	return false
}
