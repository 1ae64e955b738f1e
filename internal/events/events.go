// Package events answers questions about upcoming institute events:
// timeframe filters over a JSON calendar plus a fuzzy keyword search.
package events

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/corvitlabs/support-bot/internal/domain"
	"github.com/corvitlabs/support-bot/internal/textutil"
)

const dateLayout = "2006-01-02"

// NoEventsReply is returned when a filter or search produces nothing.
const NoEventsReply = "Sorry, I couldn't find any relevant event info.\n" +
	"For more information:\n\n" +
	"Contact Corvit: 051-111-333-222\n" +
	"Email: info@corvit.com.pk\n" +
	"Website: https://www.corvit.com.pk"

// Scoring weights for the keyword search fallback.
const (
	keywordWeight    = 0.6
	similarityWeight = 0.4
)

// Load reads the event calendar. A missing or malformed file yields an
// empty calendar rather than an error so the chat path stays up.
func Load(path string) []domain.Event {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var events []domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil
	}
	return events
}

// Service filters and searches a loaded event calendar. The clock is
// injectable so timeframe filters are testable.
type Service struct {
	events []domain.Event
	now    func() time.Time
	sim    *metrics.SorensenDice
}

func NewService(events []domain.Event) *Service {
	return &Service{
		events: events,
		now:    time.Now,
		sim:    metrics.NewSorensenDice(),
	}
}

// NewServiceAt pins the clock. Tests only.
func NewServiceAt(events []domain.Event, now func() time.Time) *Service {
	s := NewService(events)
	s.now = now
	return s
}

func (s *Service) filter(keep func(time.Time) bool) []domain.Event {
	var out []domain.Event
	for _, e := range s.events {
		d, err := time.Parse(dateLayout, e.Date)
		if err != nil {
			continue
		}
		if keep(d) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Service) Today() []domain.Event {
	today := dateOnly(s.now())
	return s.filter(func(d time.Time) bool { return d.Equal(today) })
}

func (s *Service) Tomorrow() []domain.Event {
	tomorrow := dateOnly(s.now()).AddDate(0, 0, 1)
	return s.filter(func(d time.Time) bool { return d.Equal(tomorrow) })
}

// ThisWeek spans Monday through Sunday of the current week.
func (s *Service) ThisWeek() []domain.Event {
	start := startOfWeek(s.now())
	end := start.AddDate(0, 0, 6)
	return s.filter(func(d time.Time) bool { return !d.Before(start) && !d.After(end) })
}

// NextWeek spans Monday through Sunday of the following week.
func (s *Service) NextWeek() []domain.Event {
	start := startOfWeek(s.now()).AddDate(0, 0, 7)
	end := start.AddDate(0, 0, 6)
	return s.filter(func(d time.Time) bool { return !d.Before(start) && !d.After(end) })
}

func (s *Service) NextMonth() []domain.Event {
	now := s.now()
	next := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	return s.filter(func(d time.Time) bool {
		return d.Year() == next.Year() && d.Month() == next.Month()
	})
}

// NextSevenDays covers today through six days out, for the upcoming
// events listing.
func (s *Service) NextSevenDays() []domain.Event {
	start := dateOnly(s.now())
	end := start.AddDate(0, 0, 6)
	return s.filter(func(d time.Time) bool { return !d.Before(start) && !d.After(end) })
}

// Search scores every event by keyword overlap blended with string
// similarity and returns the single best match, or nil when nothing
// scores above zero.
func (s *Service) Search(query string) []domain.Event {
	keywords := textutil.ExtractKeywords(query)
	lowerQuery := strings.ToLower(query)

	bestScore := 0.0
	var best *domain.Event
	for i := range s.events {
		e := s.events[i]
		content := strings.ToLower(e.Title) + " " + strings.ToLower(e.Description)

		keywordScore := 0.0
		for _, kw := range keywords {
			if strings.Contains(content, kw) {
				keywordScore++
			}
		}
		similarity := strutil.Similarity(lowerQuery, content, s.sim)

		score := keywordScore*keywordWeight + similarity*similarityWeight
		if score > bestScore {
			bestScore = score
			best = &s.events[i]
		}
	}

	if best == nil {
		return nil
	}
	return []domain.Event{*best}
}

// Format renders events as a single reply, separated the same way the
// schedule listings are.
func Format(events []domain.Event) string {
	if len(events) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(events))
	for _, e := range events {
		blocks = append(blocks, "**"+e.Title+"**\n"+e.Description+"\nDate: "+e.Date)
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return dateOnly(t).AddDate(0, 0, -offset)
}
