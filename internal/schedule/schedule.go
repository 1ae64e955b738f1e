// Package schedule serves class timing queries from the JSON timetable.
package schedule

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/corvitlabs/support-bot/internal/domain"
	"github.com/corvitlabs/support-bot/internal/textutil"
)

// UnavailableReply is returned when a course keyword was recognized but
// no timetable entry carries it.
const UnavailableReply = "Sorry, currently this course is not available.\n" +
	"For more information:\n\n" +
	"Contact Corvit: 051-111-333-222\n" +
	"Email: info@corvit.com.pk\n" +
	"Website: https://www.corvit.com.pk"

// Load reads the timetable. Missing or malformed files yield an empty
// timetable.
func Load(path string) []domain.ScheduleEntry {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var entries []domain.ScheduleEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

// Service resolves timing queries against a loaded timetable.
type Service struct {
	entries []domain.ScheduleEntry
}

func NewService(entries []domain.ScheduleEntry) *Service {
	return &Service{entries: entries}
}

// Answer resolves a timing query. Query keywords that name a course
// select those courses; a query with no course keyword gets the full
// timetable, so the reply is never empty while a timetable exists.
func (s *Service) Answer(query string) string {
	courseKeywords := s.courseKeywords(query)

	if len(courseKeywords) == 0 {
		return s.formatAll()
	}

	var blocks []string
	for _, kw := range courseKeywords {
		for _, entry := range s.entries {
			if strings.Contains(strings.ToLower(entry.Course), kw) {
				blocks = append(blocks, formatEntry(entry))
				break
			}
		}
	}

	if len(blocks) == 0 {
		return UnavailableReply
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

// FullListing renders every timetable entry.
func (s *Service) FullListing() string {
	return s.formatAll()
}

// courseKeywords keeps the query keywords that appear in at least one
// course name.
func (s *Service) courseKeywords(query string) []string {
	var matched []string
	for _, kw := range textutil.ExtractKeywords(query) {
		for _, entry := range s.entries {
			if strings.Contains(strings.ToLower(entry.Course), kw) {
				matched = append(matched, kw)
				break
			}
		}
	}
	return matched
}

func (s *Service) formatAll() string {
	blocks := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		blocks = append(blocks, formatEntry(entry))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

func formatEntry(e domain.ScheduleEntry) string {
	return "Course: " + e.Course + "\n" +
		"Instructor: " + e.Instructor + "\n" +
		"Days: " + e.Days + "\n" +
		"Time: " + e.Time + "\n" +
		"Start Date: " + e.StartingDate + "\n" +
		"Mode: " + e.Mode + "\n" +
		"City: " + e.City
}
