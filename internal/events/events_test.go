package events

import (
	"testing"
	"time"

	"github.com/corvitlabs/support-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday 2026-09-02.
var fixedNow = func() time.Time {
	return time.Date(2026, time.September, 2, 15, 30, 0, 0, time.UTC)
}

func testCalendar() []domain.Event {
	return []domain.Event{
		{Title: "CCNA Orientation", Description: "Intro session for the new CCNA batch.", Date: "2026-09-02"},
		{Title: "Cybersecurity Seminar", Description: "Guest talk on penetration testing.", Date: "2026-09-03"},
		{Title: "AWS Workshop", Description: "Hands-on cloud deployment workshop.", Date: "2026-09-06"},
		{Title: "Career Webinar", Description: "Building an IT career in Pakistan.", Date: "2026-09-09"},
		{Title: "Open House", Description: "Campus tour and course counselling.", Date: "2026-10-15"},
	}
}

func TestTimeframeFilters(t *testing.T) {
	svc := NewServiceAt(testCalendar(), fixedNow)

	titles := func(events []domain.Event) []string {
		out := make([]string, 0, len(events))
		for _, e := range events {
			out = append(out, e.Title)
		}
		return out
	}

	assert.Equal(t, []string{"CCNA Orientation"}, titles(svc.Today()))
	assert.Equal(t, []string{"Cybersecurity Seminar"}, titles(svc.Tomorrow()))
	// Monday 2026-08-31 through Sunday 2026-09-06
	assert.Equal(t, []string{"CCNA Orientation", "Cybersecurity Seminar", "AWS Workshop"}, titles(svc.ThisWeek()))
	// Monday 2026-09-07 through Sunday 2026-09-13
	assert.Equal(t, []string{"Career Webinar"}, titles(svc.NextWeek()))
	assert.Equal(t, []string{"Open House"}, titles(svc.NextMonth()))
	assert.Equal(t, []string{"CCNA Orientation", "Cybersecurity Seminar", "AWS Workshop"}, titles(svc.NextSevenDays()))
}

func TestNextMonthAtYearBoundary(t *testing.T) {
	decNow := func() time.Time {
		return time.Date(2026, time.December, 20, 9, 0, 0, 0, time.UTC)
	}
	svc := NewServiceAt([]domain.Event{
		{Title: "New Year Bootcamp", Description: "January intensive.", Date: "2027-01-10"},
		{Title: "December Meetup", Description: "End of year meetup.", Date: "2026-12-28"},
	}, decNow)

	got := svc.NextMonth()
	require.Len(t, got, 1)
	assert.Equal(t, "New Year Bootcamp", got[0].Title)
}

func TestSearchReturnsBestSingleMatch(t *testing.T) {
	svc := NewServiceAt(testCalendar(), fixedNow)

	got := svc.Search("any seminar about cybersecurity?")
	require.Len(t, got, 1)
	assert.Equal(t, "Cybersecurity Seminar", got[0].Title)
}

func TestSearchSkipsUnparseableDatesButMatchesText(t *testing.T) {
	svc := NewServiceAt([]domain.Event{
		{Title: "AWS Workshop", Description: "Cloud workshop.", Date: "not-a-date"},
	}, fixedNow)

	assert.Empty(t, svc.Today(), "bad dates are excluded from timeframe filters")

	got := svc.Search("aws workshop")
	require.Len(t, got, 1, "search ignores dates entirely")
	assert.Equal(t, "AWS Workshop", got[0].Title)
}

func TestSearchNoMatch(t *testing.T) {
	svc := NewServiceAt(testCalendar(), fixedNow)
	assert.Nil(t, svc.Search("xyzzy"))
}

func TestFormat(t *testing.T) {
	got := Format([]domain.Event{
		{Title: "CCNA Orientation", Description: "Intro session.", Date: "2026-09-02"},
		{Title: "AWS Workshop", Description: "Hands-on.", Date: "2026-09-06"},
	})

	assert.Equal(t,
		"**CCNA Orientation**\nIntro session.\nDate: 2026-09-02"+
			"\n\n---\n\n"+
			"**AWS Workshop**\nHands-on.\nDate: 2026-09-06",
		got)
	assert.Empty(t, Format(nil))
}

func TestLoadMissingFile(t *testing.T) {
	assert.Nil(t, Load("testdata/does-not-exist.json"))
}
