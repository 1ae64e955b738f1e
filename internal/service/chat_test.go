package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corvitlabs/support-bot/internal/domain"
	"github.com/corvitlabs/support-bot/internal/events"
	"github.com/corvitlabs/support-bot/internal/lang"
	"github.com/corvitlabs/support-bot/internal/qna"
	"github.com/corvitlabs/support-bot/internal/schedule"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubNormalizer fakes the bilingual boundary: inputs carrying the
// "[ur]" marker count as Urdu and are "translated" by stripping it.
type stubNormalizer struct {
	toUrduCalls int
}

func (n *stubNormalizer) Detect(text string) lang.Language {
	if len(text) >= 4 && text[:4] == "[ur]" {
		return lang.Urdu
	}
	return lang.English
}

func (n *stubNormalizer) ToEnglish(ctx context.Context, text string) string {
	if n.Detect(text) == lang.Urdu {
		return text[4:]
	}
	return text
}

func (n *stubNormalizer) ToUrdu(ctx context.Context, text string) string {
	n.toUrduCalls++
	return "[ur]" + text
}

type stubAnswerer struct {
	answer string
	calls  int
}

func (s *stubAnswerer) Answer(ctx context.Context, query string) string {
	s.calls++
	return s.answer
}

type stubRecommender struct {
	recommendation string
}

func (s *stubRecommender) Recommend(ctx context.Context, userID, sessionID string) string {
	return s.recommendation
}

type memoryHistory struct {
	appended  []string
	sessionID string
	sessions  []domain.ChatSession
	err       error
}

func (m *memoryHistory) Append(userID, userText, botText, sessionID string) error {
	m.appended = append(m.appended, userText, botText)
	m.sessionID = sessionID
	return m.err
}

func (m *memoryHistory) RecentUserMessages(userID, sessionID string, limit int) ([]string, error) {
	return nil, nil
}

func (m *memoryHistory) Sessions(userID string) ([]domain.ChatSession, error) {
	return m.sessions, m.err
}

func (m *memoryHistory) DeleteSession(userID, title string) error { return nil }

type fixture struct {
	svc        *ChatService
	normalizer *stubNormalizer
	answerer   *stubAnswerer
	history    *memoryHistory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := func() time.Time {
		return time.Date(2026, time.September, 2, 15, 4, 0, 0, time.UTC)
	}

	qnaStore := qna.NewStore(map[string]string{
		"What courses does Corvit offer?": "CCNA, CEH, AWS and more.",
		qna.GeneralEventQuestionEnglish:   "Workshops, seminars and webinars.",
		qna.GeneralEventQuestionUrdu:      "ورکشاپس، سیمینارز اور ویبینارز۔",
	})

	eventsSvc := events.NewServiceAt([]domain.Event{
		{Title: "CCNA Orientation", Description: "Intro session.", Date: "2026-09-02"},
		{Title: "AWS Workshop", Description: "Hands-on.", Date: "2026-09-20"},
	}, now)

	scheduleSvc := schedule.NewService([]domain.ScheduleEntry{
		{Course: "CCNA", Instructor: "Ahmed Khan", Days: "Mon, Wed", Time: "6 PM", StartingDate: "2026-09-07", Mode: "Onsite", City: "Islamabad"},
	})

	f := &fixture{
		normalizer: &stubNormalizer{},
		answerer:   &stubAnswerer{answer: "The CCNA fee depends on the batch."},
		history:    &memoryHistory{},
	}
	f.svc = NewChatService(
		f.normalizer,
		qnaStore,
		eventsSvc,
		scheduleSvc,
		&stubRecommender{recommendation: "Try the CCNA course."},
		f.answerer,
		f.history,
		zerolog.Nop(),
	)
	f.svc.now = now
	return f
}

func TestReply_OpenDomainGoesToAnswerer(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Reply(context.Background(), "a@b.com", domain.ChatRequest{Message: "What is the fee for CCNA?", SessionID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, "The CCNA fee depends on the batch.", resp.Reply)
	assert.Equal(t, "english", resp.Language)
	assert.Equal(t, "s1", resp.SessionID)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, 1, f.answerer.calls)
	// English question and reply land in the transcript.
	assert.Equal(t, []string{"What is the fee for CCNA?", "The CCNA fee depends on the batch."}, f.history.appended)
}

func TestReply_UrduRoundTrip(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Reply(context.Background(), "a@b.com", domain.ChatRequest{Message: "[ur]What is the fee for CCNA?", SessionID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, "urdu", resp.Language)
	assert.Equal(t, "[ur]The CCNA fee depends on the batch.", resp.Reply)
	// The transcript stores the normalized English question.
	assert.Equal(t, "What is the fee for CCNA?", f.history.appended[0])
}

func TestReply_PredefinedQnAWinsOverAnswerer(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Reply(context.Background(), "a@b.com", domain.ChatRequest{Message: "What courses does Corvit offer?", SessionID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, "CCNA, CEH, AWS and more.", resp.Reply)
	assert.Zero(t, f.answerer.calls)
}

func TestReply_GeneralEventUrduIsNotRetranslated(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Reply(context.Background(), "a@b.com", domain.ChatRequest{Message: "[ur]What types of events occur at Corvit?", SessionID: "s1"})
	require.NoError(t, err)

	// Curated bilingual answers come back in Urdu already.
	assert.Equal(t, "ورکشاپس، سیمینارز اور ویبینارز۔", resp.Reply)
	assert.Zero(t, f.normalizer.toUrduCalls)
}

func TestReply_RecommendationIsPrefixed(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Reply(context.Background(), "a@b.com", domain.ChatRequest{Message: "Which course should I take?", SessionID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, RecommendationPrefix+"Try the CCNA course.", resp.Reply)
}

func TestReply_EventToday(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Reply(context.Background(), "a@b.com", domain.ChatRequest{Message: "Any seminar today?", SessionID: "s1"})
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "CCNA Orientation")
	assert.NotContains(t, resp.Reply, "AWS Workshop")
}

func TestReply_EventNoMatchFallsBack(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Reply(context.Background(), "a@b.com", domain.ChatRequest{Message: "Any seminar tomorrow?", SessionID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, events.NoEventsReply, resp.Reply)
}

func TestReply_Schedule(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Reply(context.Background(), "a@b.com", domain.ChatRequest{Message: "class timing of ccna", SessionID: "s1"})
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "Course: CCNA")
	assert.Contains(t, resp.Reply, "Instructor: Ahmed Khan")
}

func TestReply_EmptySessionIDGetsTimestampTitle(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Reply(context.Background(), "a@b.com", domain.ChatRequest{Message: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "Chat 02-Sep 15:04", resp.SessionID)
	assert.Equal(t, "Chat 02-Sep 15:04", f.history.sessionID)
}

func TestReply_LanguageMismatchAbortsBeforeRouting(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Reply(context.Background(), "a@b.com", domain.ChatRequest{
		Message:  "hello there",
		Language: "urdu",
	})
	require.NoError(t, err)

	assert.Equal(t, UrduOnlyReply, resp.Reply)
	assert.Equal(t, "urdu", resp.Language)
	assert.Zero(t, f.answerer.calls)
	assert.Empty(t, f.history.appended, "aborted turns stay out of the transcript")
}

func TestReply_LanguageMismatchEnglishSelected(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Reply(context.Background(), "a@b.com", domain.ChatRequest{
		Message:  "[ur]سلام",
		Language: "english",
	})
	require.NoError(t, err)

	assert.Equal(t, EnglishOnlyReply, resp.Reply)
	assert.Zero(t, f.answerer.calls)
}

func TestReply_MatchingLanguageSelectionRoutes(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Reply(context.Background(), "a@b.com", domain.ChatRequest{
		Message:   "What is the fee?",
		Language:  "english",
		SessionID: "s1",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.answerer.calls)
	assert.NotEqual(t, EnglishOnlyReply, resp.Reply)
}

func TestSessionMessages(t *testing.T) {
	f := newFixture(t)
	f.history.sessions = []domain.ChatSession{
		{Title: "Chat 01-Sep 10:00", Messages: []domain.Message{
			{Role: domain.RoleUser, Text: "hello"},
			{Role: domain.RoleBot, Text: "hi there"},
		}},
	}

	messages, found, err := f.svc.SessionMessages("a@b.com", "Chat 01-Sep 10:00")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[0].Text)

	_, found, err = f.svc.SessionMessages("a@b.com", "no such chat")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReply_HistoryFailureDoesNotEatReply(t *testing.T) {
	f := newFixture(t)
	f.history.err = errors.New("disk full")

	resp, err := f.svc.Reply(context.Background(), "a@b.com", domain.ChatRequest{Message: "What is the fee?", SessionID: "s1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Reply)
}
