// Package service wires the chat pipeline: language normalization,
// intent routing, the per-intent handlers and transcript logging.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/corvitlabs/support-bot/internal/domain"
	"github.com/corvitlabs/support-bot/internal/events"
	"github.com/corvitlabs/support-bot/internal/intent"
	"github.com/corvitlabs/support-bot/internal/lang"
	"github.com/corvitlabs/support-bot/internal/qna"
	"github.com/corvitlabs/support-bot/internal/schedule"
)

// RecommendationPrefix heads every recommendation reply.
const RecommendationPrefix = "**Based on your interests, we recommend:**\n\n"

// NotUnderstoodReply covers the open-domain path producing nothing.
const NotUnderstoodReply = "Sorry, I couldn't understand your question. Please contact Corvit at 051-111-333-222 or email info@corvit.com.pk"

// Warnings for turns aborted before routing when the typed script does
// not match the client's selected language.
const (
	EnglishOnlyReply = "Please type your message in English only."
	UrduOnlyReply    = "براہ کرم صرف اردو زبان میں پیغام لکھیں۔"
)

// Normalizer is the bilingual boundary the chat service runs behind.
type Normalizer interface {
	Detect(text string) lang.Language
	ToEnglish(ctx context.Context, text string) string
	ToUrdu(ctx context.Context, text string) string
}

// Answerer resolves open-domain questions.
type Answerer interface {
	Answer(ctx context.Context, query string) string
}

// Recommender builds course recommendations from chat history.
type Recommender interface {
	Recommend(ctx context.Context, userID, sessionID string) string
}

// ChatService routes one chat turn through the intent cascade.
type ChatService struct {
	normalizer  Normalizer
	qna         *qna.Store
	events      *events.Service
	schedule    *schedule.Service
	recommender Recommender
	answerer    Answerer
	history     domain.HistoryStore
	classifier  *intent.Classifier
	log         zerolog.Logger
	now         func() time.Time
}

func NewChatService(
	normalizer Normalizer,
	qnaStore *qna.Store,
	eventsSvc *events.Service,
	scheduleSvc *schedule.Service,
	recommender Recommender,
	answerer Answerer,
	history domain.HistoryStore,
	log zerolog.Logger,
) *ChatService {
	return &ChatService{
		normalizer:  normalizer,
		qna:         qnaStore,
		events:      eventsSvc,
		schedule:    scheduleSvc,
		recommender: recommender,
		answerer:    answerer,
		history:     history,
		classifier: intent.NewClassifier(func(question string) bool {
			_, ok := qnaStore.Lookup(question)
			return ok
		}),
		log: log.With().Str("component", "chat").Logger(),
		now: time.Now,
	}
}

// Reply handles one chat turn for an authenticated user. Urdu input is
// normalized to English for routing and the reply is translated back.
func (s *ChatService) Reply(ctx context.Context, userID string, req domain.ChatRequest) (*domain.ChatResponse, error) {
	start := s.now()

	language := s.normalizer.Detect(req.Message)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "Chat " + start.Format("02-Jan 15:04")
	}

	// Input in the wrong script for the selected language aborts the
	// turn before routing; nothing is translated or logged.
	if req.Language != "" && req.Language != string(language) {
		reply := EnglishOnlyReply
		if req.Language == string(lang.Urdu) {
			reply = UrduOnlyReply
		}
		return &domain.ChatResponse{
			RequestID: uuid.New().String(),
			SessionID: sessionID,
			Reply:     reply,
			Language:  req.Language,
			LatencyMs: time.Since(start).Milliseconds(),
		}, nil
	}

	english := s.normalizer.ToEnglish(ctx, req.Message)

	routed := s.classifier.Classify(english)
	s.log.Debug().
		Str("user", userID).
		Str("session", sessionID).
		Int("intent", int(routed.Kind)).
		Str("language", string(language)).
		Msg("routing chat turn")

	reply, translate := s.dispatch(ctx, userID, sessionID, english, language, routed)
	if reply == "" {
		reply = NotUnderstoodReply
	}
	if translate && language == lang.Urdu {
		reply = s.normalizer.ToUrdu(ctx, reply)
	}

	// Transcript logging is best effort; a full disk must not eat the reply.
	if err := s.history.Append(userID, english, reply, sessionID); err != nil {
		s.log.Error().Err(err).Str("user", userID).Msg("appending chat history failed")
	}

	return &domain.ChatResponse{
		RequestID: uuid.New().String(),
		SessionID: sessionID,
		Reply:     reply,
		Language:  string(language),
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// dispatch resolves the routed intent to an English reply. The second
// return says whether the reply still needs translation for Urdu
// speakers; curated bilingual answers come back already localized.
func (s *ChatService) dispatch(ctx context.Context, userID, sessionID, english string, language lang.Language, routed intent.Intent) (string, bool) {
	switch routed.Kind {
	case intent.KindGeneralEvent:
		return s.qna.GeneralEventAnswer(language == lang.Urdu), false

	case intent.KindRecommendation:
		return RecommendationPrefix + s.recommender.Recommend(ctx, userID, sessionID), true

	case intent.KindEvent:
		return s.eventReply(english, routed.Timeframe), true

	case intent.KindSchedule:
		if reply := s.schedule.Answer(english); reply != "" {
			return reply, true
		}
		return schedule.UnavailableReply, true

	case intent.KindPredefinedQnA:
		if answer, ok := s.qna.Lookup(english); ok {
			return answer, false
		}
		return s.answerer.Answer(ctx, english), true

	default:
		return s.answerer.Answer(ctx, english), true
	}
}

func (s *ChatService) eventReply(english string, timeframe intent.Timeframe) string {
	var filtered []domain.Event
	switch timeframe {
	case intent.TimeframeToday:
		filtered = s.events.Today()
	case intent.TimeframeTomorrow:
		filtered = s.events.Tomorrow()
	case intent.TimeframeThisWeek:
		filtered = s.events.ThisWeek()
	case intent.TimeframeNextWeek:
		filtered = s.events.NextWeek()
	case intent.TimeframeNextMonth:
		filtered = s.events.NextMonth()
	default:
		filtered = s.events.Search(english)
	}

	if reply := events.Format(filtered); reply != "" {
		return reply
	}
	return events.NoEventsReply
}

// UpcomingEvents lists the next seven days for the events endpoint.
func (s *ChatService) UpcomingEvents() []domain.Event {
	return s.events.NextSevenDays()
}

// SuggestedQuestions exposes the curated question list.
func (s *ChatService) SuggestedQuestions() []string {
	return s.qna.Questions()
}

// Sessions returns the user's stored chat sessions.
func (s *ChatService) Sessions(userID string) ([]domain.ChatSession, error) {
	return s.history.Sessions(userID)
}

// SessionMessages returns the transcript of one session by title. The
// second return reports whether the session exists.
func (s *ChatService) SessionMessages(userID, title string) ([]domain.Message, bool, error) {
	sessions, err := s.history.Sessions(userID)
	if err != nil {
		return nil, false, err
	}
	for _, sess := range sessions {
		if sess.Title == title {
			return sess.Messages, true, nil
		}
	}
	return nil, false, nil
}

// DeleteSession removes one stored session by title.
func (s *ChatService) DeleteSession(userID, title string) error {
	return s.history.DeleteSession(userID, title)
}
