// Package history persists per-user chat transcripts as JSON files,
// one file per user, holding that user's named sessions.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/corvitlabs/support-bot/internal/domain"
)

// FileStore implements domain.HistoryStore on top of a log directory.
// Each user's file is guarded by its own mutex so concurrent chats for
// different users never serialize on each other.
type FileStore struct {
	dir string
	log zerolog.Logger
	now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFileStore(dir string, log zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}
	return &FileStore{
		dir:   dir,
		log:   log.With().Str("component", "history").Logger(),
		now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

func (s *FileStore) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// filename maps a user ID (an email address) onto a flat file name.
func filename(userID string) string {
	sanitized := strings.ReplaceAll(userID, "@", "_")
	sanitized = strings.ReplaceAll(sanitized, ".", "_")
	return sanitized + ".json"
}

func (s *FileStore) path(userID string) string {
	return filepath.Join(s.dir, filename(userID))
}

// load reads a user's sessions. Missing or corrupt files come back as
// an empty transcript so one bad file never takes the chat path down.
func (s *FileStore) load(userID string) []domain.ChatSession {
	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		return nil
	}
	var sessions []domain.ChatSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		s.log.Warn().Err(err).Str("user", userID).Msg("corrupt history file, starting fresh")
		return nil
	}
	return sessions
}

func (s *FileStore) save(userID string, sessions []domain.ChatSession) error {
	data, err := json.MarshalIndent(sessions, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := os.WriteFile(s.path(userID), data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Append records one user/bot exchange, creating the session on first
// use. An empty sessionID opens a fresh session titled with the current
// time.
func (s *FileStore) Append(userID, userText, botText, sessionID string) error {
	if userID == "" {
		return fmt.Errorf("empty user id")
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	sessions := s.load(userID)

	idx := -1
	if sessionID != "" {
		for i := range sessions {
			if sessions[i].Title == sessionID {
				idx = i
				break
			}
		}
	}
	if idx == -1 {
		title := sessionID
		if title == "" {
			title = "Chat " + s.now().Format("02-Jan 15:04")
		}
		sessions = append(sessions, domain.ChatSession{Title: title})
		idx = len(sessions) - 1
	}

	if text := strings.TrimSpace(userText); text != "" {
		sessions[idx].Messages = append(sessions[idx].Messages, domain.Message{Role: domain.RoleUser, Text: text})
	}
	if text := strings.TrimSpace(botText); text != "" {
		sessions[idx].Messages = append(sessions[idx].Messages, domain.Message{Role: domain.RoleBot, Text: text})
	}

	return s.save(userID, sessions)
}

// RecentUserMessages returns up to limit of the latest user-authored
// texts. With a sessionID only that session is read; otherwise sessions
// are scanned newest title first.
func (s *FileStore) RecentUserMessages(userID, sessionID string, limit int) ([]string, error) {
	if userID == "" || limit <= 0 {
		return nil, nil
	}

	lock := s.userLock(userID)
	lock.Lock()
	sessions := s.load(userID)
	lock.Unlock()

	var texts []string
	if sessionID != "" {
		for _, session := range sessions {
			if session.Title == sessionID {
				texts = userTexts(session)
				break
			}
		}
	} else {
		sorted := make([]domain.ChatSession, len(sessions))
		copy(sorted, sessions)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Title > sorted[j].Title
		})
		for _, session := range sorted {
			texts = append(texts, userTexts(session)...)
		}
	}

	if len(texts) > limit {
		texts = texts[len(texts)-limit:]
	}
	return texts, nil
}

func userTexts(session domain.ChatSession) []string {
	var texts []string
	for _, msg := range session.Messages {
		if msg.Role == domain.RoleUser && strings.TrimSpace(msg.Text) != "" {
			texts = append(texts, msg.Text)
		}
	}
	return texts
}

// Sessions returns the user's sessions in stored order.
func (s *FileStore) Sessions(userID string) ([]domain.ChatSession, error) {
	if userID == "" {
		return nil, fmt.Errorf("empty user id")
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()
	return s.load(userID), nil
}

// DeleteSession removes one session by title. Deleting a session that
// does not exist is a no-op.
func (s *FileStore) DeleteSession(userID, title string) error {
	if userID == "" {
		return fmt.Errorf("empty user id")
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	sessions := s.load(userID)
	kept := sessions[:0]
	for _, session := range sessions {
		if session.Title != title {
			kept = append(kept, session)
		}
	}
	if len(kept) == len(sessions) {
		return nil
	}
	return s.save(userID, kept)
}
