package domain

// ChatSession is a named conversation transcript owned by one user.
// The title doubles as the session identifier and is unique per user.
type ChatSession struct {
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}

// HistoryStore defines the interface for the per-user session log.
// Writes are append-only: no in-place edits, no single-message deletion.
type HistoryStore interface {
	// Append records a user/bot message pair in the given session,
	// creating the session if it does not exist. Empty texts are skipped.
	Append(userID, userText, botText, sessionID string) error

	// RecentUserMessages returns up to limit of the most recent
	// user-authored message texts. An empty sessionID scans all sessions,
	// most recent session first. A missing or corrupt log yields an empty
	// result, not an error.
	RecentUserMessages(userID, sessionID string, limit int) ([]string, error)

	// Sessions returns all sessions for a user in stored order.
	Sessions(userID string) ([]ChatSession, error)

	// DeleteSession removes a whole session by title.
	DeleteSession(userID, title string) error
}
