package domain

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser MessageRole = "user"
	RoleBot  MessageRole = "bot"
)

// Message is a single turn in a chat session. Messages are immutable once
// written; ordering is insertion order within the session.
type Message struct {
	Role MessageRole `json:"role"`
	Text string      `json:"text"`
}
