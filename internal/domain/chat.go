package domain

// ChatRequest represents one chat turn from a user. Language is the
// client's selected input language; when set, input written in another
// script is rejected before routing.
type ChatRequest struct {
	Message   string `json:"message" validate:"required,max=2000"`
	SessionID string `json:"session_id" validate:"omitempty,max=200"`
	Language  string `json:"language" validate:"omitempty,oneof=english urdu"`
}

// ChatResponse represents the reply to one chat turn
type ChatResponse struct {
	RequestID string `json:"request_id"`
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Language  string `json:"language"`
	LatencyMs int64  `json:"latency_ms"`
}
