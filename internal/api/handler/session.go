package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/corvitlabs/support-bot/internal/api/middleware"
	"github.com/corvitlabs/support-bot/internal/api/response"
	"github.com/corvitlabs/support-bot/internal/service"
)

// SessionHandler handles chat session endpoints
type SessionHandler struct {
	chatService *service.ChatService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(chatService *service.ChatService) *SessionHandler {
	return &SessionHandler{chatService: chatService}
}

// List returns all chat sessions for the authenticated user
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	sessions, err := h.chatService.Sessions(email)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, map[string]any{
		"sessions": sessions,
	})
}

// Messages returns the transcript of one session by title
func (h *SessionHandler) Messages(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	title, err := url.PathUnescape(chi.URLParam(r, "title"))
	if err != nil || title == "" {
		response.BadRequest(w, "invalid session title")
		return
	}

	messages, found, err := h.chatService.SessionMessages(email, title)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}
	if !found {
		response.NotFound(w, "session not found")
		return
	}

	response.OK(w, map[string]any{
		"title":    title,
		"messages": messages,
	})
}

// Delete removes one chat session by title
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	// Session titles may contain spaces and colons; they travel escaped.
	title, err := url.PathUnescape(chi.URLParam(r, "title"))
	if err != nil || title == "" {
		response.BadRequest(w, "invalid session title")
		return
	}

	if err := h.chatService.DeleteSession(email, title); err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.NoContent(w)
}
