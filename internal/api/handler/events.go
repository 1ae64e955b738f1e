package handler

import (
	"net/http"

	"github.com/corvitlabs/support-bot/internal/api/response"
	"github.com/corvitlabs/support-bot/internal/service"
)

// EventsHandler handles event listing endpoints
type EventsHandler struct {
	chatService *service.ChatService
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(chatService *service.ChatService) *EventsHandler {
	return &EventsHandler{chatService: chatService}
}

// Upcoming lists events in the next seven days
func (h *EventsHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{
		"events": h.chatService.UpcomingEvents(),
	})
}
