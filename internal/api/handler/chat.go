package handler

import (
	"encoding/json"
	"net/http"

	"github.com/corvitlabs/support-bot/internal/api/middleware"
	"github.com/corvitlabs/support-bot/internal/api/response"
	"github.com/corvitlabs/support-bot/internal/domain"
	"github.com/corvitlabs/support-bot/internal/service"
)

// ChatHandler handles the chat endpoint
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat handles one chat turn. The transcript is keyed by the user's
// email, so the same account gets the same history from any client.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmail(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	resp, err := h.chatService.Reply(r.Context(), email, input)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, resp)
}
