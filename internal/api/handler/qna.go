package handler

import (
	"net/http"

	"github.com/corvitlabs/support-bot/internal/api/response"
	"github.com/corvitlabs/support-bot/internal/service"
)

// SuggestedQuestions returns the curated questions clients can offer
// as quick replies.
func SuggestedQuestions(chatService *service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]any{
			"questions": chatService.SuggestedQuestions(),
		})
	}
}
