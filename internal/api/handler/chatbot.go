package handler

import (
	"net/http"

	"github.com/Rrens/mindcare/internal/api/response"
	"github.com/Rrens/mindcare/internal/chatbot"
)

// ChatbotRequest is one message to the companion
type ChatbotRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ChatbotIntro opens the companion conversation
type ChatbotIntro struct {
	Welcome        chatbot.Reply       `json:"welcome"`
	QuickQuestions map[string][]string `json:"quickQuestions"`
}

// ChatbotWelcome returns the opening message and quick questions
func ChatbotWelcome(w http.ResponseWriter, r *http.Request) {
	response.OK(w, ChatbotIntro{
		Welcome:        chatbot.Welcome,
		QuickQuestions: chatbot.QuickQuestions,
	})
}

// ChatbotReply answers one companion message
func ChatbotReply(w http.ResponseWriter, r *http.Request) {
	var req ChatbotRequest
	if msg, ok := decode(r, &req); !ok {
		response.BadRequest(w, msg)
		return
	}

	response.OK(w, chatbot.Respond(req.Message))
}
