package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/arthurarakelov/burlington-ballers/middleware"
	"github.com/arthurarakelov/burlington-ballers/services"
)

type ChatController struct {
	Chat *services.ChatService
	Feed *services.FeedService
}

// SendMessageHandler handles POST /api/chat/message.
func (cc *ChatController) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	msg, err := cc.Chat.SendMessage(r.Context(), user, body.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	cc.Feed.RefreshChat(r.Context())
	writeJSON(w, http.StatusCreated, msg)
}

// GetMessagesHandler handles GET /api/chat/messages.
func (cc *ChatController) GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	messages, err := cc.Chat.GetRecentMessages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}
