package controllers

import (
	"net/http"
	"strconv"

	"playdates_server/services"
)

// ChatController exposes direct messaging.
type ChatController struct {
	Chat *services.ChatService
}

// NewChatController initializes the chat controller.
func NewChatController(chat *services.ChatService) *ChatController {
	return &ChatController{Chat: chat}
}

// SendMessage handles POST /api/chat/message.
func (c *ChatController) SendMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SenderID    string `json:"senderId"`
		RecipientID string `json:"recipientId"`
		Content     string `json:"content"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.SenderID == "" || body.RecipientID == "" || body.Content == "" {
		writeError(w, http.StatusBadRequest, "senderId, recipientId and content are required")
		return
	}

	message, err := c.Chat.SendMessage(r.Context(), body.SenderID, body.RecipientID, body.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

// GetMessages handles GET /api/chat/messages?userId=..&otherId=..
func (c *ChatController) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	otherID := r.URL.Query().Get("otherId")
	if userID == "" || otherID == "" {
		writeError(w, http.StatusBadRequest, "userId and otherId are required")
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	messages, err := c.Chat.ListMessages(r.Context(), userID, otherID, int32(limit))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// MarkMessagesRead handles POST /api/chat/messages/mark-as-read.
func (c *ChatController) MarkMessagesRead(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID  string `json:"userId"`
		OtherID string `json:"otherId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.UserID == "" || body.OtherID == "" {
		writeError(w, http.StatusBadRequest, "userId and otherId are required")
		return
	}

	if err := c.Chat.MarkMessagesRead(r.Context(), body.UserID, body.OtherID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// UnreadCount handles GET /api/chat/unread?userId=..
func (c *ChatController) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	count, err := c.Chat.UnreadCount(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}
