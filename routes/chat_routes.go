package routes

import (
	"playdates_server/controllers"
	"playdates_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up chat routes under /api/chat.
func RegisterChatRoutes(r *mux.Router, chat *services.ChatService) {
	controller := controllers.NewChatController(chat)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()
	chatRouter.HandleFunc("/message", controller.SendMessage).Methods("POST")
	chatRouter.HandleFunc("/messages", controller.GetMessages).Methods("GET")
	chatRouter.HandleFunc("/messages/mark-as-read", controller.MarkMessagesRead).Methods("POST")
	chatRouter.HandleFunc("/unread", controller.UnreadCount).Methods("GET")
}
