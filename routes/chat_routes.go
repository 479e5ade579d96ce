package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arthurarakelov/burlington-ballers/controllers"
	"github.com/arthurarakelov/burlington-ballers/services"
)

func RegisterChatRoutes(r *mux.Router, auth mux.MiddlewareFunc, chat *services.ChatService, feed *services.FeedService) {
	controller := &controllers.ChatController{Chat: chat, Feed: feed}

	api := r.PathPrefix("/api/chat").Subrouter()
	api.Use(auth)
	api.HandleFunc("/message", controller.SendMessageHandler).Methods(http.MethodPost)
	api.HandleFunc("/messages", controller.GetMessagesHandler).Methods(http.MethodGet)
}
