package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arthurarakelov/burlington-ballers/controllers"
	"github.com/arthurarakelov/burlington-ballers/services"
)

func RegisterGameRoutes(r *mux.Router, auth mux.MiddlewareFunc, games *services.GameService, scheduler *services.NotificationScheduler, feed *services.FeedService) {
	controller := &controllers.GameController{Games: games, Scheduler: scheduler, Feed: feed}

	api := r.PathPrefix("/api/games").Subrouter()
	api.Use(auth)
	api.HandleFunc("", controller.CreateGameHandler).Methods(http.MethodPost)
	api.HandleFunc("", controller.GetGamesHandler).Methods(http.MethodGet)
	api.HandleFunc("/{gameId}/location", controller.UpdateLocationHandler).Methods(http.MethodPatch)
	api.HandleFunc("/{gameId}/time", controller.UpdateTimeHandler).Methods(http.MethodPatch)
	api.HandleFunc("/{gameId}/roster", controller.GetRosterHandler).Methods(http.MethodGet)
	api.HandleFunc("/{gameId}", controller.DeleteGameHandler).Methods(http.MethodDelete)
}
