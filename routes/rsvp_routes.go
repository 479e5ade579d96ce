package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arthurarakelov/burlington-ballers/controllers"
	"github.com/arthurarakelov/burlington-ballers/services"
)

func RegisterRSVPRoutes(r *mux.Router, auth mux.MiddlewareFunc, rsvps *services.RSVPService, feed *services.FeedService) {
	controller := &controllers.RSVPController{RSVPs: rsvps, Feed: feed}

	api := r.PathPrefix("/api/rsvps").Subrouter()
	api.Use(auth)
	api.HandleFunc("", controller.SetResponseHandler).Methods(http.MethodPut)
	api.HandleFunc("", controller.ClearResponseHandler).Methods(http.MethodDelete)
}
