package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arthurarakelov/burlington-ballers/controllers"
	"github.com/arthurarakelov/burlington-ballers/services"
)

func RegisterWeatherRoutes(r *mux.Router, auth mux.MiddlewareFunc, weather *services.WeatherService) {
	controller := &controllers.WeatherController{Weather: weather}

	api := r.PathPrefix("/api/weather").Subrouter()
	api.Use(auth)
	api.HandleFunc("", controller.GetWeatherHandler).Methods(http.MethodGet)
}
