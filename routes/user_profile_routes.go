package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/arthurarakelov/burlington-ballers/controllers"
	"github.com/arthurarakelov/burlington-ballers/services"
)

func RegisterUserProfileRoutes(r *mux.Router, auth mux.MiddlewareFunc, users *services.UserProfileService) {
	controller := &controllers.UserProfileController{Users: users}

	api := r.PathPrefix("/api/users").Subrouter()
	api.Use(auth)
	api.HandleFunc("/me", controller.GetMeHandler).Methods(http.MethodGet)
	api.HandleFunc("/username", controller.SetUsernameHandler).Methods(http.MethodPost)
	api.HandleFunc("/settings", controller.UpdateSettingsHandler).Methods(http.MethodPut)
}
