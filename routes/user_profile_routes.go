package routes

import (
	"playdates_server/controllers"
	"playdates_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up profile routes under /api/profiles.
func RegisterUserProfileRoutes(r *mux.Router, profiles *services.UserProfileService) {
	controller := controllers.NewUserProfileController(profiles)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.HandleFunc("", controller.CreateProfile).Methods("POST")
	profileRouter.HandleFunc("/search", controller.SearchProfiles).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.GetProfile).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.UpdateProfile).Methods("PATCH")
	profileRouter.HandleFunc("/{userId}", controller.DeleteProfile).Methods("DELETE")
	profileRouter.HandleFunc("/{userId}/location", controller.UpdateLocation).Methods("PUT")
}
