package routes

import (
	"playdates_server/controllers"
	"playdates_server/services"

	"github.com/gorilla/mux"
)

// RegisterPlacesRoutes sets up places lookup routes under /api/places.
func RegisterPlacesRoutes(r *mux.Router, places *services.PlacesService) {
	controller := controllers.NewPlacesController(places)

	placesRouter := r.PathPrefix("/api/places").Subrouter()
	placesRouter.HandleFunc("/nearby", controller.SearchNearby).Methods("GET")
	placesRouter.HandleFunc("/geocode", controller.Geocode).Methods("GET")
	placesRouter.HandleFunc("/reverse-geocode", controller.ReverseGeocode).Methods("GET")
	placesRouter.HandleFunc("/directions", controller.GetDirections).Methods("GET")
	placesRouter.HandleFunc("/{placeId}", controller.GetDetail).Methods("GET")
}
