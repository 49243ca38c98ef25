package routes

import (
	"playdates_server/controllers"
	"playdates_server/services"

	"github.com/gorilla/mux"
)

// RegisterEventRoutes sets up community event routes under /api/events.
func RegisterEventRoutes(r *mux.Router, events *services.EventService) {
	controller := controllers.NewEventController(events)

	eventRouter := r.PathPrefix("/api/events").Subrouter()
	eventRouter.HandleFunc("", controller.ListUpcoming).Methods("GET")
	eventRouter.HandleFunc("", controller.CreateEvent).Methods("POST")
	eventRouter.HandleFunc("/{eventId}", controller.GetEvent).Methods("GET")
	eventRouter.HandleFunc("/{eventId}/rsvp", controller.RSVP).Methods("POST")
	eventRouter.HandleFunc("/{eventId}/cancel", controller.CancelRSVP).Methods("POST")
}
