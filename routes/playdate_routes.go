package routes

import (
	"playdates_server/controllers"
	"playdates_server/services"

	"github.com/gorilla/mux"
)

// RegisterPlaydateRoutes sets up playdate routes under /api/playdates.
func RegisterPlaydateRoutes(r *mux.Router, playdates *services.PlaydateService) {
	controller := controllers.NewPlaydateController(playdates)

	playdateRouter := r.PathPrefix("/api/playdates").Subrouter()
	playdateRouter.HandleFunc("", controller.ListPublic).Methods("GET")
	playdateRouter.HandleFunc("", controller.CreatePlaydate).Methods("POST")
	playdateRouter.HandleFunc("/nearby", controller.ListNearby).Methods("GET")
	playdateRouter.HandleFunc("/{playdateId}", controller.GetPlaydate).Methods("GET")
	playdateRouter.HandleFunc("/{playdateId}", controller.UpdatePlaydate).Methods("PATCH")
	playdateRouter.HandleFunc("/{playdateId}/join", controller.Join).Methods("POST")
	playdateRouter.HandleFunc("/{playdateId}/leave", controller.Leave).Methods("POST")
}
