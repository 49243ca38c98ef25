package routes

import (
	"playdates_server/controllers"
	"playdates_server/services"

	"github.com/gorilla/mux"
)

// RegisterFriendRoutes sets up friendship routes under /api/friends.
func RegisterFriendRoutes(r *mux.Router, friends *services.FriendService) {
	controller := controllers.NewFriendController(friends)

	friendRouter := r.PathPrefix("/api/friends").Subrouter()
	friendRouter.HandleFunc("", controller.ListFriends).Methods("GET")
	friendRouter.HandleFunc("/pending", controller.ListPending).Methods("GET")
	friendRouter.HandleFunc("/request", controller.SendRequest).Methods("POST")
	friendRouter.HandleFunc("/block", controller.Block).Methods("POST")
	friendRouter.HandleFunc("/{friendshipId}/accept", controller.Accept).Methods("POST")
	friendRouter.HandleFunc("/{friendshipId}/decline", controller.Decline).Methods("POST")
}
