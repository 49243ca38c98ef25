package routes

import (
	"playdates_server/controllers"
	"playdates_server/services"

	"github.com/gorilla/mux"
)

// RegisterFeedRoutes sets up activity feed routes under /api/feed.
func RegisterFeedRoutes(r *mux.Router, feed *services.FeedService, friends *services.FriendService) {
	controller := controllers.NewFeedController(feed, friends)

	feedRouter := r.PathPrefix("/api/feed").Subrouter()
	feedRouter.HandleFunc("", controller.GetFeed).Methods("GET")
	feedRouter.HandleFunc("/session", controller.SetSession).Methods("POST")
	feedRouter.HandleFunc("/refresh", controller.Refresh).Methods("POST")
	feedRouter.HandleFunc("/activity", controller.PostActivity).Methods("POST")
}
