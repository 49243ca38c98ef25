package routes

import (
	"playdates_server/controllers"
	"playdates_server/services"

	"github.com/gorilla/mux"
)

// RegisterGroupRoutes sets up group routes under /api/groups.
func RegisterGroupRoutes(r *mux.Router, groups *services.GroupService) {
	controller := controllers.NewGroupController(groups)

	groupRouter := r.PathPrefix("/api/groups").Subrouter()
	groupRouter.HandleFunc("", controller.CreateGroup).Methods("POST")
	groupRouter.HandleFunc("/posts/{postId}/like", controller.ToggleLike).Methods("POST")
	groupRouter.HandleFunc("/posts/{postId}/vote", controller.Vote).Methods("POST")
	groupRouter.HandleFunc("/{groupId}", controller.GetGroup).Methods("GET")
	groupRouter.HandleFunc("/{groupId}/join", controller.Join).Methods("POST")
	groupRouter.HandleFunc("/{groupId}/approve", controller.Approve).Methods("POST")
	groupRouter.HandleFunc("/{groupId}/leave", controller.Leave).Methods("POST")
	groupRouter.HandleFunc("/{groupId}/posts", controller.ListPosts).Methods("GET")
	groupRouter.HandleFunc("/{groupId}/posts", controller.CreatePost).Methods("POST")
}
