package routes

import (
	"playdates_server/controllers"
	"playdates_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up photo upload routes under /api/s3.
func RegisterS3Routes(r *mux.Router, s3 *services.S3Service, feed *services.FeedService) {
	controller := controllers.NewS3Controller(s3, feed)

	s3Router := r.PathPrefix("/api/s3").Subrouter()
	s3Router.HandleFunc("/upload-url", controller.GenerateUploadURL).Methods("POST")
	s3Router.HandleFunc("/read-url", controller.GenerateReadURL).Methods("GET")
	s3Router.HandleFunc("/check-in", controller.UploadCheckIn).Methods("POST")
}
