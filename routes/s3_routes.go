package routes

import (
	"connectping_server/controllers"
	"connectping_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for badge-photo uploads under /api/s3
func RegisterS3Routes(r *mux.Router, s3Service *services.S3Service) {
	controller := controllers.NewS3Controller(s3Service)

	s3Router := r.PathPrefix("/api/s3").Subrouter()

	s3Router.HandleFunc("/presigned-url", controller.HandleGeneratePresignedURL).Methods("POST")
	s3Router.HandleFunc("/read-url", controller.HandleGetPresignedReadURL).Methods("POST")
}
