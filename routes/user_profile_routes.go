package routes

import (
	"connectping_server/controllers"
	"connectping_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for delegate profiles under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, userProfileService *services.UserProfileService) {
	controller := controllers.NewUserProfileController(userProfileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()

	profileRouter.HandleFunc("/{id}", controller.HandleGetUserProfile).Methods("GET")
	profileRouter.HandleFunc("/{id}", controller.HandleUpsertUserProfile).Methods("PUT")
	profileRouter.HandleFunc("/{id}", controller.HandleUpdateUserProfile).Methods("PATCH")
	profileRouter.HandleFunc("/{id}", controller.HandleDeleteUserProfile).Methods("DELETE")
}
