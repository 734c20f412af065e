package routes

import (
	"connectping_server/controllers"
	"connectping_server/services"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes sets up routes for notifications under /api/notifications
func RegisterNotificationRoutes(r *mux.Router, notificationService *services.NotificationService) {
	controller := controllers.NewNotificationController(notificationService)

	notificationRouter := r.PathPrefix("/api/notifications").Subrouter()

	notificationRouter.HandleFunc("/mark-read", controller.HandleMarkNotificationRead).Methods("POST")
	notificationRouter.HandleFunc("", controller.HandleListNotifications).Methods("GET")
}
