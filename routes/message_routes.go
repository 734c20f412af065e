package routes

import (
	"connectping_server/controllers"
	"connectping_server/services"

	"github.com/gorilla/mux"
)

// RegisterMessageRoutes sets up routes for direct messaging under /api/messages
func RegisterMessageRoutes(r *mux.Router, messageService *services.MessageService) {
	controller := controllers.NewMessageController(messageService)

	messageRouter := r.PathPrefix("/api/messages").Subrouter()

	messageRouter.HandleFunc("/direct", controller.HandleSendDirectMessage).Methods("POST")
	messageRouter.HandleFunc("/direct", controller.HandleGetDirectMessages).Methods("GET")
}
