package routes

import (
	"connectping_server/controllers"
	"connectping_server/services"

	"github.com/gorilla/mux"
)

// RegisterConnectionRoutes sets up routes for connection operations under /api/connections
func RegisterConnectionRoutes(r *mux.Router, connectionService *services.ConnectionService, groupService *services.GroupService) {
	controller := controllers.NewConnectionController(connectionService)
	groupController := controllers.NewGroupController(groupService)

	connectionRouter := r.PathPrefix("/api/connections").Subrouter()

	connectionRouter.HandleFunc("/check", controller.HandleCheckConnection).Methods("GET")
	connectionRouter.HandleFunc("/can-message", controller.HandleCheckMessagePermission).Methods("GET")
	connectionRouter.HandleFunc("/request", controller.HandleSendConnectionRequest).Methods("POST")
	connectionRouter.HandleFunc("/respond", controller.HandleRespondToConnectionRequest).Methods("POST")
	connectionRouter.HandleFunc("/validate-group", groupController.HandleValidateGroupConnections).Methods("POST")
	connectionRouter.HandleFunc("", controller.HandleListConnections).Methods("GET")
}
