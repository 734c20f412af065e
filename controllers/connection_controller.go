package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"connectping_server/services"
)

// ConnectionController struct
type ConnectionController struct {
	ConnectionService *services.ConnectionService
}

// NewConnectionController initializes the controller
func NewConnectionController(service *services.ConnectionService) *ConnectionController {
	return &ConnectionController{ConnectionService: service}
}

// HandleCheckConnection - Check whether an accepted connection exists between two delegates
func (c *ConnectionController) HandleCheckConnection(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	otherUserID := r.URL.Query().Get("other_user_id")

	if userID == "" || otherUserID == "" {
		WriteError(w, http.StatusBadRequest, "user_id and other_user_id are required", "")
		return
	}
	if userID == otherUserID {
		WriteError(w, http.StatusBadRequest, "Cannot check connection status with yourself", "")
		return
	}

	connected, connection, err := c.ConnectionService.CanDirectMessage(r.Context(), userID, otherUserID)
	if err != nil {
		log.Printf("❌ Error checking connection between %s and %s: %v", userID, otherUserID, err)
		WriteError(w, http.StatusInternalServerError, "Failed to check connection status", err.Error())
		return
	}

	response := map[string]interface{}{"connected": connected}
	if connection != nil {
		response["connection_id"] = connection.ConnectionID
	}
	WriteJSON(w, http.StatusOK, response)
}

// HandleCheckMessagePermission - Check whether two delegates may direct message
func (c *ConnectionController) HandleCheckMessagePermission(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	otherUserID := r.URL.Query().Get("other_user_id")

	if userID == "" || otherUserID == "" {
		WriteError(w, http.StatusBadRequest, "user_id and other_user_id are required", "")
		return
	}
	if userID == otherUserID {
		WriteError(w, http.StatusBadRequest, "Cannot check message permission with yourself", "")
		return
	}

	allowed, connection, err := c.ConnectionService.CanDirectMessage(r.Context(), userID, otherUserID)
	if err != nil {
		log.Printf("❌ Error checking message permission between %s and %s: %v", userID, otherUserID, err)
		WriteError(w, http.StatusInternalServerError, "Failed to check message permission", err.Error())
		return
	}

	message := "Users must be connected to direct message"
	if allowed {
		message = "Users can direct message"
	}

	response := map[string]interface{}{
		"can_direct_message": allowed,
		"message":            message,
	}
	if connection != nil {
		response["connection_details"] = connection
	}
	WriteJSON(w, http.StatusOK, response)
}

// HandleSendConnectionRequest - Create a pending connection request
func (c *ConnectionController) HandleSendConnectionRequest(w http.ResponseWriter, r *http.Request) {
	var request struct {
		RequesterID string `json:"requester_id"`
		RecipientID string `json:"recipient_id"`
		Message     string `json:"message,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if request.RequesterID == "" || request.RecipientID == "" {
		WriteError(w, http.StatusBadRequest, "requester_id and recipient_id are required", "")
		return
	}

	log.Printf("🤝 %s requested a connection with %s", request.RequesterID, request.RecipientID)

	connection, err := c.ConnectionService.SendConnectionRequest(r.Context(), request.RequesterID, request.RecipientID, request.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSameUser),
			errors.Is(err, services.ErrUserNotFound),
			errors.Is(err, services.ErrAlreadyConnected),
			errors.Is(err, services.ErrRequestPending):
			WriteError(w, http.StatusBadRequest, err.Error(), "")
		default:
			log.Printf("❌ Failed to create connection request: %v", err)
			WriteError(w, http.StatusInternalServerError, "Failed to send connection request", err.Error())
		}
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{"connection": connection})
}

// HandleRespondToConnectionRequest - Accept or decline a pending request
func (c *ConnectionController) HandleRespondToConnectionRequest(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ConnectionID string `json:"connection_id"`
		Decision     string `json:"decision"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if request.ConnectionID == "" || request.Decision == "" {
		WriteError(w, http.StatusBadRequest, "connection_id and decision are required", "")
		return
	}

	connection, err := c.ConnectionService.RespondToConnectionRequest(r.Context(), request.ConnectionID, request.Decision)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDecision), errors.Is(err, services.ErrNotPending):
			WriteError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, services.ErrConnectionNotFound):
			WriteError(w, http.StatusNotFound, err.Error(), "")
		default:
			log.Printf("❌ Failed to respond to connection request %s: %v", request.ConnectionID, err)
			WriteError(w, http.StatusInternalServerError, "Failed to respond to connection request", err.Error())
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"connection": connection})
}

// HandleListConnections - List a delegate's connections grouped by state
func (c *ConnectionController) HandleListConnections(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		WriteError(w, http.StatusBadRequest, "user_id is required", "")
		return
	}

	listing, err := c.ConnectionService.ListConnectionsForUser(r.Context(), userID)
	if err != nil {
		log.Printf("❌ Failed to list connections for %s: %v", userID, err)
		WriteError(w, http.StatusInternalServerError, "Failed to list connections", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, listing)
}
