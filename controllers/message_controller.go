package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"connectping_server/services"
)

// MessageController struct
type MessageController struct {
	MessageService *services.MessageService
}

// NewMessageController initializes the message controller
func NewMessageController(service *services.MessageService) *MessageController {
	return &MessageController{MessageService: service}
}

// HandleSendDirectMessage - Send a direct message between connected delegates
func (c *MessageController) HandleSendDirectMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SenderID    string `json:"sender_id"`
		RecipientID string `json:"recipient_id"`
		Message     string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if request.SenderID == "" || request.RecipientID == "" {
		WriteError(w, http.StatusBadRequest, "sender_id and recipient_id are required", "")
		return
	}

	message, err := c.MessageService.SendDirectMessage(r.Context(), request.SenderID, request.RecipientID, request.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSameUser), errors.Is(err, services.ErrInvalidMessageLength):
			WriteError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, services.ErrNotConnected):
			WriteError(w, http.StatusForbidden, err.Error(), "")
		default:
			log.Printf("❌ Failed to send direct message %s -> %s: %v", request.SenderID, request.RecipientID, err)
			WriteError(w, http.StatusInternalServerError, "Failed to send message", err.Error())
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"data": message})
}

// HandleGetDirectMessages - Fetch the direct thread between two delegates.
// Fetching marks every unread message addressed to the viewer as read.
func (c *MessageController) HandleGetDirectMessages(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	otherUserID := r.URL.Query().Get("other_user_id")

	if userID == "" || otherUserID == "" {
		WriteError(w, http.StatusBadRequest, "user_id and other_user_id are required", "")
		return
	}

	thread, err := c.MessageService.GetDirectMessages(r.Context(), userID, otherUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSameUser):
			WriteError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, services.ErrNotConnected):
			WriteError(w, http.StatusForbidden, err.Error(), "")
		default:
			log.Printf("❌ Failed to fetch direct messages for %s and %s: %v", userID, otherUserID, err)
			WriteError(w, http.StatusInternalServerError, "Failed to fetch messages", err.Error())
		}
		return
	}

	WriteJSON(w, http.StatusOK, thread)
}
