package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"connectping_server/services"
)

// GroupController struct
type GroupController struct {
	GroupService *services.GroupService
}

// NewGroupController initializes the group controller
func NewGroupController(service *services.GroupService) *GroupController {
	return &GroupController{GroupService: service}
}

// HandleValidateGroupConnections - Pre-check whether a group meeting request
// is allowed for every intended recipient
func (c *GroupController) HandleValidateGroupConnections(w http.ResponseWriter, r *http.Request) {
	var request struct {
		RequesterID  string   `json:"requester_id"`
		RecipientIDs []string `json:"recipient_ids"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if request.RequesterID == "" || len(request.RecipientIDs) == 0 {
		WriteError(w, http.StatusBadRequest, "requester_id and recipient_ids are required", "")
		return
	}

	result, err := c.GroupService.ValidateGroupConnections(r.Context(), request.RequesterID, request.RecipientIDs)
	if err != nil {
		if errors.Is(err, services.ErrNoRecipients) {
			WriteError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		log.Printf("❌ Failed to validate group connections for %s: %v", request.RequesterID, err)
		WriteError(w, http.StatusInternalServerError, "Failed to validate group connections", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
