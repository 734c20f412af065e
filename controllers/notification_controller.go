package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"connectping_server/services"
)

// NotificationController struct
type NotificationController struct {
	NotificationService *services.NotificationService
}

// NewNotificationController initializes the notification controller
func NewNotificationController(service *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: service}
}

// HandleListNotifications - Fetch a delegate's notifications, newest first
func (c *NotificationController) HandleListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		WriteError(w, http.StatusBadRequest, "user_id is required", "")
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	notifications, err := c.NotificationService.ListNotifications(r.Context(), userID, int32(limit))
	if err != nil {
		log.Printf("❌ Failed to fetch notifications for %s: %v", userID, err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch notifications", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

// HandleMarkNotificationRead - Flip a single notification's read flag
func (c *NotificationController) HandleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID      string `json:"user_id"`
		CreatedDate string `json:"created_date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if request.UserID == "" || request.CreatedDate == "" {
		WriteError(w, http.StatusBadRequest, "user_id and created_date are required", "")
		return
	}

	if err := c.NotificationService.MarkNotificationRead(r.Context(), request.UserID, request.CreatedDate); err != nil {
		log.Printf("❌ Failed to mark notification read for %s: %v", request.UserID, err)
		WriteError(w, http.StatusInternalServerError, "Failed to mark notification as read", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
