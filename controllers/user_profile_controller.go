package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"connectping_server/models"
	"connectping_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController struct
type UserProfileController struct {
	UserProfileService *services.UserProfileService
}

// NewUserProfileController initializes the profile controller
func NewUserProfileController(service *services.UserProfileService) *UserProfileController {
	return &UserProfileController{UserProfileService: service}
}

// HandleGetUserProfile - Fetch a delegate profile by ID
func (c *UserProfileController) HandleGetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	profile, err := c.UserProfileService.GetUserProfile(r.Context(), userID)
	if err != nil {
		log.Printf("❌ Failed to fetch profile %s: %v", userID, err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch profile", err.Error())
		return
	}
	if profile == nil {
		WriteError(w, http.StatusNotFound, "Profile not found", "")
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}

// HandleUpsertUserProfile - Create or replace a delegate profile
func (c *UserProfileController) HandleUpsertUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	profile.UserID = userID

	if profile.FullName == "" {
		WriteError(w, http.StatusBadRequest, "full_name is required", "")
		return
	}

	saved, err := c.UserProfileService.AddUserProfile(r.Context(), profile)
	if err != nil {
		log.Printf("❌ Failed to save profile %s: %v", userID, err)
		WriteError(w, http.StatusInternalServerError, "Failed to save profile", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, saved)
}

// HandleUpdateUserProfile - Patch selected fields of an existing profile
func (c *UserProfileController) HandleUpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if len(updates) == 0 {
		WriteError(w, http.StatusBadRequest, "At least one field is required", "")
		return
	}

	updated, err := c.UserProfileService.UpdateUserProfile(r.Context(), userID, updates)
	if err != nil {
		log.Printf("❌ Failed to update profile %s: %v", userID, err)
		WriteError(w, http.StatusInternalServerError, "Failed to update profile", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

// HandleDeleteUserProfile - Remove a delegate profile
func (c *UserProfileController) HandleDeleteUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	if err := c.UserProfileService.DeleteUserProfile(r.Context(), userID); err != nil {
		log.Printf("❌ Failed to delete profile %s: %v", userID, err)
		WriteError(w, http.StatusInternalServerError, "Failed to delete profile", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
