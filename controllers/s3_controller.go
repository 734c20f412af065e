package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"connectping_server/services"
)

// S3Controller struct
type S3Controller struct {
	S3Service *services.S3Service
}

// NewS3Controller initializes the S3 controller
func NewS3Controller(service *services.S3Service) *S3Controller {
	return &S3Controller{S3Service: service}
}

// HandleGeneratePresignedURL generates a presigned URL for badge-photo uploads
func (c *S3Controller) HandleGeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"file_name"`
		FileType string `json:"file_type"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request payload", "")
		return
	}
	if payload.FileName == "" || payload.FileType == "" {
		WriteError(w, http.StatusBadRequest, "file_name and file_type are required", "")
		return
	}

	url, key, err := c.S3Service.GenerateUploadURL(r.Context(), payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("❌ Failed to generate upload URL for %s: %v", payload.FileName, err)
		WriteError(w, http.StatusInternalServerError, "Failed to generate pre-signed URL", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"url": url, "key": key})
}

// HandleGetPresignedReadURL generates a presigned URL for reading a badge photo
func (c *S3Controller) HandleGetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		WriteError(w, http.StatusBadRequest, "Invalid request payload", "")
		return
	}

	url, err := c.S3Service.GenerateReadURL(r.Context(), payload.Key)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to generate read pre-signed URL", err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}
