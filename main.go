package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"connectping_server/routes"
	"connectping_server/services"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Validate configuration up front; a missing region should kill the
	// process at startup, not surface as per-request storage errors
	if os.Getenv("AWS_REGION") == "" {
		log.Fatal("AWS_REGION is required")
	}

	log.Println("Loading AWS config...")
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	dynamoService := &services.DynamoService{Client: dynamodb.NewFromConfig(cfg)}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	userProfileService := &services.UserProfileService{Dynamo: dynamoService}
	notificationService := &services.NotificationService{Dynamo: dynamoService}
	connectionService := &services.ConnectionService{
		Dynamo:        dynamoService,
		Profiles:      userProfileService,
		Notifications: notificationService,
	}
	messageService := &services.MessageService{
		Dynamo:        dynamoService,
		Connections:   connectionService,
		Profiles:      userProfileService,
		Notifications: notificationService,
	}
	groupService := &services.GroupService{
		Connections: connectionService,
		Profiles:    userProfileService,
	}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(map[string]string{"error": "Method not allowed"})
	})

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	// Register routes
	routes.RegisterConnectionRoutes(r, connectionService, groupService)
	routes.RegisterMessageRoutes(r, messageService)
	routes.RegisterNotificationRoutes(r, notificationService)
	routes.RegisterUserProfileRoutes(r, userProfileService)

	// Badge-photo uploads need a bucket; skip the surface when none is configured
	if bucket := os.Getenv("S3_BUCKET_NAME"); bucket != "" {
		s3Service := &services.S3Service{Client: s3.NewFromConfig(cfg), Bucket: bucket}
		routes.RegisterS3Routes(r, s3Service)
	} else {
		log.Println("S3_BUCKET_NAME not set, badge-photo upload routes disabled")
	}

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
