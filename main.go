package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"kindler_server/routes"
	"kindler_server/services"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	profileService := &services.ProfileService{Dynamo: dynamoService}
	blockService := &services.BlockService{Dynamo: dynamoService}
	matchService := &services.MatchService{Dynamo: dynamoService, Profile: profileService}
	swipeService := &services.SwipeService{Dynamo: dynamoService, Profile: profileService, Blocks: blockService, Match: matchService}
	notificationService := &services.NotificationService{Dynamo: dynamoService}

	discoveryService := &services.DiscoveryService{Dynamo: dynamoService, Profile: profileService, Blocks: blockService}
	if os.Getenv("S3_BUCKET_NAME") != "" {
		discoveryService.Media = services.NewMediaService()
	} else {
		log.Println("S3_BUCKET_NAME not set; discovery responses will omit photo URLs")
	}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Kindler")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterDatingRoutes(r, swipeService, discoveryService, matchService, notificationService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-User-ID"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
