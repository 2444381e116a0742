package main

import (
	"log"
	"net/http"
	"os"

	"talkalot_server/controllers"
	"talkalot_server/repositories"
	"talkalot_server/routes"
	"talkalot_server/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load a local .env if present; real deployments use the environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize DynamoDB client and repositories
	log.Println("Initializing DynamoDB client...")
	dynamoClient := repositories.InitializeDynamoDBClient()
	dynamoService := &repositories.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	userRepo := repositories.NewDynamoUserRepository(dynamoService)
	postRepo := repositories.NewDynamoPostRepository(dynamoService)
	likeRepo := repositories.NewDynamoLikeRepository(dynamoService, postRepo)
	matchRepo := repositories.NewDynamoMatchRepository(dynamoService)
	notifRepo := repositories.NewDynamoNotificationRepository(dynamoService)

	// Initialize Services
	matchService := &services.MatchService{Users: userRepo, Likes: likeRepo, Matches: matchRepo}
	proximityService := &services.ProximityService{Users: userRepo, Likes: likeRepo, Matches: matchRepo}
	handshakeService := &services.HandshakeService{Matches: matchRepo}
	userService := &services.UserService{Users: userRepo, Notifications: notifRepo, Proximity: proximityService}
	postService := &services.PostService{
		Users:         userRepo,
		Posts:         postRepo,
		Likes:         likeRepo,
		Notifications: notifRepo,
		Matcher:       matchService,
		Proximity:     proximityService,
	}
	notificationService := &services.NotificationService{Notifications: notifRepo}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	r.HandleFunc("/", controllers.WelcomeHandler).Methods("GET")
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")

	// Register routes
	routes.RegisterUserRoutes(r, userService)
	routes.RegisterPostRoutes(r, postService)
	routes.RegisterMatchRoutes(r, matchService, handshakeService)
	routes.RegisterNotificationRoutes(r, notificationService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
