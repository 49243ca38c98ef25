package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"playdates_server/config"
	"playdates_server/routes"
	"playdates_server/services"
	"playdates_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	s3Service, err := services.NewS3Service(context.Background(), cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		log.Fatalf("Failed to initialize S3: %v", err)
	}

	// Socket server for real-time pushes
	socketServer := socket.NewServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("Socket server stopped: %v", err)
		}
	}()
	defer socketServer.Close()
	notifier := socket.NewNotifier(socketServer)

	// Services
	feedService := services.NewFeedService(dynamoService)
	userProfileService := services.NewUserProfileService(dynamoService)
	friendService := services.NewFriendService(dynamoService, feedService, notifier)
	playdateService := services.NewPlaydateService(dynamoService, feedService)
	eventService := services.NewEventService(dynamoService)
	groupService := services.NewGroupService(dynamoService)
	chatService := services.NewChatService(dynamoService, notifier)
	placesService := services.NewPlacesService(cfg.PlacesAPIKey, cfg.PlacesBaseURL, cfg.PlacesMinInterval, cfg.ExternalCallTimeout)
	placesService.StartSweep(context.Background(), time.Minute)

	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Playdates")
	}).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	r.Handle("/socket.io/", socketServer)

	routes.RegisterUserProfileRoutes(r, userProfileService)
	routes.RegisterFriendRoutes(r, friendService)
	routes.RegisterFeedRoutes(r, feedService, friendService)
	routes.RegisterPlaydateRoutes(r, playdateService)
	routes.RegisterEventRoutes(r, eventService)
	routes.RegisterGroupRoutes(r, groupService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterPlacesRoutes(r, placesService)
	routes.RegisterS3Routes(r, s3Service, feedService)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Printf("Starting server on port %s...", cfg.Port)
	log.Fatal(server.ListenAndServe())
}
