package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petfectly_server/auth"
	"petfectly_server/config"
	"petfectly_server/routes"
	"petfectly_server/services"
	"petfectly_server/socket"
	"petfectly_server/utils"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Initialize AWS clients
	log.Println("Initializing AWS clients...")
	awsCfg, err := services.LoadAWSConfig(context.Background(), cfg.AWSRegion)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	dynamoService := &services.DynamoService{Client: services.NewDynamoDBClient(awsCfg, cfg.DynamoEndpoint)}
	s3Service := services.NewS3Service(awsCfg, cfg.S3Bucket, cfg.UploadURLTTL)
	log.Println("AWS clients initialized.")

	tokens, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// Initialize Services
	petService := &services.PetService{Dynamo: dynamoService}
	userService := &services.UserService{Dynamo: dynamoService, Pets: petService, BcryptCost: bcrypt.DefaultCost}
	matchService := &services.MatchService{Dynamo: dynamoService}
	chatService := &services.ChatService{Dynamo: dynamoService}

	socketServer := socket.NewServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("❌ Socket server stopped: %v", err)
		}
	}()

	discoveryService := services.NewDiscoveryService(petService, petService, matchService, socketServer, cfg.Discovery())

	// Initialize the router
	r := mux.NewRouter()
	r.Use(utils.WithLogging)

	routes.RegisterRoutes(r)
	routes.RegisterAuthRoutes(r, userService, tokens)
	routes.RegisterPetRoutes(r, petService, tokens)
	routes.RegisterS3Routes(r, s3Service)
	routes.RegisterDiscoveryRoutes(r, discoveryService, tokens)
	routes.RegisterMatchRoutes(r, matchService, tokens)
	routes.RegisterChatRoutes(r, chatService, matchService, socketServer, tokens)
	r.PathPrefix("/socket.io/").Handler(socketServer.Handler())

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsHandler,
	}

	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		log.Println("Shutting down...")
		discoveryService.Close()
		socketServer.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("Starting server on port %s...\n", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server closed")
}
