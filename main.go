package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/arthurarakelov/burlington-ballers/config"
	"github.com/arthurarakelov/burlington-ballers/middleware"
	"github.com/arthurarakelov/burlington-ballers/routes"
	"github.com/arthurarakelov/burlington-ballers/services"
	"github.com/arthurarakelov/burlington-ballers/socket"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	dynamo := &services.DynamoService{Client: services.InitializeDynamoDBClient(cfg.AWSRegion)}

	userService := &services.UserProfileService{Dynamo: dynamo}
	rsvpService := &services.RSVPService{Dynamo: dynamo, Users: userService}
	weatherService := &services.WeatherService{
		Dynamo:    dynamo,
		APIKey:    cfg.WeatherAPIKey,
		BaseURL:   cfg.WeatherBaseURL,
		Latitude:  cfg.CourtLatitude,
		Longitude: cfg.CourtLongitude,
	}
	gameService := &services.GameService{Dynamo: dynamo, RSVPs: rsvpService, Weather: weatherService}
	chatService := &services.ChatService{Dynamo: dynamo}
	cleanupService := &services.CleanupService{Dynamo: dynamo, RSVPs: rsvpService}

	emailService := services.NewEmailService(cfg)
	scheduler := services.NewNotificationScheduler(gameService, rsvpService, userService, emailService)

	socketServer := socket.NewServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("❌ Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	feedService := &services.FeedService{
		Games:     gameService,
		RSVPs:     rsvpService,
		Users:     userService,
		Chat:      chatService,
		Broadcast: socketServer,
	}

	authenticator, err := middleware.NewAuthenticator(ctx, cfg.FirebaseCredentialsFile, userService)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Firebase auth: %v", err)
	}

	// Clear out anything that expired while we were down.
	if n, err := cleanupService.SweepPastGames(ctx); err != nil {
		log.Printf("⚠️ Startup game sweep failed: %v", err)
	} else if n > 0 {
		log.Printf("🧹 Startup sweep removed %d past game(s)", n)
	}
	if n, err := cleanupService.SweepOldChat(ctx); err != nil {
		log.Printf("⚠️ Startup chat sweep failed: %v", err)
	} else if n > 0 {
		log.Printf("🧹 Startup sweep removed %d old chat message(s)", n)
	}

	scheduler.Start()
	defer scheduler.Stop()

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	}).Methods(http.MethodGet)
	router.Handle("/socket.io/", socketServer)

	routes.RegisterGameRoutes(router, authenticator.Middleware, gameService, scheduler, feedService)
	routes.RegisterRSVPRoutes(router, authenticator.Middleware, rsvpService, feedService)
	routes.RegisterChatRoutes(router, authenticator.Middleware, chatService, feedService)
	routes.RegisterUserProfileRoutes(router, authenticator.Middleware, userService)
	routes.RegisterWeatherRoutes(router, authenticator.Middleware, weatherService)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	log.Printf("✅ Server running on port %s", cfg.ServerPort)
	if err := http.ListenAndServe(":"+cfg.ServerPort, corsHandler); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}
}
