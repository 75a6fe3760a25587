package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/navikt/mrooms/internal/api"
	"github.com/navikt/mrooms/internal/config"
	"github.com/navikt/mrooms/internal/repository"
	"github.com/navikt/mrooms/internal/service"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Initialize the repository for the configured storage driver
	repo, err := repository.NewRepository(config.GetStorageConfig())
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	// Redis and Mongo repositories hold connections; close them on exit
	if closer, ok := repo.(interface{ Close() error }); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Printf("Error closing repository: %v", err)
			}
		}()
	}

	// Initialize the service layer
	roomService := service.NewRoomService(repo)
	meetingService := service.NewMeetingService(repo)

	// Stream booking events to connected clients
	events := api.NewEventServer()
	meetingService.RegisterUpdateCallback(events.NotifyBookingUpdate)

	mux := api.SetupRoutes(roomService, meetingService, events)
	handler := cors.Default().Handler(api.LoggingMiddleware(mux))

	serverConfig := config.GetServerConfig()

	// Configure the HTTP server
	server := &http.Server{
		Addr:         ":" + serverConfig.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disable write timeout for SSE connections
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors coming from the listener
	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting mrooms server on port %s", serverConfig.Port)
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatalf("Error starting server: %v", err)

	case <-shutdown:
		log.Println("Shutting down server...")

		// Close SSE connections first so Shutdown does not wait on them
		events.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			log.Fatalf("Error shutting down server: %v", err)
		}

		log.Println("Server gracefully stopped")
	}
}
