package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/blogit-be/internal/api"
	"github.com/isdelr/blogit-be/internal/auth"
	"github.com/isdelr/blogit-be/internal/config"
	"github.com/isdelr/blogit-be/internal/database"
	"github.com/isdelr/blogit-be/internal/logger"
	"github.com/isdelr/blogit-be/internal/monitoring"
	"github.com/isdelr/blogit-be/internal/services"
	"github.com/isdelr/blogit-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the live activity feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(db)
	postService := services.NewPostService(db)

	// Set up and run the background event janitor
	janitor := monitoring.NewJanitor(eventService, cfg.EventRetention, cfg.PruneSchedule)
	if err := janitor.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start event janitor")
	}

	// Set up router
	router := api.NewRouter(tokens, userService, postService, eventService, hub, cfg.CORSOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	janitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
