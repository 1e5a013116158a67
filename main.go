// File: carebook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carebook/config"
	"carebook/cron"
	"carebook/database"
	bookingRepoPkg "carebook/database/repository/booking"
	providerRepoPkg "carebook/database/repository/provider"
	seekerRepoPkg "carebook/database/repository/seeker"
	"carebook/handlers"
	"carebook/middleware"
	"carebook/routes"
	"carebook/services/booking"
	ai "carebook/services/intelligence"
	"carebook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	seekRepo := seekerRepoPkg.NewMongoSeekerRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	matchingService := &booking.DefaultMatchingService{
		ProviderRepo: provRepo,
		Logger:       logger,
	}
	availabilityService := &booking.DefaultAvailabilityService{
		ProviderRepo: provRepo,
		Logger:       logger,
	}
	bookingService := &booking.DefaultBookingService{
		MatchingSvc:   matchingService,
		BookingRepo:   bookRepo,
		Logger:        logger,
		MaxRadiusKm:   config.AppConfig.MaxMatchRadiusKm,
		DeadlineHours: config.AppConfig.BookingDeadlineHours,
	}
	geminiClient, err := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("failed to init Gemini client: %v", err)
	}
	parser := ai.NewGeminiCommandParser(geminiClient)

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Auth:         handlers.NewAuthHandler(provRepo, seekRepo),
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Booking:      handlers.NewBookingHandler(bookingService, matchingService, seekRepo, config.AppConfig.MaxMatchRadiusKm),
		Command:      handlers.NewCommandHandler(parser, bookingService, seekRepo, utils.GetCacheClient()),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Background sweep for stale pending bookings.
	cron.InitExpiryWorker(bookRepo, logger)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}
