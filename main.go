package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/database"
	availabilityRepo "slotwise/database/repository/availabilitystore"
	bookingRepo "slotwise/database/repository/bookingstore"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/routes"
	"slotwise/services/availability"
	"slotwise/services/calendar"
	"slotwise/services/scheduling"
	"slotwise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitRateLimitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	availabilities := availabilityRepo.NewMongoAvailabilityRepo()

	bookingColl := database.MongoClient.Database("slotwise").Collection("bookings")
	if err := bookingRepo.EnsureBookingIndexes(bookingColl); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// services.
	availabilitySvc := &availability.DefaultAvailabilityService{
		Repo:     availabilities,
		Cache:    utils.GetCacheClient(),
		CacheTTL: 10 * time.Minute,
		Logger:   logger,
	}

	sourceTimeout := time.Duration(config.AppConfig.ConflictSourceTimeoutMS) * time.Millisecond
	validator := scheduling.NewConflictValidator(sourceTimeout, logger)
	schedulingSvc := &scheduling.DefaultSchedulingService{Validator: validator}

	var vendorSources func(hostID string) []scheduling.ConflictSource
	if config.AppConfig.GoogleAPIKey != "" {
		googleSource, err := calendar.NewGoogleCalendarSource(
			context.Background(),
			config.AppConfig.GoogleAPIKey,
			config.AppConfig.GoogleCalendarID,
			logger,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize google calendar source: %v", err)
		}
		vendorSources = func(string) []scheduling.ConflictSource {
			return []scheduling.ConflictSource{googleSource}
		}
	} else {
		logger.Info("no google api key configured, running with the native source only")
		vendorSources = func(string) []scheduling.ConflictSource { return nil }
	}

	sourcesFor := func(hostID string) []scheduling.ConflictSource {
		sources := []scheduling.ConflictSource{
			&calendar.NativeSource{HostID: hostID, Repo: bookings},
		}
		return append(sources, vendorSources(hostID)...)
	}

	bookingHandler := handlers.NewBookingHandler(schedulingSvc, availabilitySvc, bookings, sourcesFor, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilitySvc, schedulingSvc, logger)

	routes.RegisterRoutes(router, bookingHandler, availabilityHandler)

	// Background revalidation of committed bookings against vendor calendars.
	revalidationDeps := cron.RevalidationDeps{
		Bookings:        bookings,
		AvailabilitySvc: availabilitySvc,
		Validator:       validator,
		VendorSources:   vendorSources,
		Logger:          logger,
	}
	cron.InitRevalidationWorker(revalidationDeps)
	cron.StartRevalidationScheduler(revalidationDeps, 15*time.Minute, 24*time.Hour, 200)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
