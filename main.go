package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carenest/config"
	"carenest/cron"
	"carenest/database"
	bookingRepoPkg "carenest/database/repository/booking"
	modificationRepoPkg "carenest/database/repository/modification"
	"carenest/handlers"
	"carenest/middleware"
	"carenest/routes"
	bookingSvc "carenest/services/booking"
	"carenest/services/modification"
	"carenest/services/notification"
	"carenest/services/tasks"
	"carenest/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	modificationRepo := modificationRepoPkg.NewMongoModificationRepo()

	// services.
	cacheClient := utils.GetCacheClient()
	notificationService := &notification.DefaultNotificationService{
		Cache: cacheClient,
	}

	reminderScheduler := tasks.NewAsynqReminderScheduler()

	bookingService := &bookingSvc.DefaultBookingService{
		Repo:      bookingRepo,
		Notifier:  notificationService,
		Reminders: reminderScheduler,
	}

	approvalCoordinator := &modification.DefaultApprovalCoordinator{
		BookingRepo: bookingRepo,
		ModRepo:     modificationRepo,
		Notifier:    notificationService,
	}

	pricingHandler := handlers.NewPricingHandler(bookingService, cacheClient, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	modificationHandler := handlers.NewModificationHandler(approvalCoordinator, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		QuoteHandler:    pricingHandler.QuoteHandler,
		ClassifyHandler: pricingHandler.ClassifyHandler,

		ConfirmBookingHandler:   bookingHandler.ConfirmBookingHandler,
		GetBookingHandler:       bookingHandler.GetBookingHandler,
		ListMyBookingsHandler:   bookingHandler.ListMyBookingsHandler,
		ActivateBookingHandler:  bookingHandler.ActivateBookingHandler,
		CompleteBookingHandler:  bookingHandler.CompleteBookingHandler,
		PlacementInvoiceHandler: bookingHandler.PlacementInvoiceHandler,

		CreateModificationHandler:  modificationHandler.CreateModificationHandler,
		GetModificationHandler:     modificationHandler.GetModificationHandler,
		ListModificationsHandler:   modificationHandler.ListModificationsHandler,
		ReviewModificationHandler:  modificationHandler.ReviewModificationHandler,
		RespondModificationHandler: modificationHandler.RespondModificationHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker and health monitor.
	cron.InitReminderWorker(bookingRepo, notificationService)
	utils.StartHealthMonitor(cacheClient, database.MongoClient)

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
