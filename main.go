// File: playarena/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playarena/config"
	"playarena/cron"
	"playarena/database"
	bookingRepoPkg "playarena/database/repository/booking"
	scoreRepoPkg "playarena/database/repository/score"
	"playarena/handlers"
	"playarena/middleware"
	"playarena/routes"
	"playarena/services/arena"
	"playarena/services/availability"
	"playarena/services/lock"
	"playarena/services/notification"
	"playarena/services/roster"
	"playarena/services/score"
	"playarena/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.InitLockClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	scoreRepo := scoreRepoPkg.NewMongoScoreRepo()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelIndexes()
	if err := bookingRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	if err := scoreRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure score indexes: %v", err)
	}

	// Notification pipeline: enqueue here, worker drains into RabbitMQ.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	publisher, err := notification.NewRabbitPublisher(config.AppConfig.RabbitMQURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()
	cron.InitNotificationWorker(publisher)

	dispatcher := notification.NewAsynqDispatcher(asynqClient, logger)

	// services.
	leaseManager := lock.NewRedisLeaseManager(
		utils.GetLockClient(), config.SlotLeaseTTL(), config.BookingLeaseTTL())
	rosterService := roster.NewDefaultRosterService(utils.GetAuthCacheClient())
	availabilityService := availability.NewDefaultAvailabilityService(
		bookingRepo,
		utils.GetCacheClient(),
		config.AvailabilityTTL(),
		config.AppConfig.ArenaOpenHour,
		config.AppConfig.ArenaCloseHour,
		logger,
	)
	scoreService := score.NewDefaultScoreService(scoreRepo, bookingRepo, logger)

	arenaService := &arena.DefaultArenaService{
		Repo:         bookingRepo,
		Roster:       rosterService,
		Leases:       leaseManager,
		Availability: availabilityService,
		Scores:       scoreService,
		Notifier:     dispatcher,
		Logger:       logger,
		OpenHour:     config.AppConfig.ArenaOpenHour,
		CloseHour:    config.AppConfig.ArenaCloseHour,
	}

	arenaHandler := handlers.NewArenaHandler(arenaService, availabilityService, logger)
	scoreHandler := handlers.NewScoreHandler(scoreService, logger)
	rosterHandler := handlers.NewRosterHandler(rosterService, logger)

	routes.RegisterRoutes(router, arenaHandler, scoreHandler, rosterHandler)

	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetLockClient(),
	}, database.MongoClient)

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
