package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cinema-reservations/cmd"
	"cinema-reservations/internal/data/repository"
	"cinema-reservations/internal/usecase"
	"cinema-reservations/internal/wire"
	"cinema-reservations/internal/worker"
	"cinema-reservations/pkg/clock"
	"cinema-reservations/pkg/database"
	"cinema-reservations/pkg/events"
	"cinema-reservations/pkg/middleware"
	"cinema-reservations/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	var cache *middleware.ResponseCache
	if config.Cache.Enabled {
		rdb, err := database.InitRedis(ctx, config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, response cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			cache = middleware.NewResponseCache(rdb, config.Cache, logger)
			logger.Info("Response cache enabled", zap.Duration("ttl", config.Cache.TTL))
		}
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if config.Broker.URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(config.Broker.URL, config.Broker.Exchange, logger)
		if err != nil {
			logger.Warn("Broker unavailable, events disabled", zap.Error(err))
		} else {
			defer amqpPublisher.Close()
			publisher = amqpPublisher
		}
	}

	clk := clock.NewRealClock()
	repos := repository.NewRepository(db, logger)

	app := wire.Wiring(repos, wire.Options{
		Deps: usecase.Dependencies{
			Clock:     clk,
			Publisher: publisher,
		},
		Cache: cache,
		DB:    db,
	}, config, logger)

	if config.Reservation.ExpiryAfter > 0 {
		var invalidator worker.Invalidator
		if cache != nil {
			invalidator = cache
		}
		sweeper, err := worker.NewExpirySweeper(app.Service.Reservation, invalidator, config.Reservation, logger)
		if err != nil {
			logger.Fatal("Failed to create expiry sweeper", zap.Error(err))
		}
		sweeper.Start()
		defer func() {
			if err := sweeper.Shutdown(); err != nil {
				logger.Warn("Expiry sweeper shutdown failed", zap.Error(err))
			}
		}()
	}

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
