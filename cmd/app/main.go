package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/ncastro/riobook/config"
	"github.com/ncastro/riobook/internal/bootstrap"
	"github.com/ncastro/riobook/internal/cache"
	"github.com/ncastro/riobook/internal/kafka"
	"github.com/ncastro/riobook/internal/repository"
	"github.com/ncastro/riobook/internal/service/auth"
	"github.com/ncastro/riobook/internal/service/booking"
	"github.com/ncastro/riobook/internal/service/miles"
	"github.com/ncastro/riobook/internal/service/trips"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	tripRepo := repository.NewTripRepository(pool)
	operatorRepo := repository.NewOperatorRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	milesRepo := repository.NewMilesRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	tripService := trips.NewTripService(tripRepo, operatorRepo, redisCache)
	milesService := miles.NewMilesService(milesRepo)
	bookingService := booking.NewBookingService(
		bookingRepo,
		tripRepo,
		milesService,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	authService := auth.NewAuthService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHrs)*time.Hour)

	if err := bootstrap.Run(ctx, cfg, tripService, bookingService, milesService, authService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
