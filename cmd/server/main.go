package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/auth"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/common/clock"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/common/uuid"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/config"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/deck"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/handlers/web"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/realtime"
	ledgerRepo "github.com/Ogoter374s/BusfahrerV2-sub001/internal/repositories/drink_ledger"
	gameRepo "github.com/Ogoter374s/BusfahrerV2-sub001/internal/repositories/game"
	statsRepo "github.com/Ogoter374s/BusfahrerV2-sub001/internal/repositories/statistics"
	gameService "github.com/Ogoter374s/BusfahrerV2-sub001/internal/services/game"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}

	// Initialize repositories
	games, err := gameRepo.NewRedis(&gameRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("failed to create game repository", zap.Error(err))
	}

	ledger, err := ledgerRepo.NewRedis(&ledgerRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("failed to create drink ledger repository", zap.Error(err))
	}

	stats, err := statsRepo.NewRedis(&statsRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("failed to create statistics repository", zap.Error(err))
	}

	// Initialize game service
	svc, err := gameService.New(&gameService.Config{
		GameRepo:        games,
		DrinkLedgerRepo: ledger,
		StatisticsRepo:  stats,
		ShufflerFactory: deck.NewFactory(&deck.Config{}),
		Random:          rand.New(rand.NewSource(time.Now().UnixNano())),
		Clock:           &clock.DefaultClock{},
		UUIDGenerator:   uuid.New(),
		Logger:          logger.Named("game"),
		ChaosMultiplier: cfg.ChaosMultiplier,
	})
	if err != nil {
		logger.Fatal("failed to create game service", zap.Error(err))
	}

	// Initialize real-time fan-out
	registry := realtime.NewRegistry(&realtime.RegistryConfig{
		Logger: logger.Named("registry"),
	})

	dispatcher, err := realtime.NewDispatcher(&realtime.DispatcherConfig{
		Games:    games,
		Registry: registry,
		Logger:   logger.Named("dispatcher"),
	})
	if err != nil {
		logger.Fatal("failed to create dispatcher", zap.Error(err))
	}

	feed, err := games.SubscribeChanges(context.Background())
	if err != nil {
		logger.Fatal("failed to subscribe to change feed", zap.Error(err))
	}

	runCtx, stopDispatcher := context.WithCancel(context.Background())
	go dispatcher.Run(runCtx, feed.Events())

	// Initialize token verification
	verifier, err := auth.NewTokenVerifier(&auth.Config{
		Secret: cfg.TokenSecret,
		Issuer: cfg.TokenIssuer,
	})
	if err != nil {
		logger.Fatal("failed to create token verifier", zap.Error(err))
	}

	// Initialize the gateway
	server, err := web.New(&web.Config{
		Addr:           cfg.HTTPAddr,
		PublicBaseURL:  cfg.PublicBaseURL,
		AllowedOrigins: cfg.AllowedOrigins,
		GameService:    svc,
		Registry:       registry,
		Verifier:       verifier,
		Logger:         logger.Named("web"),
	})
	if err != nil {
		logger.Fatal("failed to create web gateway", zap.Error(err))
	}

	if err := server.Start(); err != nil {
		logger.Fatal("failed to start web gateway", zap.Error(err))
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Warn("error stopping web gateway", zap.Error(err))
	}

	stopDispatcher()
	if err := feed.Close(); err != nil {
		logger.Warn("error closing change feed", zap.Error(err))
	}

	logger.Info("server has been shut down")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
