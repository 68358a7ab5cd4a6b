package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/brndagencynl/HETT-sub001/internal/catalog"
	"github.com/brndagencynl/HETT-sub001/internal/config"
	"github.com/brndagencynl/HETT-sub001/internal/notify"
	"github.com/brndagencynl/HETT-sub001/internal/server"
	"github.com/brndagencynl/HETT-sub001/internal/session"
	"github.com/brndagencynl/HETT-sub001/internal/shipping"
	"github.com/brndagencynl/HETT-sub001/internal/storage"
	"github.com/brndagencynl/HETT-sub001/pkg/api"
	"github.com/brndagencynl/HETT-sub001/pkg/redis"
)

func main() {
	rollback := flag.Bool("rollback", false, "roll back the last database migration and exit")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	redisClient := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
	defer redisClient.Close()

	pgStorage, err := storage.NewPostgresStorage(ctx, cfg, redisClient, logger)
	if err != nil {
		logger.Fatal("Failed to init PostgreSQL storage", zap.Error(err))
	}
	defer pgStorage.Close()

	if *rollback {
		if err := storage.RollbackMigration(ctx, pgStorage.DB(), logger); err != nil {
			logger.Fatal("Failed to rollback migration", zap.Error(err))
		}
		return
	}

	if err := storage.RunMigrations(ctx, pgStorage.DB(), logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	commerceClient := api.NewCommerceClient(cfg.CommerceBaseURL, cfg.CommerceToken, cfg.HTTPRequestTimeout, logger)
	distanceClient := api.NewDistanceClient(cfg.DistanceBaseURL, cfg.DistanceAPIKey, cfg.HTTPRequestTimeout, logger)

	shippingChecker := shipping.NewChecker(shipping.Policy{
		Origin:    cfg.WarehouseAddress,
		MaxKM:     cfg.MaxShippingKM,
		Countries: cfg.ShippingCountries,
	}, distanceClient, logger)

	notifier, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, logger)
	if err != nil {
		logger.Fatal("Failed to create telegram notifier", zap.Error(err))
	}

	srv := server.New(
		catalog.Default(),
		session.NewStore(redisClient, redisClient.TTL()),
		pgStorage,
		commerceClient,
		shippingChecker,
		notifier,
		logger,
	)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Router(cfg.HTTPRequestTimeout),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Veranda configurator listening", zap.String("addr", cfg.HTTPAddr))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("HTTP server stopped with error", zap.Error(err))
	}

	logger.Info("Server shutdown gracefully")
}
