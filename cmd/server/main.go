package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/avetisov/storefront-service/internal/config"
	"github.com/avetisov/storefront-service/internal/infrastructure/http/server"
	"github.com/avetisov/storefront-service/internal/infrastructure/monitoring"
	"github.com/avetisov/storefront-service/internal/infrastructure/persistence/postgres"
	"github.com/avetisov/storefront-service/internal/infrastructure/persistence/redis"
	"github.com/avetisov/storefront-service/internal/infrastructure/scheduler"
	"github.com/avetisov/storefront-service/internal/pkg/clock"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	// A missing .env is fine; secrets then come from the real environment.
	_ = godotenv.Load()

	log := logger.NewLogger()
	log.Info("Starting Storefront Service")

	cfg, configErr := config.LoadConfig(*configPath)
	if configErr != nil {
		log.Fatal("Failed to load configuration", "error", configErr)
	}

	db, dbErr := postgres.NewConnection(cfg.Database)
	if dbErr != nil {
		log.Fatal("Failed to connect to database", "error", dbErr)
	}
	defer db.Close()

	if migrationErr := postgres.RunMigrations(cfg.Database); migrationErr != nil {
		log.Fatal("Failed to run migrations", "error", migrationErr)
	}

	redisClient, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisClient.Close()

	catalogRepo := postgres.NewCatalogRepository(db)
	product, err := catalogRepo.GetProduct(context.Background())
	if err != nil {
		log.Fatal("Failed to load product", "error", err)
	}
	log.Info("Product loaded", "product_id", product.ID, "variants", len(product.Variants))

	dbMetricsCollector := monitoring.NewDBMetricsCollector(db.GetDB())
	dbMetricsCollector.StartCollecting(context.Background(), 30*time.Second)

	// The scheduler gets its own small pool so a stuck request burst cannot
	// starve its ticks.
	schedulerDB, err := postgres.NewBackgroundConnection(cfg.Database)
	if err != nil {
		log.Fatal("Failed to open scheduler database pool", "error", err)
	}
	defer schedulerDB.Close()

	schedulerRepo := postgres.NewCatalogRepository(schedulerDB)
	campaignScheduler := scheduler.NewCampaignScheduler(
		schedulerRepo,
		product,
		cfg.Campaign,
		clock.NewSystemClock(),
		log,
	)

	httpServer := server.NewServer(cfg, product, db.GetDB(), redisClient, log)

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	go campaignScheduler.Start(serverCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigChan
		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		log.Info("Shutting down server...")
		campaignScheduler.Stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}

		serverStopCtx()
	}()

	log.Info("Server starting", "address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server failed", "error", err)
	}

	<-serverCtx.Done()
	log.Info("Server stopped")
}
