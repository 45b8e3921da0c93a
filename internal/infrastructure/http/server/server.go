package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/avetisov/storefront-service/internal/application/commands"
	"github.com/avetisov/storefront-service/internal/config"
	"github.com/avetisov/storefront-service/internal/domain/catalog"
	"github.com/avetisov/storefront-service/internal/infrastructure/analytics"
	"github.com/avetisov/storefront-service/internal/infrastructure/commerce"
	"github.com/avetisov/storefront-service/internal/infrastructure/http/handlers"
	"github.com/avetisov/storefront-service/internal/infrastructure/persistence/postgres"
	"github.com/avetisov/storefront-service/internal/infrastructure/persistence/redis"
	"github.com/avetisov/storefront-service/internal/pkg/clock"
	"github.com/avetisov/storefront-service/internal/pkg/generator"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

const (
	checkoutLockTTL = 30 * time.Second
	sessionIDTTL    = 7 * 24 * time.Hour
)

type Server struct {
	server          *http.Server
	logger          *logger.Logger
	healthHandler   *handlers.HealthHandler
	productHandler  *handlers.ProductHandler
	cartHandler     *handlers.CartHandler
	checkoutHandler *handlers.CheckoutHandler
	adminHandler    *handlers.AdminHandler
}

func NewServer(
	cfg *config.Config,
	product *catalog.Product,
	db *sql.DB,
	redisConn *redis.Connection,
	log *logger.Logger,
) *Server {
	conn := postgres.NewConnectionFromDB(db)
	catalogRepo := postgres.NewCatalogRepository(conn)
	attemptLog := postgres.NewAttemptLogRepository(conn)

	cartStore := redis.NewCartStore(redisConn, log, cfg.Cart.TTL())
	sessionStore := redis.NewSessionStore(redisConn, log)

	gateway := commerce.NewClient(cfg.Commerce, log)
	tracker := analytics.NewHTTPTracker(cfg.Analytics, log)
	tokenGen := generator.NewTokenGenerator()

	cartCommands := commands.NewCartHandler(product, cartStore, tracker, log)
	checkoutCommands := commands.NewCheckoutHandler(
		product,
		cartStore,
		sessionStore,
		attemptLog,
		gateway,
		tracker,
		log,
		checkoutLockTTL,
		sessionIDTTL,
	)

	productHandler := handlers.NewProductHandler(product, catalogRepo, clock.NewSystemClock(), log)
	cartHandler := handlers.NewCartHandler(cartCommands, tokenGen, log)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutCommands, log)
	adminHandler := handlers.NewAdminHandler(product, catalogRepo, log)
	healthHandler := handlers.NewHealthHandler(db, redisConn.GetClient(), log)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server:          server,
		logger:          log,
		healthHandler:   healthHandler,
		productHandler:  productHandler,
		cartHandler:     cartHandler,
		checkoutHandler: checkoutHandler,
		adminHandler:    adminHandler,
	}
}

func (s *Server) ListenAndServe() error {
	s.server.Handler = s.setupRoutes()

	s.logger.Info("Starting HTTP server", "address", s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
