package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/shoecream/shoecare-api/internal/coupon"
	"github.com/shoecream/shoecare-api/internal/http/handlers"
	httpmw "github.com/shoecream/shoecare-api/internal/http/middleware"
	"github.com/shoecream/shoecare-api/internal/repo"
	"github.com/shoecream/shoecare-api/internal/repo/memory"
	"github.com/shoecream/shoecare-api/internal/repo/postgres"
	"github.com/shoecream/shoecare-api/internal/service"
	"github.com/shoecream/shoecare-api/pkg/config"
	"github.com/shoecream/shoecare-api/pkg/database"
	"github.com/shoecream/shoecare-api/pkg/events"
	"github.com/shoecream/shoecare-api/pkg/logger"
	mw "github.com/shoecream/shoecare-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	// Backing store: in-memory unless a database URL is configured
	var store *repo.Store
	if cfg.Store.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.Store)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := postgres.InitSchema(ctx, pool); err != nil {
			logger.Error("Failed to init database schema", "error", err)
			os.Exit(1)
		}
		store = postgres.NewStore(pool)
		logger.Info("Using postgres store")
	} else {
		store = memory.NewStore()
		logger.Info("Using in-memory store")
	}

	// Event bus: NATS, or log-only in dev
	var eventBus events.EventBus
	if cfg.NATS.URL != "" {
		bus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		eventBus = bus
	} else {
		eventBus = events.NewLogEventBus()
	}
	defer eventBus.Close()

	// Services
	catalog := coupon.NewCatalog(cfg.Coupons)
	couponService := service.NewCouponService(store.Members, catalog, eventBus)
	identityService := service.NewIdentityService(store.Members, couponService, catalog, eventBus)
	requestService := service.NewRequestService(store.Requests, store.Members, eventBus)
	contentService := service.NewContentService(store.Content)

	// The shared admin credential is compared against an argon2id hash;
	// it stays a stand-in gate either way.
	adminHash, err := argon2id.CreateHash(cfg.Admin.Password, argon2id.DefaultParams)
	if err != nil {
		logger.Error("Failed to hash admin password", "error", err)
		os.Exit(1)
	}

	h := handlers.New(identityService, couponService, requestService, contentService, cfg, adminHash)

	// Optional Redis rate limiter on signup and admin login
	var registerLimiter func(http.Handler) http.Handler
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Error("Invalid Redis URL", "error", err)
			os.Exit(1)
		}
		limiter := httpmw.NewRateLimiter(redis.NewClient(opts), httpmw.RateLimitConfig{
			Requests: 10,
			Window:   time.Minute,
			KeyFunc:  httpmw.ClientIPKeyFunc,
		})
		registerLimiter = limiter.Middleware()
	}

	// Router
	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("shoecare-api"))
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Mount("/", h.Router(registerLimiter))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting shoecare-api", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
