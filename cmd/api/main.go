package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/justocafe/storefront-api/api/routes"
	cartsvc "github.com/justocafe/storefront-api/internal/cart"
	"github.com/justocafe/storefront-api/internal/catalog"
	checkoutsvc "github.com/justocafe/storefront-api/internal/checkout"
	"github.com/justocafe/storefront-api/internal/recipes"
	"github.com/justocafe/storefront-api/pkg/config"
	"github.com/justocafe/storefront-api/pkg/db"
	"github.com/justocafe/storefront-api/pkg/logger"
	"github.com/justocafe/storefront-api/pkg/metrics"
	"github.com/justocafe/storefront-api/pkg/migrate"
	pkgredis "github.com/justocafe/storefront-api/pkg/redis"
	"github.com/justocafe/storefront-api/pkg/shopify"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = pkgredis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, using in-process cart store")
	}

	products, err := catalog.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(products)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	var cartStore cartsvc.Store
	if redisClient != nil {
		cartStore = cartsvc.NewRedisStore(redisClient, cfg.Cart.SessionTTL)
	} else {
		cartStore = cartsvc.NewMemoryStore(cfg.Cart.SessionTTL)
	}
	cartService := cartsvc.NewService(cartStore, catalogService, logg)

	shopifyClient, err := shopify.NewClient(cfg.Shopify, nil, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create shopify client", err)
		os.Exit(1)
	}

	metricsRegistry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(metricsRegistry)
	checkoutService := checkoutsvc.NewService(shopifyClient, checkoutMetrics, logg)

	recipesService := recipes.NewService(recipes.NewRepository(dbClient.DB()), logg)

	var redisP pkgredis.Pinger
	var idempotencyStore pkgredis.IdempotencyStore
	if redisClient != nil {
		redisP = redisClient
		idempotencyStore = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront api")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisP,
			idempotencyStore,
			catalogService,
			cartService,
			checkoutService,
			recipesService,
			metricsRegistry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront api stopped unexpectedly", err)
		os.Exit(1)
	}
}
