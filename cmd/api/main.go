package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/filtercore/pricing-backend/api/routes"
	"github.com/filtercore/pricing-backend/internal/b2b"
	"github.com/filtercore/pricing-backend/internal/catalog"
	"github.com/filtercore/pricing-backend/internal/deals"
	"github.com/filtercore/pricing-backend/internal/discounts"
	pricingcore "github.com/filtercore/pricing-backend/internal/pricing"
	"github.com/filtercore/pricing-backend/internal/rewards"
	"github.com/filtercore/pricing-backend/internal/tierpricing"
	"github.com/filtercore/pricing-backend/pkg/config"
	"github.com/filtercore/pricing-backend/pkg/db"
	"github.com/filtercore/pricing-backend/pkg/logger"
	"github.com/filtercore/pricing-backend/pkg/metrics"
	"github.com/filtercore/pricing-backend/pkg/migrate"
	"github.com/filtercore/pricing-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	pricingMetrics := metrics.NewPricingMetrics(prometheus.DefaultRegisterer)

	tierService, err := tierpricing.NewService(tierpricing.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create tier pricing service", err)
		os.Exit(1)
	}

	accountService, err := b2b.NewService(b2b.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create account service", err)
		os.Exit(1)
	}

	quoter, err := pricingcore.NewQuoter(tierService)
	if err != nil {
		logg.Error(context.Background(), "failed to create quoter", err)
		os.Exit(1)
	}

	discountService, err := discounts.NewService(discounts.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create discount service", err)
		os.Exit(1)
	}

	dealRepo := deals.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())

	rewardService, err := rewards.NewService(catalogRepo, dealRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create rewards service", err)
		os.Exit(1)
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
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			redisClient,
			pricingMetrics,
			tierService,
			accountService,
			quoter,
			rewardService,
			discountService,
			dealRepo,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
