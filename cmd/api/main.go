package main

import (
	"context"

	"github.com/Goblincake/delicatessenV8/internal/analytics"
	"github.com/Goblincake/delicatessenV8/internal/config"
	"github.com/Goblincake/delicatessenV8/internal/costs"
	"github.com/Goblincake/delicatessenV8/internal/drivers"
	"github.com/Goblincake/delicatessenV8/internal/logging"
	"github.com/Goblincake/delicatessenV8/internal/menu"
	"github.com/Goblincake/delicatessenV8/internal/metrics"
	"github.com/Goblincake/delicatessenV8/internal/orders"
	"github.com/Goblincake/delicatessenV8/internal/pricing"
	"github.com/Goblincake/delicatessenV8/internal/router"
)

func main() {
	cfg := config.Load()
	logger := logging.New()

	catalog, err := menu.Load(cfg.MenuFile)
	if err != nil {
		logger.WithError(err).Fatal("loading menu catalog")
	}

	orderStore := orders.NewStore(cfg.OrdersFile)
	driverStore := drivers.NewStore(cfg.DriversFile)
	costStore := costs.NewStore(cfg.CostsFile)

	// the mirror is best-effort throughout: if the database is down we
	// still take orders, the JSON log stays the source of truth
	mirror := orders.NewNoopMirror()
	if cfg.DatabaseURL != "" {
		pg, err := orders.NewPostgresMirror(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.WithError(err).Warn("analytics mirror unavailable, continuing without it")
		} else {
			defer pg.Close()
			mirror = pg
			logger.Info("analytics mirror connected")
		}
	}

	reg := metrics.NewRegistry()
	orderService := orders.NewService(orderStore, catalog, mirror, logger)

	r := router.New(router.Deps{
		Logger:       logger,
		Metrics:      reg,
		Menu:         menu.NewHandler(catalog),
		Pricing:      pricing.NewHandler(catalog, reg),
		Orders:       orders.NewHandler(orderService, reg),
		Drivers:      drivers.NewHandler(driverStore, logger),
		Costs:        costs.NewHandler(costStore),
		Analytics:    analytics.NewHandler(orderService, costStore, catalog, reg),
		AllowOrigins: cfg.AllowOrigins,
	})

	logger.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
