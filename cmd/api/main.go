package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/velopay/payments-backend/api/routes"
	"github.com/velopay/payments-backend/internal/payments"
	"github.com/velopay/payments-backend/pkg/config"
	"github.com/velopay/payments-backend/pkg/logger"
	"github.com/velopay/payments-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "payments-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "payments-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	store := payments.NewStore()
	paymentsService, err := payments.NewService(store, payments.Defaults{
		Amount:   cfg.Payments.DefaultAmountDecimal(),
		Currency: cfg.Payments.DefaultCurrency,
		Provider: cfg.Payments.Provider,
	}, metrics.NewPaymentMetrics(registry))
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
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
	logg.Info(ctx, "starting payments api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, paymentsService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "payments api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
