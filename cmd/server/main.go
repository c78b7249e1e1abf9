package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aphonix-notify/internal/api"
	"aphonix-notify/internal/auth"
	"aphonix-notify/internal/config"
	"aphonix-notify/internal/db"
	"aphonix-notify/internal/email"
	"aphonix-notify/internal/metrics"
)

func main() {

	// ------------------------------------------------
	// Logger
	// ------------------------------------------------
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// ------------------------------------------------
	// Config (.env is optional)
	// ------------------------------------------------
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// ------------------------------------------------
	// Root Context + Shutdown
	// ------------------------------------------------
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()

	// ------------------------------------------------
	// Database
	// ------------------------------------------------
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal("schema init failed", zap.Error(err))
	}

	// ------------------------------------------------
	// Metrics
	// ------------------------------------------------
	metrics.Init()

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	metricsServer := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: metricsMux,
	}

	go func() {
		logger.Info("metrics server started", zap.String("port", cfg.MetricsPort))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("metrics server error", zap.Error(err))
		}
	}()

	// ------------------------------------------------
	// Email Provider
	// ------------------------------------------------
	var mailer email.Mailer
	switch cfg.EmailProvider {
	case "smtp":
		mailer = &email.SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		}
	default:
		mailer = email.NewResendClient(cfg.ResendAPIKey, cfg.ResendBaseURL)
	}

	// ------------------------------------------------
	// Admin Sessions
	// ------------------------------------------------
	sessions := auth.NewSessions(
		cfg.AdminPasswordHash,
		time.Duration(cfg.SessionTTLMinutes)*time.Minute,
	)

	// ------------------------------------------------
	// Rate Limiter
	// ------------------------------------------------
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)

	// ------------------------------------------------
	// HTTP API Server
	// ------------------------------------------------
	handler := &api.Handler{
		Store:         store,
		Mailer:        mailer,
		Sessions:      sessions,
		Log:           logger,
		From:          cfg.FromAddress,
		OperatorInbox: cfg.OperatorInbox,
	}

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/send", api.Instrument("send", handler.RateLimit(limiter, handler.SendNotification)))
	apiMux.HandleFunc("/health", api.Instrument("health", handler.Health))
	apiMux.HandleFunc("/admin/login", api.Instrument("admin_login", handler.Login))
	apiMux.HandleFunc("/admin/orders", api.Instrument("admin_orders", handler.RequireAuth(handler.ListOrders)))
	apiMux.HandleFunc("/admin/orders/status", api.Instrument("admin_order_status", handler.RequireAuth(handler.UpdateOrderStatus)))
	apiMux.HandleFunc("/admin/messages", api.Instrument("admin_messages", handler.RequireAuth(handler.ListContactMessages)))
	apiMux.HandleFunc("/admin/replies", api.Instrument("admin_replies", handler.RequireAuth(handler.ListOrderReplies)))
	apiMux.HandleFunc("/admin/settings/megasale", api.Instrument("admin_megasale", handler.RequireAuth(handler.MegaSale)))

	apiServer := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: apiMux,
	}

	go func() {
		logger.Info("api server started", zap.String("port", cfg.APIPort))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("api server error", zap.Error(err))
		}
	}()

	// ------------------------------------------------
	// Wait for shutdown
	// ------------------------------------------------
	<-ctx.Done()

	logger.Info("shutting down services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown failed", zap.Error(err))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics shutdown failed", zap.Error(err))
	}

	logger.Info("application shutdown complete")
}
