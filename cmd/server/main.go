package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	_ "go.uber.org/automaxprocs"

	"upi-qr-pay/internal/config"
	"upi-qr-pay/internal/constants"
	"upi-qr-pay/internal/handlers"
	"upi-qr-pay/internal/permissions"
	"upi-qr-pay/internal/services"
	"upi-qr-pay/pkg/logoclient"
	"upi-qr-pay/pkg/telegrambot"
	"upi-qr-pay/pkg/webserver"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup logger
	logger := setupLogger(cfg.LogLevel)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize services
	logoService := services.NewLogoService(cfg.Payee, logoclient.NewClient(logger), logger)
	if err := logoService.Refresh(ctx); err != nil {
		logger.Warnf("Logo unavailable at startup, codes will be generated without it: %v", err)
	}

	fontLoader := services.NewFontLoader(cfg.Render.FontPaths, cfg.Render.FontSize, logger)
	qrService := services.NewQRService(cfg.Render, fontLoader, logger)
	registry := services.NewImageRegistry(cfg.Registry, logger)
	paymentService := services.NewPaymentService(cfg.Payee, qrService, logoService, registry, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	runners := pool.New().WithContext(ctx).WithCancelOnError()

	// Start web server
	server := webserver.NewServer(cfg.HTTP, handlers.NewWebHandler(paymentService, cfg.Payee.Name, logger), logger)
	runners.Go(server.Start)

	// Start Telegram bot if configured
	if cfg.Telegram.Enabled() {
		permController := permissions.NewController(cfg.Telegram.AdminIDs, logger)
		bot, err := telegrambot.NewBot(cfg.Telegram, handlers.NewTelegramHandler(paymentService, logger), permController, logger)
		if err != nil {
			logger.Fatal("Failed to create bot: ", err)
		}
		runners.Go(bot.Start)
	}

	logger.Infof("Starting UPI QR server for %s (%s)", cfg.Payee.Name, cfg.Payee.ID)
	if err := runners.Wait(); err != nil {
		logger.Fatal("Server failed: ", err)
	}
}

// setupLogger sets up the logger
func setupLogger(logLevel string) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		log.Printf("Invalid log level %s, defaulting to info", logLevel)
		level = logrus.InfoLevel
	}

	logger.SetLevel(level)

	// Set formatter
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: constants.TimestampFormat,
	})

	return logger
}
