package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"packmarket/internal/client"
	"packmarket/internal/config"
	"packmarket/internal/handler"
	"packmarket/internal/repository"
	"packmarket/internal/server"
	"packmarket/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	db := client.InitDBClient(cfg.DatabasePath)
	paymentClient := client.NewPaymentClient(&cfg.Payment)

	packRepo := repository.NewPackRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	codeRepo := repository.NewDiscountCodeRepository(db)
	followRepo := repository.NewFollowRepository(db)
	downloadRepo := repository.NewDownloadRepository(db)
	planPriceRepo := repository.NewPlanPriceRepository(db)

	if err := planPriceRepo.Seed(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed plan prices")
	}

	discountValidator := service.NewDiscountValidator(codeRepo, followRepo, purchaseRepo)
	planPrices := service.NewPlanPriceService(planPriceRepo)
	checkoutService := service.NewCheckoutService(
		packRepo, profileRepo, purchaseRepo, codeRepo,
		discountValidator, planPrices, paymentClient, cfg.BaseURL,
	)
	earningsService := service.NewEarningsService(packRepo, profileRepo, purchaseRepo)

	srv := server.NewServer(
		handler.NewCheckoutHandler(checkoutService),
		handler.NewPackHandler(packRepo, profileRepo, downloadRepo, discountValidator),
		handler.NewSellerHandler(earningsService),
		handler.NewAdminHandler(planPrices),
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Info().Str("addr", serverAddr).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
