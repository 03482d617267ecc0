package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/givehub/payments/internal/api"
	"github.com/givehub/payments/internal/config"
	"github.com/givehub/payments/internal/gateway"
	"github.com/givehub/payments/internal/payments"
	"github.com/givehub/payments/internal/repository"
	"github.com/givehub/payments/internal/webhook"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env vars")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	log.Printf("Initializing database at %s", cfg.DBPath)
	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init DB: %v", err)
	}
	defer db.Close()

	// Create repositories.
	donationRepo := repository.NewDonationRepo(db)
	eventRepo := repository.NewWebhookEventRepo(db)

	// Create the gateway client and services.
	gw := gateway.New(cfg.BaseURL, cfg.SecretKey)
	paySvc := payments.NewService(gw, donationRepo)
	hooks := webhook.NewProcessor(cfg.SecretKey, eventRepo, donationRepo)

	// Create router.
	router := api.NewRouter(cfg, paySvc, hooks, donationRepo)

	log.Printf("GiveHub Donation Payment Service")
	log.Printf("Environment: %s", cfg.Environment)
	log.Printf("Listening on http://localhost:%s", cfg.Port)
	log.Printf("")
	log.Printf("Endpoints:")
	log.Printf("  POST   /initialize-payment")
	log.Printf("  GET    /verify-payment/{reference}")
	log.Printf("  POST   /webhook")
	log.Printf("  GET    /donations/{reference}")
	log.Printf("  GET    /health")

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
