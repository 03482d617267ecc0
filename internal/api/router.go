package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/givehub/payments/internal/config"
	"github.com/givehub/payments/internal/payments"
	"github.com/givehub/payments/internal/repository"
	"github.com/givehub/payments/internal/webhook"
)

// NewRouter creates the Chi router with all routes mounted.
func NewRouter(
	cfg *config.Config,
	paySvc *payments.Service,
	hooks *webhook.Processor,
	donationRepo *repository.DonationRepo,
) http.Handler {
	h := &Handlers{
		payments:    paySvc,
		hooks:       hooks,
		donations:   donationRepo,
		environment: cfg.Environment,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.Logger)
	r.Use(recoverer(cfg.IsProduction()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	// Payments.
	r.Post("/initialize-payment", h.InitializePayment)
	r.Get("/verify-payment/{reference}", h.VerifyPayment)
	// A bare /verify-payment must surface the missing-reference validation
	// error rather than a routing 404.
	r.Get("/verify-payment", h.VerifyPayment)

	// Gateway callbacks.
	r.Post("/webhook", h.Webhook)

	// Donation ledger (dashboard/debug surface).
	r.Get("/donations/{reference}", h.GetDonation)

	// Liveness.
	r.Get("/health", h.Health)
	r.Get("/", h.Banner)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	return r
}
