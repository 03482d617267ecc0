package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/givehub/payments/internal/domain"
	"github.com/givehub/payments/internal/gateway"
	"github.com/givehub/payments/internal/payments"
	"github.com/givehub/payments/internal/repository"
	"github.com/givehub/payments/internal/webhook"
)

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	payments    *payments.Service
	hooks       *webhook.Processor
	donations   *repository.DonationRepo
	environment string
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

// writeServiceError maps service-layer failures to HTTP responses:
// validation failures are 400, gateway failures carry the gateway's own
// status code, anything else is a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *payments.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Message)
		return
	}
	var ge *gateway.Error
	if errors.As(err, &ge) {
		writeError(w, ge.StatusCode, ge.Message)
		return
	}
	log.Printf("[api] unexpected error: %v", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// --- InitializePayment ---

func (h *Handlers) InitializePayment(w http.ResponseWriter, r *http.Request) {
	var req domain.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.payments.Initialize(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// --- VerifyPayment ---

func (h *Handlers) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	result, err := h.payments.Verify(r.Context(), reference)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// --- Webhook ---

func (h *Handlers) Webhook(w http.ResponseWriter, r *http.Request) {
	// Signature verification needs the exact bytes the gateway signed, so
	// the body is captured raw, before any JSON decoding.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Webhook rejected")
		return
	}

	signature := r.Header.Get("x-paystack-signature")
	if err := h.hooks.Process(body, signature); err != nil {
		if errors.Is(err, webhook.ErrBadSignature) {
			log.Printf("[api] SECURITY: webhook signature check failed from %s", r.RemoteAddr)
		} else {
			log.Printf("[api] webhook rejected: %v", err)
		}
		// One generic rejection body for every failure mode: the response
		// must not reveal which check failed.
		writeError(w, http.StatusBadRequest, "Webhook rejected")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// --- GetDonation ---

func (h *Handlers) GetDonation(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "Payment reference is required")
		return
	}

	d, err := h.donations.GetByReference(reference)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Donation not found")
		return
	}
	if err != nil {
		log.Printf("[api] get donation: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "donation": d})
}

// --- Health / banner ---

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.environment,
	})
}

func (h *Handlers) Banner(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "givehub-payments",
		"message": "Donation payment service is running",
	})
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Endpoint not found")
}
