// Package payments implements donation initialization and verification
// against the payment gateway. The service is stateless between requests;
// the gateway reference is the only correlation key, and persistence is a
// side ledger, never a precondition.
package payments

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"

	"github.com/givehub/payments/internal/currency"
	"github.com/givehub/payments/internal/domain"
	"github.com/givehub/payments/internal/gateway"
)

// Gateway is the outbound surface the service depends on. *gateway.Client
// satisfies it in production; tests inject a double.
type Gateway interface {
	InitializeTransaction(ctx context.Context, req gateway.InitializeRequest) (*gateway.InitializeData, error)
	VerifyTransaction(ctx context.Context, reference string) (*gateway.TransactionData, error)
}

// ValidationError rejects a request before any gateway call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Matches the mobile client's own check: something@something.something.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DonationStore is the slice of the repository the service writes to.
type DonationStore interface {
	Insert(d *domain.Donation) error
	UpdateStatus(reference string, status domain.DonationStatus) error
}

// Service handles payment initialization and verification.
type Service struct {
	gw        Gateway
	donations DonationStore
}

// NewService creates the payment service. donations may record every
// initialized transaction; it is consulted only after gateway calls
// succeed, so a storage failure never fails a payment.
func NewService(gw Gateway, donations DonationStore) *Service {
	return &Service{gw: gw, donations: donations}
}

// Initialize validates a donation request, normalizes it to gateway form
// and creates a pending transaction. Validation failures are reported as
// *ValidationError without touching the gateway.
func (s *Service) Initialize(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentInitResult, error) {
	if req.Amount == 0 || req.Email == "" {
		return nil, &ValidationError{Message: "Amount and email are required"}
	}
	if req.Amount < 0 {
		return nil, &ValidationError{Message: "Amount must be greater than 0"}
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, &ValidationError{Message: "Invalid email format"}
	}

	curr := req.Currency
	if curr == "" {
		curr = domain.DefaultCurrency
	}
	channels := req.Channels
	if len(channels) == 0 {
		channels = domain.DefaultChannels
	}
	chanNames := make([]string, len(channels))
	for i, ch := range channels {
		chanNames[i] = string(ch)
	}

	now := time.Now().UTC()
	initReq := gateway.InitializeRequest{
		Email:    req.Email,
		Amount:   currency.ToMinorUnits(req.Amount),
		Currency: curr,
		Channels: chanNames,
		Metadata: gateway.Metadata{
			CampaignID:    req.CampaignID,
			CampaignTitle: req.CampaignTitle,
			Phone:         req.Phone,
			RequestedAt:   now.Format(time.RFC3339),
		},
	}

	data, err := s.gw.InitializeTransaction(ctx, initReq)
	if err != nil {
		return nil, err
	}

	if s.donations != nil {
		d := &domain.Donation{
			Reference:     data.Reference,
			AmountMinor:   initReq.Amount,
			Email:         req.Email,
			Currency:      curr,
			CampaignID:    req.CampaignID,
			CampaignTitle: req.CampaignTitle,
			Status:        domain.StatusInitialized,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.donations.Insert(d); err != nil {
			log.Printf("[payments] failed to record donation %s: %v", data.Reference, err)
		}
	}

	return &domain.PaymentInitResult{
		Success:          true,
		AuthorizationURL: data.AuthorizationURL,
		Reference:        data.Reference,
		AccessCode:       data.AccessCode,
	}, nil
}

// Verify fetches the gateway's record for a reference. Success reflects the
// gateway-reported transaction status: a "pending" or "failed" charge is a
// successful verification with Success=false. The mobile client polls this
// after redirect-based checkout as its fallback confirmation path.
func (s *Service) Verify(ctx context.Context, reference string) (*domain.VerificationResult, error) {
	if reference == "" {
		return nil, &ValidationError{Message: "Payment reference is required"}
	}

	data, err := s.gw.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}

	if data.Status != "success" {
		msg := data.GatewayResponse
		if msg == "" {
			msg = "Payment failed or pending"
		}
		return &domain.VerificationResult{Success: false, Data: data.Raw, Message: msg}, nil
	}

	if s.donations != nil {
		if err := s.donations.UpdateStatus(reference, domain.StatusPaid); err != nil {
			log.Printf("[payments] failed to mark donation %s paid: %v", reference, err)
		}
	}

	return &domain.VerificationResult{
		Success: true,
		Data:    data.Raw,
		Message: "Payment verified",
	}, nil
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
