// Package webhook authenticates and processes asynchronous gateway push
// notifications. The HMAC signature is the only trust boundary on this
// channel, so nothing in a payload is acted on before verification.
package webhook

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"

	"github.com/givehub/payments/internal/domain"
)

// ErrBadSignature covers both a missing and a mismatched signature. The
// two cases are deliberately indistinguishable to the caller.
var ErrBadSignature = errors.New("webhook: invalid signature")

// ErrBadPayload is returned for a body that verified but cannot be parsed.
var ErrBadPayload = errors.New("webhook: malformed payload")

// EventStore records deliveries exactly once per (event, reference).
type EventStore interface {
	RecordOnce(ev *domain.WebhookEvent) (bool, error)
}

// DonationStore updates the donation a charge event refers to.
type DonationStore interface {
	UpdateStatus(reference string, status domain.DonationStatus) error
}

// Processor verifies and dispatches webhook deliveries.
type Processor struct {
	secret    []byte
	events    EventStore
	donations DonationStore
}

func NewProcessor(secret string, events EventStore, donations DonationStore) *Processor {
	return &Processor{secret: []byte(secret), events: events, donations: donations}
}

// Signature computes the hex HMAC-SHA512 of body under the shared secret.
// The gateway signs the exact bytes it sends, so body must be the raw
// request body, captured before any JSON handling.
func Signature(secret, body []byte) string {
	mac := hmac.New(sha512.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks the x-paystack-signature header value against the raw body.
// Comparison is constant time.
func (p *Processor) Verify(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	expected := Signature(p.secret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Process authenticates and dispatches one delivery. It returns
// ErrBadSignature or ErrBadPayload for the two rejection cases; both map to
// the same HTTP 400 upstream. A redelivered event is acknowledged without
// repeating side effects.
func (p *Processor) Process(body []byte, signature string) error {
	if !p.Verify(body, signature) {
		return ErrBadSignature
	}

	var ev domain.WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil || ev.Event == "" {
		return ErrBadPayload
	}

	first := true
	if p.events != nil {
		inserted, err := p.events.RecordOnce(&ev)
		if err != nil {
			return err
		}
		first = inserted
	}
	if !first {
		log.Printf("[webhook] duplicate delivery ignored: event=%s reference=%s", ev.Event, ev.Data.Reference)
		return nil
	}

	switch ev.Event {
	case domain.EventChargeSuccess:
		log.Printf("[webhook] charge succeeded: reference=%s amount=%d email=%s",
			ev.Data.Reference, ev.Data.Amount, ev.Data.Customer.Email)
		p.markDonation(ev.Data.Reference, domain.StatusPaid)
	case domain.EventChargeFailed:
		log.Printf("[webhook] charge failed: reference=%s response=%q",
			ev.Data.Reference, ev.Data.GatewayResponse)
		p.markDonation(ev.Data.Reference, domain.StatusFailed)
	default:
		log.Printf("[webhook] unhandled event: %s", ev.Event)
	}

	return nil
}

func (p *Processor) markDonation(reference string, status domain.DonationStatus) {
	if p.donations == nil || reference == "" {
		return
	}
	if err := p.donations.UpdateStatus(reference, status); err != nil {
		log.Printf("[webhook] failed to update donation %s: %v", reference, err)
	}
}
