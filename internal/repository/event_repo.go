package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/givehub/payments/internal/domain"
)

type WebhookEventRepo struct {
	db *sql.DB
}

func NewWebhookEventRepo(db *sql.DB) *WebhookEventRepo {
	return &WebhookEventRepo{db: db}
}

// RecordOnce persists a webhook delivery, keyed on (event, reference).
// Gateways redeliver; the UNIQUE constraint makes the second delivery a
// no-op. Returns whether this call inserted the row, so the caller can
// skip side effects on redelivery.
func (r *WebhookEventRepo) RecordOnce(ev *domain.WebhookEvent) (bool, error) {
	res, err := r.db.Exec(
		`INSERT OR IGNORE INTO webhook_events
		(event, reference, amount_minor, customer_email, received_at)
		VALUES (?,?,?,?,?)`,
		ev.Event, ev.Data.Reference, ev.Data.Amount, ev.Data.Customer.Email,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("record webhook event: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// CountByReference reports how many distinct events have been recorded for
// a transaction reference.
func (r *WebhookEventRepo) CountByReference(reference string) (int, error) {
	var n int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM webhook_events WHERE reference = ?`, reference,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count webhook events: %w", err)
	}
	return n, nil
}
