package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/givehub/payments/internal/domain"
)

func newTestDB(t *testing.T) (*DonationRepo, *WebhookEventRepo) {
	t.Helper()
	db, err := InitDB(":memory:")
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewDonationRepo(db), NewWebhookEventRepo(db)
}

func sampleDonation() *domain.Donation {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Donation{
		Reference:     "ref123",
		AmountMinor:   10000,
		Email:         "a@b.com",
		Currency:      "GHS",
		CampaignID:    "camp-1",
		CampaignTitle: "Clean Water",
		Status:        domain.StatusInitialized,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestDonationInsertAndGet(t *testing.T) {
	donations, _ := newTestDB(t)

	if err := donations.Insert(sampleDonation()); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := donations.GetByReference("ref123")
	if err != nil {
		t.Fatalf("GetByReference: %v", err)
	}
	if got.AmountMinor != 10000 || got.Email != "a@b.com" || got.Status != domain.StatusInitialized {
		t.Errorf("got %+v", got)
	}
	if got.CampaignID != "camp-1" || got.CampaignTitle != "Clean Water" {
		t.Errorf("campaign fields lost: %+v", got)
	}
}

func TestDonationInsertReplayIgnored(t *testing.T) {
	donations, _ := newTestDB(t)

	d := sampleDonation()
	if err := donations.Insert(d); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	d2 := sampleDonation()
	d2.AmountMinor = 999
	if err := donations.Insert(d2); err != nil {
		t.Fatalf("replayed Insert: %v", err)
	}

	got, err := donations.GetByReference("ref123")
	if err != nil {
		t.Fatalf("GetByReference: %v", err)
	}
	if got.AmountMinor != 10000 {
		t.Errorf("replay overwrote the original row: %+v", got)
	}
}

func TestDonationUpdateStatus(t *testing.T) {
	donations, _ := newTestDB(t)

	if err := donations.Insert(sampleDonation()); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := donations.UpdateStatus("ref123", domain.StatusPaid); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	got, _ := donations.GetByReference("ref123")
	if got.Status != domain.StatusPaid {
		t.Errorf("status = %s, want paid", got.Status)
	}

	// Unknown reference is not an error.
	if err := donations.UpdateStatus("missing", domain.StatusPaid); err != nil {
		t.Errorf("UpdateStatus on unknown reference: %v", err)
	}
}

func TestDonationNotFound(t *testing.T) {
	donations, _ := newTestDB(t)

	_, err := donations.GetByReference("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestWebhookEventDedup(t *testing.T) {
	_, events := newTestDB(t)

	ev := &domain.WebhookEvent{
		Event: domain.EventChargeSuccess,
		Data: domain.WebhookData{
			Reference: "ref123",
			Amount:    10000,
			Customer:  domain.WebhookCustomer{Email: "a@b.com"},
		},
	}

	inserted, err := events.RecordOnce(ev)
	if err != nil {
		t.Fatalf("RecordOnce: %v", err)
	}
	if !inserted {
		t.Fatal("first delivery must insert")
	}

	inserted, err = events.RecordOnce(ev)
	if err != nil {
		t.Fatalf("RecordOnce redelivery: %v", err)
	}
	if inserted {
		t.Fatal("redelivery must not insert")
	}

	// A different event for the same reference is a distinct row.
	failed := &domain.WebhookEvent{
		Event: domain.EventChargeFailed,
		Data:  domain.WebhookData{Reference: "ref123"},
	}
	inserted, err = events.RecordOnce(failed)
	if err != nil {
		t.Fatalf("RecordOnce other event: %v", err)
	}
	if !inserted {
		t.Fatal("different event type must insert")
	}

	n, err := events.CountByReference("ref123")
	if err != nil {
		t.Fatalf("CountByReference: %v", err)
	}
	if n != 2 {
		t.Errorf("events for ref123 = %d, want 2", n)
	}
}
