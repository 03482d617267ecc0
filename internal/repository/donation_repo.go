package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/givehub/payments/internal/domain"
)

// ErrNotFound is returned when no donation exists for a reference.
var ErrNotFound = errors.New("donation not found")

type DonationRepo struct {
	db *sql.DB
}

func NewDonationRepo(db *sql.DB) *DonationRepo {
	return &DonationRepo{db: db}
}

// Insert records a freshly initialized donation. The gateway reference is
// unique per transaction, so a replayed insert is ignored.
func (r *DonationRepo) Insert(d *domain.Donation) error {
	_, err := r.db.Exec(
		`INSERT OR IGNORE INTO donations
		(reference, amount_minor, email, currency, campaign_id, campaign_title,
		 status, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		d.Reference, d.AmountMinor, d.Email, d.Currency, d.CampaignID,
		d.CampaignTitle, string(d.Status),
		d.CreatedAt.Format(time.RFC3339), d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

// UpdateStatus moves a donation to a new status. Unknown references are not
// an error: a webhook can arrive for a transaction initialized before this
// store existed, or on another instance's database.
func (r *DonationRepo) UpdateStatus(reference string, status domain.DonationStatus) error {
	_, err := r.db.Exec(
		`UPDATE donations SET status = ?, updated_at = ? WHERE reference = ?`,
		string(status), time.Now().UTC().Format(time.RFC3339), reference,
	)
	if err != nil {
		return fmt.Errorf("update donation status: %w", err)
	}
	return nil
}

func (r *DonationRepo) GetByReference(reference string) (*domain.Donation, error) {
	row := r.db.QueryRow(
		`SELECT reference, amount_minor, email, currency, campaign_id,
		        campaign_title, status, created_at, updated_at
		 FROM donations WHERE reference = ?`, reference,
	)

	var d domain.Donation
	var campaignID, campaignTitle sql.NullString
	var status, createdAt, updatedAt string
	err := row.Scan(&d.Reference, &d.AmountMinor, &d.Email, &d.Currency,
		&campaignID, &campaignTitle, &status, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get donation: %w", err)
	}

	d.CampaignID = campaignID.String
	d.CampaignTitle = campaignTitle.String
	d.Status = domain.DonationStatus(status)
	d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	d.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &d, nil
}
