package domain

import "time"

type DonationStatus string

const (
	StatusInitialized DonationStatus = "initialized"
	StatusPaid        DonationStatus = "paid"
	StatusFailed      DonationStatus = "failed"
)

// Channel is a payment channel offered at checkout.
type Channel string

const (
	ChannelCard        Channel = "card"
	ChannelMobileMoney Channel = "mobile_money"
)

// DefaultChannels is applied when a request does not name any channels.
var DefaultChannels = []Channel{ChannelCard, ChannelMobileMoney}

// DefaultCurrency is applied when a request does not name a currency.
const DefaultCurrency = "GHS"

// PaymentRequest is one donation attempt as submitted by the mobile client.
// It lives for a single initialization call and is not stored as-is.
type PaymentRequest struct {
	Amount        float64   `json:"amount"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	Channels      []Channel `json:"channels,omitempty"`
	CampaignID    string    `json:"campaign_id,omitempty"`
	CampaignTitle string    `json:"campaign_title,omitempty"`
}

// PaymentInitResult is the response body for /initialize-payment.
type PaymentInitResult struct {
	Success          bool   `json:"success"`
	AuthorizationURL string `json:"authorization_url,omitempty"`
	Reference        string `json:"reference,omitempty"`
	AccessCode       string `json:"access_code,omitempty"`
	Error            string `json:"error,omitempty"`
}

// VerificationResult is the response body for /verify-payment. Success
// reflects the gateway-reported transaction status, not transport success.
type VerificationResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Donation is the stored record of an initialized transaction. The gateway
// reference is the correlation key across initialization, webhook delivery
// and verification.
type Donation struct {
	Reference     string         `json:"reference"`
	AmountMinor   int64          `json:"amount_minor"`
	Email         string         `json:"email"`
	Currency      string         `json:"currency"`
	CampaignID    string         `json:"campaign_id,omitempty"`
	CampaignTitle string         `json:"campaign_title,omitempty"`
	Status        DonationStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
