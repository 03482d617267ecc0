// Package gateway is the single choke point for outbound calls to the
// payment provider's REST API. Callers treat any failure as terminal for
// the request; polling and retry policy live client-side.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// requestTimeout bounds every outbound call so a hung gateway connection
// cannot pin a request handler indefinitely.
const requestTimeout = 10 * time.Second

// Error is a structured gateway failure: the HTTP status the gateway
// answered with (or 500 for transport errors) and its reported message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %s (status %d)", e.Message, e.StatusCode)
}

// InitializeRequest is the payload for POST /transaction/initialize.
// Amount is in integer minor units.
type InitializeRequest struct {
	Email    string   `json:"email"`
	Amount   int64    `json:"amount"`
	Currency string   `json:"currency"`
	Channels []string `json:"channels"`
	Metadata Metadata `json:"metadata"`
}

// Metadata is attached to a transaction and echoed back on webhooks and
// verification, correlating the charge with the campaign it funds.
type Metadata struct {
	CampaignID    string `json:"campaign_id,omitempty"`
	CampaignTitle string `json:"campaign_title,omitempty"`
	Phone         string `json:"phone,omitempty"`
	RequestedAt   string `json:"requested_at"`
}

// InitializeData is the useful part of a successful initialize response.
type InitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// TransactionData is the gateway's record of a transaction as returned by
// GET /transaction/verify/{reference}. Fields we never read are kept in
// Raw so the verify endpoint can pass the full record through to clients.
type TransactionData struct {
	Status          string          `json:"status"`
	Reference       string          `json:"reference"`
	Amount          int64           `json:"amount"`
	GatewayResponse string          `json:"gateway_response"`
	Raw             json.RawMessage `json:"-"`
}

// envelope is the gateway's uniform response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the payment gateway. Construct one with New and inject it
// into the services; tests substitute a double behind the payments.Gateway
// interface.
type Client struct {
	http *resty.Client
}

// New builds a Client for the given API root and bearer secret. The secret
// is held only inside the resty client's header map and is never logged.
func New(baseURL, secretKey string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetAuthToken(secretKey).
		SetHeader("Content-Type", "application/json")

	return &Client{http: rc}
}

// InitializeTransaction creates a pending transaction and returns the
// checkout authorization URL plus the gateway-assigned reference.
func (c *Client) InitializeTransaction(ctx context.Context, req InitializeRequest) (*InitializeData, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/transaction/initialize")
	if err != nil {
		return nil, &Error{StatusCode: http.StatusInternalServerError, Message: "Payment initialization failed"}
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var data InitializeData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &Error{StatusCode: http.StatusInternalServerError, Message: "Payment initialization failed"}
	}
	return &data, nil
}

// VerifyTransaction fetches the final status of a transaction by reference.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*TransactionData, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("reference", reference).
		Get("/transaction/verify/{reference}")
	if err != nil {
		return nil, &Error{StatusCode: http.StatusInternalServerError, Message: "Payment verification failed"}
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var data TransactionData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &Error{StatusCode: http.StatusInternalServerError, Message: "Payment verification failed"}
	}
	data.Raw = env.Data
	return &data, nil
}

// decodeEnvelope unwraps the gateway's {status, message, data} wrapper and
// converts non-2xx answers into a structured *Error carrying the gateway's
// own status code and message when it supplied them.
func decodeEnvelope(resp *resty.Response) (*envelope, error) {
	var env envelope
	parseErr := json.Unmarshal(resp.Body(), &env)

	if resp.IsError() || (parseErr == nil && !env.Status) {
		status := resp.StatusCode()
		if status < 400 {
			status = http.StatusInternalServerError
		}
		msg := env.Message
		if msg == "" {
			msg = "Payment gateway request failed"
		}
		return nil, &Error{StatusCode: status, Message: msg}
	}
	if parseErr != nil {
		return nil, &Error{StatusCode: http.StatusInternalServerError, Message: "Payment gateway request failed"}
	}
	return &env, nil
}
