package domain

// Gateway webhook event names we act on. Anything else is acknowledged
// and logged without side effects.
const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
)

// WebhookEvent is the parsed body of a gateway push notification. It arrives
// over an unauthenticated channel and must pass signature verification
// before any field is trusted.
type WebhookEvent struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

type WebhookData struct {
	Reference       string          `json:"reference"`
	Amount          int64           `json:"amount"`
	Status          string          `json:"status,omitempty"`
	GatewayResponse string          `json:"gateway_response,omitempty"`
	Customer        WebhookCustomer `json:"customer"`
}

type WebhookCustomer struct {
	Email string `json:"email"`
}
