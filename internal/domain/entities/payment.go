package entities

import "time"

// PaymentStatus represents the settlement outcome of a payment record.
//
// Transitions are one-way: a failed or refunded payment is never resurrected.

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// CanTransitionTo specifies if the payment status may move to the next status.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusCompleted || next == PaymentStatusFailed
	case PaymentStatusCompleted:
		return next == PaymentStatusRefunded
	default:
		return false
	}
}

// PaymentMethod is the settlement rail chosen by the client. The fee schedule
// and funds-release delay depend on it.

type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "pix"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodBoleto     PaymentMethod = "boleto"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodPix, PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodBoleto:
		return true
	default:
		return false
	}
}

// Payment is a settlement record tied 1:1 to an accepted, paid quote.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (quote_id-index): quote_id
//
// Amount equals the quote's TotalPrice at settlement time and is immutable
// thereafter. NetAmount = Amount - AppFee. ChargeRef is the provider-side
// charge identifier; ExternalReference is the caller-supplied idempotency key
// forwarded to the provider.

type Payment struct {
	ID        string `json:"id"`
	QuoteID   string `json:"quote_id"`
	ServiceID string `json:"service_id"`

	Amount   float64       `json:"amount"`
	Currency string        `json:"currency"`
	Method   PaymentMethod `json:"method"`
	Status   PaymentStatus `json:"status"`

	AppFee      float64   `json:"app_fee"`
	GatewayFee  float64   `json:"gateway_fee"`
	NetAmount   float64   `json:"net_amount"`
	AvailableAt time.Time `json:"available_at"`

	ExternalReference string `json:"external_reference"`
	ChargeRef         string `json:"charge_ref,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
