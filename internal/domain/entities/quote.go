package entities

import "time"

// QuoteStatus represents the competitive lifecycle of a quote.
//
// Domain notes:
//   - pending is the only non-terminal status.
//   - pending -> expired happens implicitly when valid_until lapses; a quote
//     that already left pending keeps its terminal status even if the date is
//     chronologically past.
//   - Exclusivity invariant: at most one quote per service ever reaches
//     accepted.

type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// Terminal reports whether the status can never change again.
func (s QuoteStatus) Terminal() bool {
	return s != QuoteStatusPending
}

// QuotePaymentStatus is an independent axis from QuoteStatus; paid is only
// reachable from an accepted quote.

type QuotePaymentStatus string

const (
	QuotePaymentStatusPending  QuotePaymentStatus = "pending"
	QuotePaymentStatusPaid     QuotePaymentStatus = "paid"
	QuotePaymentStatusRefunded QuotePaymentStatus = "refunded"
)

// QuoteMaterial is one priced line item of a quote.
type QuoteMaterial struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
}

func (m QuoteMaterial) Total() float64 {
	return m.UnitPrice * float64(m.Quantity)
}

// QuoteLabor is the labor portion of a quote.
type QuoteLabor struct {
	Description string  `json:"description"`
	Total       float64 `json:"total"`
}

// Quote is an offer by one professional against one service.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (service_id-index): service_id
//   - GSI2 (professional_id-index): professional_id
//   - GSI3 (client_id-index): client_id
//
// ClientID is denormalized from the service at creation time so listings by
// client do not fan out. TotalPrice is always computed server-side from
// materials + labor and never trusted from the caller.

type Quote struct {
	ID             string `json:"id"`
	ServiceID      string `json:"service_id"`
	ProfessionalID string `json:"professional_id"`
	ClientID       string `json:"client_id"`

	Materials  []QuoteMaterial `json:"materials"`
	Labor      QuoteLabor      `json:"labor"`
	TotalPrice float64         `json:"total_price"`

	Status        QuoteStatus        `json:"status"`
	PaymentStatus QuotePaymentStatus `json:"payment_status"`
	ValidUntil    time.Time          `json:"valid_until"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether a still-pending quote lapsed at the given instant.
// Terminal quotes are never re-validated against the date.
func (q Quote) Expired(now time.Time) bool {
	return q.Status == QuoteStatusPending && now.After(q.ValidUntil)
}

// ComputeTotal sums materials and labor. This is the only source of truth for
// TotalPrice.
func ComputeTotal(materials []QuoteMaterial, labor QuoteLabor) float64 {
	total := labor.Total
	for _, m := range materials {
		total += m.Total()
	}
	return total
}
