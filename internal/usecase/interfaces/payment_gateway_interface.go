package interfaces

import "context"

// ChargeRequest is the narrow contract the core depends on; the provider's
// wire protocol stays behind the gateway implementation.
type ChargeRequest struct {
	CustomerRef       string
	PayeeRef          string
	Amount            float64
	Currency          string
	Method            string
	SplitPct          float64
	ExternalReference string
	Description       string
}

// ChargeResult is the provider's answer to a charge attempt.
type ChargeResult struct {
	ID     string
	Status string // "approved" or a provider rejection status
}

// IPaymentGateway abstracts the external settlement provider (e.g. Mercado
// Pago). Idempotency is carried by ExternalReference; the call must be given a
// bounded deadline by the caller.
type IPaymentGateway interface {
	CreateCharge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
	Refund(ctx context.Context, chargeRef string) error
}
