package interfaces

import (
	"context"

	"servihub/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error)

	// UpdateStatus moves the payment status conditionally on the current one.
	UpdateStatus(ctx context.Context, id string, from, to entities.PaymentStatus, chargeRef string) (entities.Payment, error)

	// Confirm settles in one transaction: payment pending -> completed and
	// quote payment_status -> paid. A completed payment alongside an unpaid
	// quote must never be observable.
	Confirm(ctx context.Context, paymentID, quoteID, chargeRef string) (entities.Payment, error)

	// Refund reverses in one transaction: payment completed -> refunded and
	// quote payment_status paid -> refunded.
	Refund(ctx context.Context, paymentID, quoteID string) (entities.Payment, error)
}
