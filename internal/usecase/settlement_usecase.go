package usecase

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"servihub/internal/domain/entities"
	"servihub/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const (
	platformFeeRate = 0.10
	defaultCurrency = "BRL"
	gatewayTimeout  = 10 * time.Second
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvalidPaymentID     = errors.New("invalid payment id")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidExternalRef   = errors.New("invalid external reference")
	ErrQuoteNotAccepted     = errors.New("quote is not accepted")
	ErrQuoteAlreadyPaid     = errors.New("quote is already paid")
	ErrChargeDeclined       = errors.New("charge declined by payment provider")
	ErrGatewayUnavailable   = errors.New("payment gateway not configured")
	ErrGatewayTimeout       = errors.New("payment provider timed out")
	ErrPaymentNotCompleted  = errors.New("payment is not completed")
	ErrNotPaymentClient     = errors.New("actor is not the paying client")
)

// feeSchedule maps each payment rail to its gateway fee and funds-release
// delay. Boleto carries a flat fee; the others are percentage rates.
type feeTerms struct {
	rate    float64
	flat    float64
	release time.Duration
}

var feeSchedule = map[entities.PaymentMethod]feeTerms{
	entities.PaymentMethodPix:        {rate: 0.0099, release: 24 * time.Hour},
	entities.PaymentMethodCreditCard: {rate: 0.0498, release: 30 * 24 * time.Hour},
	entities.PaymentMethodDebitCard:  {rate: 0.0299, release: 2 * 24 * time.Hour},
	entities.PaymentMethodBoleto:     {flat: 3.49, release: 2 * 24 * time.Hour},
}

// ISettlementUseCase charges the client for an accepted quote, applies the
// platform fee split, and keeps payment/quote state in lockstep.

type ISettlementUseCase interface {
	Settle(ctx context.Context, quoteID, clientID string, method entities.PaymentMethod, externalReference string) (entities.Payment, error)
	Refund(ctx context.Context, paymentID, clientID string) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error)
}

type SettlementUseCase struct {
	repo      interfaces.IPaymentRepository
	quoteRepo interfaces.IQuoteRepository
	gateway   interfaces.IPaymentGateway
	notifier  interfaces.IEventNotifier
}

var _ ISettlementUseCase = (*SettlementUseCase)(nil)

func NewSettlementUseCase(repo interfaces.IPaymentRepository, quoteRepo interfaces.IQuoteRepository, gateway interfaces.IPaymentGateway, notifier interfaces.IEventNotifier) *SettlementUseCase {
	return &SettlementUseCase{repo: repo, quoteRepo: quoteRepo, gateway: gateway, notifier: notifier}
}

// Settle creates a Payment for the quote and runs the charge. The provider
// call has a bounded deadline; on timeout the Payment row stays pending for
// later reconciliation, it is not assumed failed. On rejection the Payment is
// marked failed and the quote stays unpaid, so settlement can be retried with
// a fresh attempt.
func (u *SettlementUseCase) Settle(ctx context.Context, quoteID, clientID string, method entities.PaymentMethod, externalReference string) (entities.Payment, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Payment{}, ErrInvalidQuoteID
	}
	if !method.Valid() {
		return entities.Payment{}, ErrInvalidPaymentMethod
	}
	externalReference = strings.TrimSpace(externalReference)
	if externalReference == "" {
		return entities.Payment{}, ErrInvalidExternalRef
	}
	if u.gateway == nil {
		return entities.Payment{}, ErrGatewayUnavailable
	}

	q, err := u.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Payment{}, err
	}
	if q.ID == "" {
		return entities.Payment{}, ErrQuoteNotFound
	}
	if q.ClientID != strings.TrimSpace(clientID) {
		return entities.Payment{}, ErrNotPaymentClient
	}
	if q.Status != entities.QuoteStatusAccepted {
		return entities.Payment{}, ErrQuoteNotAccepted
	}
	if q.PaymentStatus == entities.QuotePaymentStatusPaid {
		return entities.Payment{}, ErrQuoteAlreadyPaid
	}

	terms := feeSchedule[method]
	amount := q.TotalPrice
	appFee := round2(amount * platformFeeRate)
	gatewayFee := round2(amount*terms.rate + terms.flat)
	now := time.Now().UTC()

	p := entities.Payment{
		ID:                uuid.NewString(),
		QuoteID:           q.ID,
		ServiceID:         q.ServiceID,
		Amount:            amount,
		Currency:          defaultCurrency,
		Method:            method,
		Status:            entities.PaymentStatusPending,
		AppFee:            appFee,
		GatewayFee:        gatewayFee,
		NetAmount:         round2(amount - appFee),
		AvailableAt:       now.Add(terms.release),
		ExternalReference: externalReference,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[settlement][usecase] payment create failed quote_id=%s err=%v", q.ID, err)
		return entities.Payment{}, err
	}
	log.Printf("[settlement][usecase] charge start payment_id=%s quote_id=%s amount=%.2f method=%s", created.ID, q.ID, amount, method)

	chargeCtx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	result, err := u.gateway.CreateCharge(chargeCtx, interfaces.ChargeRequest{
		CustomerRef:       q.ClientID,
		PayeeRef:          q.ProfessionalID,
		Amount:            amount,
		Currency:          defaultCurrency,
		Method:            string(method),
		SplitPct:          platformFeeRate,
		ExternalReference: externalReference,
		Description:       "Service quote " + q.ID,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			// Reconciled later; do not assume failure.
			log.Printf("[settlement][usecase] charge timeout payment_id=%s quote_id=%s", created.ID, q.ID)
			return created, ErrGatewayTimeout
		}
		log.Printf("[settlement][usecase] charge failed payment_id=%s quote_id=%s err=%v", created.ID, q.ID, err)
		failed, uErr := u.repo.UpdateStatus(ctx, created.ID, entities.PaymentStatusPending, entities.PaymentStatusFailed, "")
		if uErr != nil {
			log.Printf("[settlement][usecase] mark-failed failed payment_id=%s err=%v", created.ID, uErr)
			return created, err
		}
		return failed, ErrChargeDeclined
	}
	if result.Status != "approved" {
		log.Printf("[settlement][usecase] charge declined payment_id=%s quote_id=%s provider_status=%s", created.ID, q.ID, result.Status)
		failed, uErr := u.repo.UpdateStatus(ctx, created.ID, entities.PaymentStatusPending, entities.PaymentStatusFailed, result.ID)
		if uErr != nil {
			log.Printf("[settlement][usecase] mark-failed failed payment_id=%s err=%v", created.ID, uErr)
			return created, ErrChargeDeclined
		}
		return failed, ErrChargeDeclined
	}

	// Provider confirmed: payment completed + quote paid as one unit.
	confirmed, err := u.repo.Confirm(ctx, created.ID, q.ID, result.ID)
	if err != nil {
		log.Printf("[settlement][usecase] confirm failed payment_id=%s quote_id=%s err=%v", created.ID, q.ID, err)
		return entities.Payment{}, err
	}
	log.Printf("[settlement][usecase] settle success payment_id=%s quote_id=%s charge_ref=%s net=%.2f", confirmed.ID, q.ID, result.ID, confirmed.NetAmount)

	u.notify(ctx, q.ProfessionalID, interfaces.EventPaymentSettled, map[string]any{
		"payment_id": confirmed.ID,
		"quote_id":   q.ID,
		"net_amount": confirmed.NetAmount,
	})
	return confirmed, nil
}

// Refund is one-way from completed to refunded; it does not resurrect the
// quote to unpaid.
func (u *SettlementUseCase) Refund(ctx context.Context, paymentID, clientID string) (entities.Payment, error) {
	p, err := u.GetByID(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}

	q, err := u.quoteRepo.GetByID(ctx, p.QuoteID)
	if err != nil {
		return entities.Payment{}, err
	}
	if q.ID == "" {
		return entities.Payment{}, ErrQuoteNotFound
	}
	if q.ClientID != strings.TrimSpace(clientID) {
		return entities.Payment{}, ErrNotPaymentClient
	}
	if p.Status != entities.PaymentStatusCompleted {
		return entities.Payment{}, ErrPaymentNotCompleted
	}
	if u.gateway == nil {
		return entities.Payment{}, ErrGatewayUnavailable
	}

	refundCtx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	if err := u.gateway.Refund(refundCtx, p.ChargeRef); err != nil {
		log.Printf("[settlement][usecase] provider refund failed payment_id=%s charge_ref=%s err=%v", p.ID, p.ChargeRef, err)
		return entities.Payment{}, err
	}

	refunded, err := u.repo.Refund(ctx, p.ID, p.QuoteID)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.Payment{}, ErrPaymentNotCompleted
		}
		log.Printf("[settlement][usecase] refund persist failed payment_id=%s err=%v", p.ID, err)
		return entities.Payment{}, err
	}
	log.Printf("[settlement][usecase] refund success payment_id=%s quote_id=%s", refunded.ID, refunded.QuoteID)

	u.notify(ctx, q.ClientID, interfaces.EventPaymentRefunded, map[string]any{
		"payment_id": refunded.ID,
		"quote_id":   refunded.QuoteID,
		"amount":     refunded.Amount,
	})
	return refunded, nil
}

func (u *SettlementUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *SettlementUseCase) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, ErrInvalidQuoteID
	}
	return u.repo.ListByQuoteID(ctx, quoteID)
}

func (u *SettlementUseCase) notify(ctx context.Context, userID, kind string, payload map[string]any) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.Notify(ctx, userID, kind, payload); err != nil {
		log.Printf("[settlement][usecase] notify failed user_id=%s kind=%s err=%v", userID, kind, err)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
