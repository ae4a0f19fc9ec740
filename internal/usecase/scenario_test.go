package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"servihub/internal/domain/entities"
	"servihub/internal/usecase/interfaces"
)

// memStore is an in-memory stand-in for the DynamoDB tables. Every mutation
// holds one lock, so the conditional-write guards behave like the real
// single-row and transactional writes do.
type memStore struct {
	mu       sync.Mutex
	services map[string]entities.Service
	quotes   map[string]entities.Quote
	payments map[string]entities.Payment
}

func newMemStore() *memStore {
	return &memStore{
		services: make(map[string]entities.Service),
		quotes:   make(map[string]entities.Quote),
		payments: make(map[string]entities.Payment),
	}
}

type memServiceRepo struct{ s *memStore }

func (r memServiceRepo) Create(_ context.Context, svc entities.Service) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.services[svc.ID]; ok {
		return entities.Service{}, interfaces.ErrConditionFailed
	}
	r.s.services[svc.ID] = svc
	return svc, nil
}

func (r memServiceRepo) GetByID(_ context.Context, id string) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.services[id], nil
}

func (r memServiceRepo) ListByClientID(_ context.Context, clientID string, status entities.ServiceStatus) ([]entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entities.Service
	for _, svc := range r.s.services {
		if svc.ClientID != clientID {
			continue
		}
		if status != "" && svc.Status != status {
			continue
		}
		out = append(out, svc)
	}
	return out, nil
}

func (r memServiceRepo) UpdateStatus(_ context.Context, id string, from, to entities.ServiceStatus) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok || svc.Status != from {
		return entities.Service{}, interfaces.ErrConditionFailed
	}
	svc.Status = to
	r.s.services[id] = svc
	return svc, nil
}

func (r memServiceRepo) UpdateRouteStatus(_ context.Context, id string, from, to entities.RouteStatus) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok || svc.RouteStatus != from || svc.Status != entities.ServiceStatusInProgress {
		return entities.Service{}, interfaces.ErrConditionFailed
	}
	svc.RouteStatus = to
	r.s.services[id] = svc
	return svc, nil
}

func (r memServiceRepo) MarkArrived(_ context.Context, id string, from entities.RouteStatus, code string, expiresAt time.Time) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok || svc.RouteStatus != from {
		return entities.Service{}, interfaces.ErrConditionFailed
	}
	svc.RouteStatus = entities.RouteStatusArrived
	svc.VerificationCode = code
	svc.VerificationCodeExpiresAt = &expiresAt
	r.s.services[id] = svc
	return svc, nil
}

func (r memServiceRepo) SetVerificationCode(_ context.Context, id string, code string, expiresAt time.Time) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok || svc.RouteStatus != entities.RouteStatusArrived {
		return entities.Service{}, interfaces.ErrConditionFailed
	}
	svc.VerificationCode = code
	svc.VerificationCodeExpiresAt = &expiresAt
	r.s.services[id] = svc
	return svc, nil
}

func (r memServiceRepo) ConsumeVerificationCode(_ context.Context, id string, code string) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok || svc.RouteStatus != entities.RouteStatusArrived || svc.VerificationCode == "" || svc.VerificationCode != code {
		return entities.Service{}, interfaces.ErrConditionFailed
	}
	svc.RouteStatus = entities.RouteStatusServiceStarted
	svc.VerificationCode = ""
	svc.VerificationCodeExpiresAt = nil
	r.s.services[id] = svc
	return svc, nil
}

func (r memServiceRepo) SetSignature(_ context.Context, id string, sig entities.ClientSignature) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok || svc.RouteStatus != entities.RouteStatusServiceStarted || svc.ClientSignature != nil {
		return entities.Service{}, interfaces.ErrConditionFailed
	}
	svc.ClientSignature = &sig
	r.s.services[id] = svc
	return svc, nil
}

func (r memServiceRepo) Complete(_ context.Context, id string) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok || svc.RouteStatus != entities.RouteStatusServiceStarted || svc.ClientSignature == nil || svc.Status != entities.ServiceStatusInProgress {
		return entities.Service{}, interfaces.ErrConditionFailed
	}
	svc.RouteStatus = entities.RouteStatusServiceCompleted
	svc.Status = entities.ServiceStatusCompleted
	r.s.services[id] = svc
	return svc, nil
}

func (r memServiceRepo) SetProfessionalLocation(_ context.Context, id string, loc entities.ProfessionalLocation) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok {
		return entities.Service{}, interfaces.ErrConditionFailed
	}
	if svc.ProfessionalLocation != nil && !loc.Timestamp.After(svc.ProfessionalLocation.Timestamp) {
		return entities.Service{}, interfaces.ErrConditionFailed
	}
	svc.ProfessionalLocation = &loc
	r.s.services[id] = svc
	return svc, nil
}

type memQuoteRepo struct{ s *memStore }

func (r memQuoteRepo) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.quotes[q.ID]; ok {
		return entities.Quote{}, interfaces.ErrConditionFailed
	}
	r.s.quotes[q.ID] = q
	return q, nil
}

func (r memQuoteRepo) GetByID(_ context.Context, id string) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.quotes[id], nil
}

func (r memQuoteRepo) list(match func(entities.Quote) bool, status entities.QuoteStatus) []entities.Quote {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entities.Quote
	for _, q := range r.s.quotes {
		if !match(q) {
			continue
		}
		if status != "" && q.Status != status {
			continue
		}
		out = append(out, q)
	}
	return out
}

func (r memQuoteRepo) ListByServiceID(_ context.Context, serviceID string, status entities.QuoteStatus) ([]entities.Quote, error) {
	return r.list(func(q entities.Quote) bool { return q.ServiceID == serviceID }, status), nil
}

func (r memQuoteRepo) ListByProfessionalID(_ context.Context, professionalID string, status entities.QuoteStatus) ([]entities.Quote, error) {
	return r.list(func(q entities.Quote) bool { return q.ProfessionalID == professionalID }, status), nil
}

func (r memQuoteRepo) ListByClientID(_ context.Context, clientID string, status entities.QuoteStatus) ([]entities.Quote, error) {
	return r.list(func(q entities.Quote) bool { return q.ClientID == clientID }, status), nil
}

func (r memQuoteRepo) UpdateStatus(_ context.Context, id string, from, to entities.QuoteStatus) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quotes[id]
	if !ok || q.Status != from {
		return entities.Quote{}, interfaces.ErrConditionFailed
	}
	q.Status = to
	r.s.quotes[id] = q
	return q, nil
}

func (r memQuoteRepo) MarkExpired(_ context.Context, id string) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quotes[id]
	if !ok || q.Status != entities.QuoteStatusPending {
		return entities.Quote{}, interfaces.ErrConditionFailed
	}
	q.Status = entities.QuoteStatusExpired
	r.s.quotes[id] = q
	return q, nil
}

func (r memQuoteRepo) Accept(_ context.Context, serviceID, winnerID string, siblingIDs []string) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[serviceID]
	if !ok || svc.Status != entities.ServiceStatusPending {
		return entities.Quote{}, interfaces.ErrConditionFailed
	}
	winner, ok := r.s.quotes[winnerID]
	if !ok || winner.Status != entities.QuoteStatusPending {
		return entities.Quote{}, interfaces.ErrConditionFailed
	}
	for _, id := range siblingIDs {
		if sib, ok := r.s.quotes[id]; !ok || sib.Status != entities.QuoteStatusPending {
			return entities.Quote{}, interfaces.ErrConditionFailed
		}
	}
	svc.Status = entities.ServiceStatusInProgress
	r.s.services[serviceID] = svc
	winner.Status = entities.QuoteStatusAccepted
	r.s.quotes[winnerID] = winner
	for _, id := range siblingIDs {
		sib := r.s.quotes[id]
		sib.Status = entities.QuoteStatusRejected
		r.s.quotes[id] = sib
	}
	return winner, nil
}

type memPaymentRepo struct{ s *memStore }

func (r memPaymentRepo) Create(_ context.Context, p entities.Payment) (entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.payments[p.ID]; ok {
		return entities.Payment{}, interfaces.ErrConditionFailed
	}
	r.s.payments[p.ID] = p
	return p, nil
}

func (r memPaymentRepo) GetByID(_ context.Context, id string) (entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.payments[id], nil
}

func (r memPaymentRepo) ListByQuoteID(_ context.Context, quoteID string) ([]entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entities.Payment
	for _, p := range r.s.payments {
		if p.QuoteID == quoteID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memPaymentRepo) UpdateStatus(_ context.Context, id string, from, to entities.PaymentStatus, chargeRef string) (entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok || p.Status != from {
		return entities.Payment{}, interfaces.ErrConditionFailed
	}
	p.Status = to
	if chargeRef != "" {
		p.ChargeRef = chargeRef
	}
	r.s.payments[id] = p
	return p, nil
}

func (r memPaymentRepo) Confirm(_ context.Context, paymentID, quoteID, chargeRef string) (entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[paymentID]
	q, qok := r.s.quotes[quoteID]
	if !ok || !qok || p.Status != entities.PaymentStatusPending || q.PaymentStatus != entities.QuotePaymentStatusPending {
		return entities.Payment{}, interfaces.ErrConditionFailed
	}
	p.Status = entities.PaymentStatusCompleted
	p.ChargeRef = chargeRef
	q.PaymentStatus = entities.QuotePaymentStatusPaid
	r.s.payments[paymentID] = p
	r.s.quotes[quoteID] = q
	return p, nil
}

func (r memPaymentRepo) Refund(_ context.Context, paymentID, quoteID string) (entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[paymentID]
	q, qok := r.s.quotes[quoteID]
	if !ok || !qok || p.Status != entities.PaymentStatusCompleted || q.PaymentStatus != entities.QuotePaymentStatusPaid {
		return entities.Payment{}, interfaces.ErrConditionFailed
	}
	p.Status = entities.PaymentStatusRefunded
	q.PaymentStatus = entities.QuotePaymentStatusRefunded
	r.s.payments[paymentID] = p
	r.s.quotes[quoteID] = q
	return p, nil
}

type approvingGateway struct{}

func (approvingGateway) CreateCharge(context.Context, interfaces.ChargeRequest) (interfaces.ChargeResult, error) {
	return interfaces.ChargeResult{ID: "charge-1", Status: "approved"}, nil
}

func (approvingGateway) Refund(context.Context, string) error { return nil }

func TestMarketplaceScenario(t *testing.T) {
	store := newMemStore()
	serviceRepo := memServiceRepo{store}
	quoteRepo := memQuoteRepo{store}
	paymentRepo := memPaymentRepo{store}

	services := NewServiceUseCase(serviceRepo)
	quotes := NewQuoteUseCase(quoteRepo, serviceRepo, nil)
	lifecycle := NewLifecycleUseCase(serviceRepo, quoteRepo, nil)
	settlement := NewSettlementUseCase(paymentRepo, quoteRepo, approvingGateway{}, nil)

	ctx := context.Background()

	svc, err := services.Create(ctx, "cli-1", CreateServiceInput{
		Title:     "Repaint living room",
		Category:  "painting",
		BudgetMin: 300,
		BudgetMax: 900,
	})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}

	quoteInput := func(labor float64) CreateQuoteInput {
		return CreateQuoteInput{
			Materials:  []entities.QuoteMaterial{{Name: "paint", Quantity: 4, Unit: "can", UnitPrice: 50}},
			Labor:      entities.QuoteLabor{Description: "two-day job", Total: labor},
			ValidUntil: time.Now().UTC().Add(48 * time.Hour),
		}
	}

	q1, err := quotes.Create(ctx, svc.ID, "pro-1", quoteInput(400))
	if err != nil {
		t.Fatalf("create quote 1: %v", err)
	}
	q2, err := quotes.Create(ctx, svc.ID, "pro-2", quoteInput(350))
	if err != nil {
		t.Fatalf("create quote 2: %v", err)
	}

	t.Run("concurrent accepts elect exactly one winner", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, id := range []string{q1.ID, q2.ID} {
			wg.Add(1)
			go func(i int, quoteID string) {
				defer wg.Done()
				_, errs[i] = quotes.Accept(ctx, quoteID, "cli-1")
			}(i, id)
		}
		wg.Wait()

		var wins, losses int
		for _, err := range errs {
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrServiceNotAcceptingQuotes):
				losses++
			default:
				t.Fatalf("unexpected accept error: %v", err)
			}
		}
		if wins != 1 || losses != 1 {
			t.Fatalf("expected one winner and one loser, got wins=%d losses=%d", wins, losses)
		}

		got, err := services.GetByID(ctx, svc.ID)
		if err != nil {
			t.Fatalf("get service: %v", err)
		}
		if got.Status != entities.ServiceStatusInProgress {
			t.Fatalf("expected in_progress, got %s", got.Status)
		}
		accepted, _ := quotes.ListByService(ctx, svc.ID, entities.QuoteStatusAccepted)
		if len(accepted) != 1 {
			t.Fatalf("expected exactly one accepted quote, got %d", len(accepted))
		}
	})

	winnerList, err := quotes.ListByService(ctx, svc.ID, entities.QuoteStatusAccepted)
	if err != nil || len(winnerList) != 1 {
		t.Fatalf("accepted quote lookup failed: %v", err)
	}
	winner := winnerList[0]

	t.Run("route is gated on payment", func(t *testing.T) {
		if _, err := lifecycle.StartRoute(ctx, svc.ID, winner.ProfessionalID); !errors.Is(err, ErrQuoteNotPaid) {
			t.Fatalf("expected ErrQuoteNotPaid, got %v", err)
		}
	})

	payment, err := settlement.Settle(ctx, winner.ID, "cli-1", entities.PaymentMethodPix, "order-1")
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if payment.Status != entities.PaymentStatusCompleted {
		t.Fatalf("expected completed payment, got %s", payment.Status)
	}
	if payment.AppFee != round2(winner.TotalPrice*0.10) {
		t.Fatalf("unexpected platform fee: %v", payment.AppFee)
	}

	t.Run("double settlement is refused", func(t *testing.T) {
		if _, err := settlement.Settle(ctx, winner.ID, "cli-1", entities.PaymentMethodPix, "order-2"); !errors.Is(err, ErrQuoteAlreadyPaid) {
			t.Fatalf("expected ErrQuoteAlreadyPaid, got %v", err)
		}
	})

	pro := winner.ProfessionalID
	if _, err := lifecycle.StartRoute(ctx, svc.ID, pro); err != nil {
		t.Fatalf("start route: %v", err)
	}
	if _, err := lifecycle.ReportLocation(ctx, svc.ID, pro, entities.ProfessionalLocation{Lat: -23.5, Lng: -46.6, Timestamp: time.Now().UTC()}); err != nil {
		t.Fatalf("report location: %v", err)
	}
	if _, err := lifecycle.MarkArrived(ctx, svc.ID, pro); err != nil {
		t.Fatalf("mark arrived: %v", err)
	}

	arrived, _ := serviceRepo.GetByID(ctx, svc.ID)
	code := arrived.VerificationCode
	if len(code) != 5 {
		t.Fatalf("expected a five-digit code, got %q", code)
	}

	t.Run("wrong code is rejected", func(t *testing.T) {
		wrong := "00000"
		if wrong == code {
			wrong = "00001"
		}
		if _, err := lifecycle.VerifyAndStart(ctx, svc.ID, pro, wrong); !errors.Is(err, ErrCodeMismatch) {
			t.Fatalf("expected ErrCodeMismatch, got %v", err)
		}
	})

	if _, err := lifecycle.VerifyAndStart(ctx, svc.ID, pro, code); err != nil {
		t.Fatalf("verify and start: %v", err)
	}

	t.Run("code is single use", func(t *testing.T) {
		if _, err := lifecycle.VerifyAndStart(ctx, svc.ID, pro, code); !errors.Is(err, ErrInvalidRouteTransition) {
			t.Fatalf("expected ErrInvalidRouteTransition, got %v", err)
		}
	})

	t.Run("completion requires the signature", func(t *testing.T) {
		if _, err := lifecycle.Complete(ctx, svc.ID, pro); !errors.Is(err, ErrNotSigned) {
			t.Fatalf("expected ErrNotSigned, got %v", err)
		}
	})

	if _, err := lifecycle.Sign(ctx, svc.ID, SignInput{ActorID: "cli-1", ActorRole: "client", SignatureBlob: "base64-sig"}); err != nil {
		t.Fatalf("sign: %v", err)
	}

	t.Run("second signature is refused", func(t *testing.T) {
		if _, err := lifecycle.Sign(ctx, svc.ID, SignInput{ActorID: "cli-1", ActorRole: "client", SignatureBlob: "another"}); !errors.Is(err, ErrAlreadySigned) {
			t.Fatalf("expected ErrAlreadySigned, got %v", err)
		}
	})

	done, err := lifecycle.Complete(ctx, svc.ID, pro)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != entities.ServiceStatusCompleted || done.RouteStatus != entities.RouteStatusServiceCompleted {
		t.Fatalf("unexpected final state: %s/%s", done.Status, done.RouteStatus)
	}

	t.Run("refund after completion", func(t *testing.T) {
		refunded, err := settlement.Refund(ctx, payment.ID, "cli-1")
		if err != nil {
			t.Fatalf("refund: %v", err)
		}
		if refunded.Status != entities.PaymentStatusRefunded {
			t.Fatalf("expected refunded, got %s", refunded.Status)
		}
		q, _ := quotes.GetByID(ctx, winner.ID)
		if q.PaymentStatus != entities.QuotePaymentStatusRefunded {
			t.Fatalf("expected quote payment_status refunded, got %s", q.PaymentStatus)
		}
	})
}
