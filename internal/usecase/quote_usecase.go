package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"servihub/internal/domain/entities"
	"servihub/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrQuoteNotFound             = errors.New("quote not found")
	ErrInvalidQuoteID            = errors.New("invalid quote id")
	ErrInvalidProfessionalID     = errors.New("invalid professional id")
	ErrInvalidMaterial           = errors.New("invalid material line")
	ErrInvalidLabor              = errors.New("invalid labor line")
	ErrInvalidValidUntil         = errors.New("valid_until must be in the future")
	ErrDuplicateQuote            = errors.New("professional already has an open quote on this service")
	ErrQuoteNotPending           = errors.New("quote is not pending")
	ErrQuoteExpired              = errors.New("quote expired")
	ErrNotQuoteClient            = errors.New("actor is not the client of this quote")
	ErrServiceNotAcceptingQuotes = errors.New("service no longer accepting quotes")
)

// CreateQuoteInput carries the professional-supplied pricing lines. Any
// client-supplied total is ignored; the total is always recomputed here.
type CreateQuoteInput struct {
	Materials  []entities.QuoteMaterial
	Labor      entities.QuoteLabor
	ValidUntil time.Time
}

// IQuoteUseCase is the quote ledger: creation, competitive exclusivity on
// acceptance, lazy expiry, and rejection.

type IQuoteUseCase interface {
	Create(ctx context.Context, serviceID, professionalID string, in CreateQuoteInput) (entities.Quote, error)
	Accept(ctx context.Context, quoteID, clientID string) (entities.Quote, error)
	Reject(ctx context.Context, quoteID, clientID string) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByService(ctx context.Context, serviceID string, status entities.QuoteStatus) ([]entities.Quote, error)
	ListByProfessional(ctx context.Context, professionalID string, status entities.QuoteStatus) ([]entities.Quote, error)
	ListByClient(ctx context.Context, clientID string, status entities.QuoteStatus) ([]entities.Quote, error)
}

type QuoteUseCase struct {
	repo        interfaces.IQuoteRepository
	serviceRepo interfaces.IServiceRepository
	notifier    interfaces.IEventNotifier
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, serviceRepo interfaces.IServiceRepository, notifier interfaces.IEventNotifier) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, serviceRepo: serviceRepo, notifier: notifier}
}

func (u *QuoteUseCase) Create(ctx context.Context, serviceID, professionalID string, in CreateQuoteInput) (entities.Quote, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return entities.Quote{}, ErrInvalidServiceID
	}
	professionalID = strings.TrimSpace(professionalID)
	if professionalID == "" {
		return entities.Quote{}, ErrInvalidProfessionalID
	}
	for _, m := range in.Materials {
		if strings.TrimSpace(m.Name) == "" && (m.UnitPrice != 0 || m.Quantity != 0) {
			return entities.Quote{}, ErrInvalidMaterial
		}
		if m.UnitPrice < 0 || m.Quantity < 0 {
			return entities.Quote{}, ErrInvalidMaterial
		}
	}
	if in.Labor.Total < 0 {
		return entities.Quote{}, ErrInvalidLabor
	}
	now := time.Now().UTC()
	if !in.ValidUntil.After(now) {
		return entities.Quote{}, ErrInvalidValidUntil
	}

	svc, err := u.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return entities.Quote{}, err
	}
	if svc.ID == "" {
		return entities.Quote{}, ErrServiceNotFound
	}
	if svc.Status != entities.ServiceStatusPending {
		return entities.Quote{}, ErrServiceNotPending
	}

	// One open (pending/accepted) quote per professional per service.
	existing, err := u.repo.ListByServiceID(ctx, serviceID, "")
	if err != nil {
		return entities.Quote{}, err
	}
	for _, q := range existing {
		q = u.lazyExpire(ctx, q)
		if q.ProfessionalID != professionalID {
			continue
		}
		if q.Status == entities.QuoteStatusPending || q.Status == entities.QuoteStatusAccepted {
			return entities.Quote{}, ErrDuplicateQuote
		}
	}

	q := entities.Quote{
		ID:             uuid.NewString(),
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
		ClientID:       svc.ClientID,
		Materials:      in.Materials,
		Labor:          in.Labor,
		TotalPrice:     entities.ComputeTotal(in.Materials, in.Labor),
		Status:         entities.QuoteStatusPending,
		PaymentStatus:  entities.QuotePaymentStatusPending,
		ValidUntil:     in.ValidUntil.UTC(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := u.repo.Create(ctx, q)
	if err != nil {
		log.Printf("[quote][usecase] create failed service_id=%s professional_id=%s err=%v", serviceID, professionalID, err)
		return entities.Quote{}, err
	}
	log.Printf("[quote][usecase] create success quote_id=%s service_id=%s total=%.2f", created.ID, serviceID, created.TotalPrice)

	u.notify(ctx, created.ClientID, interfaces.EventQuoteReceived, map[string]any{
		"quote_id":    created.ID,
		"service_id":  created.ServiceID,
		"total_price": created.TotalPrice,
	})
	return created, nil
}

// Accept sets the winning quote to accepted, every pending sibling to
// rejected, and the service to in_progress as one atomic unit. The
// compare-and-set on the service status is the linearization point: the loser
// of a concurrent accept observes ErrServiceNotAcceptingQuotes, never a
// half-applied state.
func (u *QuoteUseCase) Accept(ctx context.Context, quoteID, clientID string) (entities.Quote, error) {
	q, err := u.getForUpdate(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}

	svc, err := u.serviceRepo.GetByID(ctx, q.ServiceID)
	if err != nil {
		return entities.Quote{}, err
	}
	if svc.ID == "" {
		return entities.Quote{}, ErrServiceNotFound
	}
	if svc.ClientID != strings.TrimSpace(clientID) {
		return entities.Quote{}, ErrNotQuoteClient
	}
	if q.Status == entities.QuoteStatusExpired || q.Expired(time.Now().UTC()) {
		return entities.Quote{}, ErrQuoteExpired
	}
	if q.Status != entities.QuoteStatusPending {
		return entities.Quote{}, ErrQuoteNotPending
	}
	if svc.Status != entities.ServiceStatusPending {
		return entities.Quote{}, ErrServiceNotAcceptingQuotes
	}

	siblings, err := u.repo.ListByServiceID(ctx, q.ServiceID, entities.QuoteStatusPending)
	if err != nil {
		return entities.Quote{}, err
	}
	siblingIDs := make([]string, 0, len(siblings))
	for _, s := range siblings {
		if s.ID != q.ID {
			siblingIDs = append(siblingIDs, s.ID)
		}
	}

	accepted, err := u.repo.Accept(ctx, q.ServiceID, q.ID, siblingIDs)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			log.Printf("[quote][usecase] accept lost race quote_id=%s service_id=%s", q.ID, q.ServiceID)
			return entities.Quote{}, ErrServiceNotAcceptingQuotes
		}
		log.Printf("[quote][usecase] accept failed quote_id=%s err=%v", q.ID, err)
		return entities.Quote{}, err
	}
	log.Printf("[quote][usecase] accept success quote_id=%s service_id=%s rejected_siblings=%d", accepted.ID, accepted.ServiceID, len(siblingIDs))

	u.notify(ctx, accepted.ProfessionalID, interfaces.EventQuoteAccepted, map[string]any{
		"quote_id":   accepted.ID,
		"service_id": accepted.ServiceID,
	})
	return accepted, nil
}

func (u *QuoteUseCase) Reject(ctx context.Context, quoteID, clientID string) (entities.Quote, error) {
	q, err := u.getForUpdate(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ClientID != strings.TrimSpace(clientID) {
		return entities.Quote{}, ErrNotQuoteClient
	}
	if q.Status != entities.QuoteStatusPending {
		return entities.Quote{}, ErrQuoteNotPending
	}

	updated, err := u.repo.UpdateStatus(ctx, q.ID, entities.QuoteStatusPending, entities.QuoteStatusRejected)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.Quote{}, ErrQuoteNotPending
		}
		log.Printf("[quote][usecase] reject failed quote_id=%s err=%v", q.ID, err)
		return entities.Quote{}, err
	}
	log.Printf("[quote][usecase] reject success quote_id=%s", q.ID)
	return updated, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	return u.getForUpdate(ctx, id)
}

func (u *QuoteUseCase) ListByService(ctx context.Context, serviceID string, status entities.QuoteStatus) ([]entities.Quote, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return nil, ErrInvalidServiceID
	}
	quotes, err := u.repo.ListByServiceID(ctx, serviceID, status)
	if err != nil {
		return nil, err
	}
	return u.lazyExpireAll(ctx, quotes, status), nil
}

func (u *QuoteUseCase) ListByProfessional(ctx context.Context, professionalID string, status entities.QuoteStatus) ([]entities.Quote, error) {
	professionalID = strings.TrimSpace(professionalID)
	if professionalID == "" {
		return nil, ErrInvalidProfessionalID
	}
	quotes, err := u.repo.ListByProfessionalID(ctx, professionalID, status)
	if err != nil {
		return nil, err
	}
	return u.lazyExpireAll(ctx, quotes, status), nil
}

func (u *QuoteUseCase) ListByClient(ctx context.Context, clientID string, status entities.QuoteStatus) ([]entities.Quote, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, ErrInvalidClientID
	}
	quotes, err := u.repo.ListByClientID(ctx, clientID, status)
	if err != nil {
		return nil, err
	}
	return u.lazyExpireAll(ctx, quotes, status), nil
}

// getForUpdate loads a quote and applies lazy expiry before any decision is
// made on it.
func (u *QuoteUseCase) getForUpdate(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return u.lazyExpire(ctx, q), nil
}

// lazyExpire persists the pending -> expired flip on read. There is no sweeper
// anywhere; every read path funnels through here.
func (u *QuoteUseCase) lazyExpire(ctx context.Context, q entities.Quote) entities.Quote {
	if !q.Expired(time.Now().UTC()) {
		return q
	}
	expired, err := u.repo.MarkExpired(ctx, q.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			// Lost to a concurrent transition; surface the stored state.
			if fresh, gErr := u.repo.GetByID(ctx, q.ID); gErr == nil && fresh.ID != "" {
				return fresh
			}
			return q
		}
		log.Printf("[quote][usecase] lazy expire failed quote_id=%s err=%v", q.ID, err)
		q.Status = entities.QuoteStatusExpired
		return q
	}
	log.Printf("[quote][usecase] lazy expire persisted quote_id=%s", q.ID)
	return expired
}

func (u *QuoteUseCase) lazyExpireAll(ctx context.Context, quotes []entities.Quote, filter entities.QuoteStatus) []entities.Quote {
	out := make([]entities.Quote, 0, len(quotes))
	for _, q := range quotes {
		q = u.lazyExpire(ctx, q)
		if filter != "" && q.Status != filter {
			continue
		}
		out = append(out, q)
	}
	return out
}

func (u *QuoteUseCase) notify(ctx context.Context, userID, kind string, payload map[string]any) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.Notify(ctx, userID, kind, payload); err != nil {
		log.Printf("[quote][usecase] notify failed user_id=%s kind=%s err=%v", userID, kind, err)
	}
}
