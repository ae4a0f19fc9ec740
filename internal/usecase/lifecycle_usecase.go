package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"servihub/internal/domain/entities"
	"servihub/internal/usecase/interfaces"
)

const (
	verificationCodeLength = 5
	verificationCodeTTL    = 15 * time.Minute
)

var (
	ErrServiceNotInProgress    = errors.New("service is not in progress")
	ErrNoAcceptedQuote         = errors.New("service has no accepted quote")
	ErrNotAssignedProfessional = errors.New("actor is not the assigned professional")
	ErrQuoteNotPaid            = errors.New("accepted quote is not paid")
	ErrInvalidRouteTransition  = errors.New("invalid route status transition")
	ErrInvalidLocation         = errors.New("invalid coordinates")
	ErrInvalidCode             = errors.New("invalid verification code format")
	ErrCodeMismatch            = errors.New("verification code does not match")
	ErrCodeExpired             = errors.New("verification code expired")
	ErrAlreadySigned           = errors.New("service already signed")
	ErrNotSigned               = errors.New("service not yet signed")
	ErrNotSignParty            = errors.New("actor may not sign this service")
	ErrInvalidSignature        = errors.New("invalid signature payload")
)

// SignInput carries the signature bytes and the actor submitting them.
type SignInput struct {
	ActorID       string
	ActorRole     string // "client" or "professional"
	SignatureBlob string
}

// ILifecycleUseCase drives the on-site route sub-state machine of a service:
// route tracking, arrival verification, signature, and gated completion.

type ILifecycleUseCase interface {
	StartRoute(ctx context.Context, serviceID, professionalID string) (entities.Service, error)
	ReportLocation(ctx context.Context, serviceID, professionalID string, loc entities.ProfessionalLocation) (entities.Service, error)
	MarkArrived(ctx context.Context, serviceID, professionalID string) (entities.Service, error)
	RegenerateCode(ctx context.Context, serviceID, professionalID string) (entities.Service, error)
	VerifyAndStart(ctx context.Context, serviceID, professionalID, code string) (entities.Service, error)
	Sign(ctx context.Context, serviceID string, in SignInput) (entities.Service, error)
	Complete(ctx context.Context, serviceID, professionalID string) (entities.Service, error)
}

type LifecycleUseCase struct {
	serviceRepo interfaces.IServiceRepository
	quoteRepo   interfaces.IQuoteRepository
	notifier    interfaces.IEventNotifier
}

var _ ILifecycleUseCase = (*LifecycleUseCase)(nil)

func NewLifecycleUseCase(serviceRepo interfaces.IServiceRepository, quoteRepo interfaces.IQuoteRepository, notifier interfaces.IEventNotifier) *LifecycleUseCase {
	return &LifecycleUseCase{serviceRepo: serviceRepo, quoteRepo: quoteRepo, notifier: notifier}
}

func (u *LifecycleUseCase) StartRoute(ctx context.Context, serviceID, professionalID string) (entities.Service, error) {
	svc, accepted, err := u.loadAssigned(ctx, serviceID, professionalID)
	if err != nil {
		return entities.Service{}, err
	}
	if accepted.PaymentStatus != entities.QuotePaymentStatusPaid {
		return entities.Service{}, ErrQuoteNotPaid
	}
	if svc.RouteStatus != entities.RouteStatusNotStarted {
		return entities.Service{}, ErrInvalidRouteTransition
	}

	updated, err := u.serviceRepo.UpdateRouteStatus(ctx, svc.ID, entities.RouteStatusNotStarted, entities.RouteStatusRouteStarted)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.Service{}, ErrInvalidRouteTransition
		}
		log.Printf("[lifecycle][usecase] start-route failed service_id=%s err=%v", svc.ID, err)
		return entities.Service{}, err
	}
	log.Printf("[lifecycle][usecase] start-route success service_id=%s professional_id=%s", svc.ID, professionalID)

	u.notify(ctx, svc.ClientID, interfaces.EventRouteStarted, map[string]any{"service_id": svc.ID})
	return updated, nil
}

// ReportLocation records the professional's last-known position. Writes are
// last-write-wins on the location timestamp and never regress the route
// status; the only status effect is the one-time route_started -> in_transit
// flip, and losing that flip to a concurrent transition is benign.
func (u *LifecycleUseCase) ReportLocation(ctx context.Context, serviceID, professionalID string, loc entities.ProfessionalLocation) (entities.Service, error) {
	if loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180 {
		return entities.Service{}, ErrInvalidLocation
	}
	if loc.Timestamp.IsZero() {
		loc.Timestamp = time.Now().UTC()
	}

	svc, _, err := u.loadAssigned(ctx, serviceID, professionalID)
	if err != nil {
		return entities.Service{}, err
	}
	if svc.RouteStatus == entities.RouteStatusNotStarted {
		return entities.Service{}, ErrInvalidRouteTransition
	}

	updated, err := u.serviceRepo.SetProfessionalLocation(ctx, svc.ID, loc)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			// Stale timestamp lost the write; current state wins.
			return svc, nil
		}
		log.Printf("[lifecycle][usecase] report-location failed service_id=%s err=%v", svc.ID, err)
		return entities.Service{}, err
	}

	if updated.RouteStatus == entities.RouteStatusRouteStarted {
		flipped, err := u.serviceRepo.UpdateRouteStatus(ctx, svc.ID, entities.RouteStatusRouteStarted, entities.RouteStatusInTransit)
		if err == nil {
			return flipped, nil
		}
		if !errors.Is(err, interfaces.ErrConditionFailed) {
			log.Printf("[lifecycle][usecase] in-transit flip failed service_id=%s err=%v", svc.ID, err)
		}
	}
	return updated, nil
}

func (u *LifecycleUseCase) MarkArrived(ctx context.Context, serviceID, professionalID string) (entities.Service, error) {
	svc, _, err := u.loadAssigned(ctx, serviceID, professionalID)
	if err != nil {
		return entities.Service{}, err
	}
	if svc.RouteStatus != entities.RouteStatusRouteStarted && svc.RouteStatus != entities.RouteStatusInTransit {
		return entities.Service{}, ErrInvalidRouteTransition
	}

	code, err := generateVerificationCode()
	if err != nil {
		return entities.Service{}, err
	}
	expiresAt := time.Now().UTC().Add(verificationCodeTTL)

	updated, err := u.serviceRepo.MarkArrived(ctx, svc.ID, svc.RouteStatus, code, expiresAt)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.Service{}, ErrInvalidRouteTransition
		}
		log.Printf("[lifecycle][usecase] mark-arrived failed service_id=%s err=%v", svc.ID, err)
		return entities.Service{}, err
	}
	log.Printf("[lifecycle][usecase] mark-arrived success service_id=%s", svc.ID)

	u.notify(ctx, svc.ClientID, interfaces.EventProfessionalHere, map[string]any{
		"service_id":        svc.ID,
		"verification_code": code,
	})
	return updated, nil
}

// RegenerateCode issues a fresh code while still arrived. The swap is a single
// write: the old code is invalid the instant the new one exists.
func (u *LifecycleUseCase) RegenerateCode(ctx context.Context, serviceID, professionalID string) (entities.Service, error) {
	svc, _, err := u.loadAssigned(ctx, serviceID, professionalID)
	if err != nil {
		return entities.Service{}, err
	}
	if svc.RouteStatus != entities.RouteStatusArrived {
		return entities.Service{}, ErrInvalidRouteTransition
	}

	code, err := generateVerificationCode()
	if err != nil {
		return entities.Service{}, err
	}
	expiresAt := time.Now().UTC().Add(verificationCodeTTL)

	updated, err := u.serviceRepo.SetVerificationCode(ctx, svc.ID, code, expiresAt)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.Service{}, ErrInvalidRouteTransition
		}
		log.Printf("[lifecycle][usecase] regenerate-code failed service_id=%s err=%v", svc.ID, err)
		return entities.Service{}, err
	}
	log.Printf("[lifecycle][usecase] regenerate-code success service_id=%s", svc.ID)

	u.notify(ctx, svc.ClientID, interfaces.EventProfessionalHere, map[string]any{
		"service_id":        svc.ID,
		"verification_code": code,
	})
	return updated, nil
}

// VerifyAndStart consumes the verification code: exact match against the
// stored value, wall-clock expiry check, single use. The conditional write
// compares the stored code again, so a code regenerated after this read still
// fails cleanly.
func (u *LifecycleUseCase) VerifyAndStart(ctx context.Context, serviceID, professionalID, code string) (entities.Service, error) {
	code = strings.TrimSpace(code)
	if len(code) != verificationCodeLength || !digitsOnly(code) {
		return entities.Service{}, ErrInvalidCode
	}

	svc, _, err := u.loadAssigned(ctx, serviceID, professionalID)
	if err != nil {
		return entities.Service{}, err
	}
	if svc.RouteStatus != entities.RouteStatusArrived {
		return entities.Service{}, ErrInvalidRouteTransition
	}
	if svc.VerificationCodeExpired(time.Now().UTC()) {
		return entities.Service{}, ErrCodeExpired
	}

	updated, err := u.serviceRepo.ConsumeVerificationCode(ctx, svc.ID, code)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.Service{}, ErrCodeMismatch
		}
		log.Printf("[lifecycle][usecase] verify-and-start failed service_id=%s err=%v", svc.ID, err)
		return entities.Service{}, err
	}
	log.Printf("[lifecycle][usecase] verify-and-start success service_id=%s", svc.ID)

	u.notify(ctx, svc.ClientID, interfaces.EventServiceStarted, map[string]any{"service_id": svc.ID})
	return updated, nil
}

// Sign stores the client sign-off. The client signs directly; the assigned
// professional may upload the bytes on the client's behalf. Either way the
// stored SignedBy is the client's id.
func (u *LifecycleUseCase) Sign(ctx context.Context, serviceID string, in SignInput) (entities.Service, error) {
	if strings.TrimSpace(in.SignatureBlob) == "" {
		return entities.Service{}, ErrInvalidSignature
	}

	svc, err := u.loadService(ctx, serviceID)
	if err != nil {
		return entities.Service{}, err
	}
	if svc.RouteStatus != entities.RouteStatusServiceStarted {
		return entities.Service{}, ErrInvalidRouteTransition
	}
	if svc.ClientSignature != nil {
		return entities.Service{}, ErrAlreadySigned
	}

	actorID := strings.TrimSpace(in.ActorID)
	switch in.ActorRole {
	case "client":
		if actorID != svc.ClientID {
			return entities.Service{}, ErrNotSignParty
		}
	case "professional":
		accepted, err := u.acceptedQuote(ctx, svc.ID)
		if err != nil {
			return entities.Service{}, err
		}
		if accepted.ProfessionalID != actorID {
			return entities.Service{}, ErrNotSignParty
		}
	default:
		return entities.Service{}, ErrNotSignParty
	}

	sig := entities.ClientSignature{
		SignatureBlob: in.SignatureBlob,
		SignedAt:      time.Now().UTC(),
		SignedBy:      svc.ClientID,
	}

	updated, err := u.serviceRepo.SetSignature(ctx, svc.ID, sig)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.Service{}, ErrAlreadySigned
		}
		log.Printf("[lifecycle][usecase] sign failed service_id=%s err=%v", svc.ID, err)
		return entities.Service{}, err
	}
	log.Printf("[lifecycle][usecase] sign success service_id=%s signed_by=%s uploaded_by=%s", svc.ID, sig.SignedBy, actorID)

	u.notify(ctx, svc.ClientID, interfaces.EventServiceSigned, map[string]any{"service_id": svc.ID})
	return updated, nil
}

// Complete closes the job: route service_started -> service_completed and the
// commercial status -> completed in one write, gated on the signature.
func (u *LifecycleUseCase) Complete(ctx context.Context, serviceID, professionalID string) (entities.Service, error) {
	svc, _, err := u.loadAssigned(ctx, serviceID, professionalID)
	if err != nil {
		return entities.Service{}, err
	}
	if svc.RouteStatus != entities.RouteStatusServiceStarted {
		return entities.Service{}, ErrInvalidRouteTransition
	}
	if svc.ClientSignature == nil {
		return entities.Service{}, ErrNotSigned
	}
	if svc.Status != entities.ServiceStatusInProgress {
		return entities.Service{}, ErrServiceNotInProgress
	}

	updated, err := u.serviceRepo.Complete(ctx, svc.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.Service{}, ErrInvalidRouteTransition
		}
		log.Printf("[lifecycle][usecase] complete failed service_id=%s err=%v", svc.ID, err)
		return entities.Service{}, err
	}
	log.Printf("[lifecycle][usecase] complete success service_id=%s", svc.ID)

	u.notify(ctx, svc.ClientID, interfaces.EventServiceCompleted, map[string]any{"service_id": svc.ID})
	return updated, nil
}

// loadService fetches a service or fails with the domain not-found error.
func (u *LifecycleUseCase) loadService(ctx context.Context, serviceID string) (entities.Service, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return entities.Service{}, ErrInvalidServiceID
	}
	svc, err := u.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return entities.Service{}, err
	}
	if svc.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	return svc, nil
}

// loadAssigned fetches the service plus its accepted quote and checks the
// acting professional holds it. Every route operation funnels through here.
func (u *LifecycleUseCase) loadAssigned(ctx context.Context, serviceID, professionalID string) (entities.Service, entities.Quote, error) {
	svc, err := u.loadService(ctx, serviceID)
	if err != nil {
		return entities.Service{}, entities.Quote{}, err
	}
	if svc.Status != entities.ServiceStatusInProgress {
		return entities.Service{}, entities.Quote{}, ErrServiceNotInProgress
	}

	accepted, err := u.acceptedQuote(ctx, svc.ID)
	if err != nil {
		return entities.Service{}, entities.Quote{}, err
	}
	if accepted.ProfessionalID != strings.TrimSpace(professionalID) {
		return entities.Service{}, entities.Quote{}, ErrNotAssignedProfessional
	}
	return svc, accepted, nil
}

func (u *LifecycleUseCase) acceptedQuote(ctx context.Context, serviceID string) (entities.Quote, error) {
	quotes, err := u.quoteRepo.ListByServiceID(ctx, serviceID, entities.QuoteStatusAccepted)
	if err != nil {
		return entities.Quote{}, err
	}
	if len(quotes) == 0 {
		return entities.Quote{}, ErrNoAcceptedQuote
	}
	// Exclusivity invariant guarantees at most one.
	return quotes[0], nil
}

func (u *LifecycleUseCase) notify(ctx context.Context, userID, kind string, payload map[string]any) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.Notify(ctx, userID, kind, payload); err != nil {
		log.Printf("[lifecycle][usecase] notify failed user_id=%s kind=%s err=%v", userID, kind, err)
	}
}

// generateVerificationCode draws 5 ASCII digits from crypto/rand. Bytes of
// 250 and above are redrawn so every digit is equally likely.
func generateVerificationCode() (string, error) {
	code := make([]byte, 0, verificationCodeLength)
	buf := make([]byte, verificationCodeLength)
	for len(code) < verificationCodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate verification code: %w", err)
		}
		for _, b := range buf {
			if b >= 250 || len(code) == verificationCodeLength {
				continue
			}
			code = append(code, '0'+b%10)
		}
	}
	return string(code), nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
