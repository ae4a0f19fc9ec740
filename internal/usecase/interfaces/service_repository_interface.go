package interfaces

import (
	"context"
	"time"

	"servihub/internal/domain/entities"
)

// IServiceRepository abstracts DynamoDB persistence for Service.
//
// Every mutation is a single conditional write; a guard that no longer holds
// surfaces as ErrConditionFailed so the usecase can translate it into the
// right domain failure instead of observing a half-applied state.
type IServiceRepository interface {
	Create(ctx context.Context, s entities.Service) (entities.Service, error)
	GetByID(ctx context.Context, id string) (entities.Service, error)
	ListByClientID(ctx context.Context, clientID string, status entities.ServiceStatus) ([]entities.Service, error)

	// UpdateStatus moves the commercial status conditionally on the current one.
	UpdateStatus(ctx context.Context, id string, from, to entities.ServiceStatus) (entities.Service, error)

	// UpdateRouteStatus advances the route sub-machine conditionally on the
	// current route status and on the service still being in_progress.
	UpdateRouteStatus(ctx context.Context, id string, from, to entities.RouteStatus) (entities.Service, error)

	// MarkArrived flips the route status to arrived and stores a fresh
	// verification code in the same conditional write.
	MarkArrived(ctx context.Context, id string, from entities.RouteStatus, code string, expiresAt time.Time) (entities.Service, error)

	// SetVerificationCode atomically swaps the stored code and expiry while the
	// route status is still arrived; the old code is invalidated in the same
	// write.
	SetVerificationCode(ctx context.Context, id string, code string, expiresAt time.Time) (entities.Service, error)

	// ConsumeVerificationCode flips arrived -> service_started only if the
	// stored code equals the supplied one, clearing the code in the same write.
	ConsumeVerificationCode(ctx context.Context, id string, code string) (entities.Service, error)

	// SetSignature stores the client signature once; fails if one exists or the
	// route status is not service_started.
	SetSignature(ctx context.Context, id string, sig entities.ClientSignature) (entities.Service, error)

	// Complete flips route_status -> service_completed and status -> completed
	// in one write, guarded on service_started + signature present + in_progress.
	Complete(ctx context.Context, id string) (entities.Service, error)

	// SetProfessionalLocation is a last-write-wins upsert guarded by a
	// monotonically increasing timestamp; it never touches the route status.
	SetProfessionalLocation(ctx context.Context, id string, loc entities.ProfessionalLocation) (entities.Service, error)
}
