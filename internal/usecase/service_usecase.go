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
	ErrServiceNotFound    = errors.New("service not found")
	ErrInvalidServiceID   = errors.New("invalid service id")
	ErrInvalidClientID    = errors.New("invalid client id")
	ErrInvalidTitle       = errors.New("invalid service title")
	ErrInvalidCategory    = errors.New("invalid service category")
	ErrInvalidBudgetRange = errors.New("invalid budget range")
	ErrInvalidDeadline    = errors.New("invalid deadline")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrNotServiceOwner    = errors.New("actor does not own this service")
	ErrServiceNotPending  = errors.New("service is not pending")
)

// CreateServiceInput carries the client-supplied descriptive fields.
type CreateServiceInput struct {
	Title       string
	Description string
	Category    string
	BudgetMin   float64
	BudgetMax   float64
	Priority    entities.ServicePriority
	Deadline    time.Time
}

// IServiceUseCase exposes the client-facing service (job posting) operations.

type IServiceUseCase interface {
	Create(ctx context.Context, clientID string, in CreateServiceInput) (entities.Service, error)
	GetByID(ctx context.Context, id string) (entities.Service, error)
	ListByClient(ctx context.Context, clientID string, status entities.ServiceStatus) ([]entities.Service, error)
	Cancel(ctx context.Context, serviceID, clientID string) (entities.Service, error)
}

type ServiceUseCase struct {
	repo interfaces.IServiceRepository
}

var _ IServiceUseCase = (*ServiceUseCase)(nil)

func NewServiceUseCase(repo interfaces.IServiceRepository) *ServiceUseCase {
	return &ServiceUseCase{repo: repo}
}

func (u *ServiceUseCase) Create(ctx context.Context, clientID string, in CreateServiceInput) (entities.Service, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return entities.Service{}, ErrInvalidClientID
	}
	if strings.TrimSpace(in.Title) == "" {
		return entities.Service{}, ErrInvalidTitle
	}
	if strings.TrimSpace(in.Category) == "" {
		return entities.Service{}, ErrInvalidCategory
	}
	if in.BudgetMin < 0 || in.BudgetMax <= 0 || in.BudgetMin > in.BudgetMax {
		return entities.Service{}, ErrInvalidBudgetRange
	}
	if in.Priority == "" {
		in.Priority = entities.ServicePriorityNormal
	}
	if !in.Priority.Valid() {
		return entities.Service{}, ErrInvalidPriority
	}
	now := time.Now().UTC()
	if !in.Deadline.IsZero() && in.Deadline.Before(now) {
		return entities.Service{}, ErrInvalidDeadline
	}

	s := entities.Service{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		BudgetMin:   in.BudgetMin,
		BudgetMax:   in.BudgetMax,
		Priority:    in.Priority,
		Deadline:    in.Deadline,
		Status:      entities.ServiceStatusPending,
		RouteStatus: entities.RouteStatusNotStarted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := u.repo.Create(ctx, s)
	if err != nil {
		log.Printf("[service][usecase] create failed client_id=%s err=%v", clientID, err)
		return entities.Service{}, err
	}
	log.Printf("[service][usecase] create success service_id=%s client_id=%s", created.ID, clientID)
	return created, nil
}

func (u *ServiceUseCase) GetByID(ctx context.Context, id string) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrInvalidServiceID
	}

	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	if s.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	return s, nil
}

func (u *ServiceUseCase) ListByClient(ctx context.Context, clientID string, status entities.ServiceStatus) ([]entities.Service, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, ErrInvalidClientID
	}
	return u.repo.ListByClientID(ctx, clientID, status)
}

// Cancel closes a still-pending service. Cancelled is terminal; quotes left
// pending on the service simply lapse through their valid_until dates.
func (u *ServiceUseCase) Cancel(ctx context.Context, serviceID, clientID string) (entities.Service, error) {
	s, err := u.GetByID(ctx, serviceID)
	if err != nil {
		return entities.Service{}, err
	}
	if s.ClientID != strings.TrimSpace(clientID) {
		return entities.Service{}, ErrNotServiceOwner
	}
	if s.Status != entities.ServiceStatusPending {
		return entities.Service{}, ErrServiceNotPending
	}

	updated, err := u.repo.UpdateStatus(ctx, s.ID, entities.ServiceStatusPending, entities.ServiceStatusCancelled)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return entities.Service{}, ErrServiceNotPending
		}
		log.Printf("[service][usecase] cancel failed service_id=%s err=%v", s.ID, err)
		return entities.Service{}, err
	}
	log.Printf("[service][usecase] cancel success service_id=%s", s.ID)
	return updated, nil
}
