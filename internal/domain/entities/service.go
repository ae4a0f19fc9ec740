package entities

import "time"

// ServiceStatus represents the commercial lifecycle of a posted service.
//
// Domain notes:
//   - pending: the service is open for quote competition.
//   - in_progress: exactly one quote was accepted.
//   - completed / cancelled are terminal and never revert.

type ServiceStatus string

const (
	ServiceStatusPending    ServiceStatus = "pending"
	ServiceStatusInProgress ServiceStatus = "in_progress"
	ServiceStatusCompleted  ServiceStatus = "completed"
	ServiceStatusCancelled  ServiceStatus = "cancelled"
)

// Terminal reports whether the status can never change again.
func (s ServiceStatus) Terminal() bool {
	return s == ServiceStatusCompleted || s == ServiceStatusCancelled
}

// RouteStatus is the on-site execution sub-state machine. It is independent
// from ServiceStatus, only meaningful once a quote is accepted, and advances
// strictly forward.

type RouteStatus string

const (
	RouteStatusNotStarted       RouteStatus = "not_started"
	RouteStatusRouteStarted     RouteStatus = "route_started"
	RouteStatusInTransit        RouteStatus = "in_transit"
	RouteStatusArrived          RouteStatus = "arrived"
	RouteStatusServiceStarted   RouteStatus = "service_started"
	RouteStatusServiceCompleted RouteStatus = "service_completed"
)

// CanTransitionTo specifies if the route status can advance to the next status.
func (s RouteStatus) CanTransitionTo(next RouteStatus) bool {
	switch s {
	case RouteStatusNotStarted:
		return next == RouteStatusRouteStarted
	case RouteStatusRouteStarted:
		return next == RouteStatusInTransit || next == RouteStatusArrived
	case RouteStatusInTransit:
		return next == RouteStatusArrived
	case RouteStatusArrived:
		return next == RouteStatusServiceStarted
	case RouteStatusServiceStarted:
		return next == RouteStatusServiceCompleted
	default:
		return false
	}
}

// ServicePriority is the client-declared urgency of the job.

type ServicePriority string

const (
	ServicePriorityLow    ServicePriority = "low"
	ServicePriorityNormal ServicePriority = "normal"
	ServicePriorityHigh   ServicePriority = "high"
	ServicePriorityUrgent ServicePriority = "urgent"
)

func (p ServicePriority) Valid() bool {
	switch p {
	case ServicePriorityLow, ServicePriorityNormal, ServicePriorityHigh, ServicePriorityUrgent:
		return true
	default:
		return false
	}
}

// ClientSignature is the client's sign-off collected on site. It is stored at
// most once; SignedBy is always the client's id regardless of which actor
// uploaded the bytes.
type ClientSignature struct {
	SignatureBlob string    `json:"signature_blob"`
	SignedAt      time.Time `json:"signed_at"`
	SignedBy      string    `json:"signed_by"`
}

// ProfessionalLocation is the last-known position of the assigned
// professional. It is overwritten freely; no history is kept.
type ProfessionalLocation struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// Service is a job posted by a client, persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (client_id-index): client_id
//
// The verification code fields are ephemeral: present only while RouteStatus is
// "arrived" and the code has not been consumed.

type Service struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	BudgetMin   float64         `json:"budget_min"`
	BudgetMax   float64         `json:"budget_max"`
	Priority    ServicePriority `json:"priority"`
	Deadline    time.Time       `json:"deadline"`

	Status      ServiceStatus `json:"status"`
	RouteStatus RouteStatus   `json:"route_status"`

	VerificationCode          string     `json:"verification_code,omitempty"`
	VerificationCodeExpiresAt *time.Time `json:"verification_code_expires_at,omitempty"`

	ClientSignature      *ClientSignature      `json:"client_signature,omitempty"`
	ProfessionalLocation *ProfessionalLocation `json:"professional_location,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VerificationCodeExpired reports whether the stored code lapsed at the given
// wall-clock instant. Computed on read; nothing is stored.
func (s Service) VerificationCodeExpired(now time.Time) bool {
	if s.VerificationCode == "" || s.VerificationCodeExpiresAt == nil {
		return false
	}
	return now.After(*s.VerificationCodeExpiresAt)
}

// IsOverdue reports whether the deadline has passed without completion.
func (s Service) IsOverdue(now time.Time) bool {
	if s.Deadline.IsZero() || s.Status.Terminal() {
		return false
	}
	return now.After(s.Deadline)
}

// DaysUntilDeadline returns whole days remaining until the deadline, negative
// when overdue.
func (s Service) DaysUntilDeadline(now time.Time) int {
	if s.Deadline.IsZero() {
		return 0
	}
	return int(s.Deadline.Sub(now).Hours() / 24)
}
