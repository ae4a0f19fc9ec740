package interfaces

import "context"

// Notification kinds emitted by the core on state changes.
const (
	EventQuoteReceived    = "quote_received"
	EventQuoteAccepted    = "quote_accepted"
	EventRouteStarted     = "route_started"
	EventProfessionalHere = "professional_arrived"
	EventServiceStarted   = "service_started"
	EventServiceSigned    = "service_signed"
	EventServiceCompleted = "service_completed"
	EventPaymentSettled   = "payment_settled"
	EventPaymentRefunded  = "payment_refunded"
)

// IEventNotifier is the fire-and-forget notification sink. Delivery is
// at-most-once from the core's perspective; a notify failure must never fail
// the state transition that triggered it, so callers log and move on.
type IEventNotifier interface {
	Notify(ctx context.Context, userID, kind string, payload map[string]any) error
}
