package interfaces

import (
	"context"

	"servihub/internal/domain/entities"
)

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// Accept is the one multi-row unit in the quote table's lifetime: it must be
// observed all-or-nothing (winner accepted, pending siblings rejected, service
// flipped to in_progress) and loses cleanly with ErrConditionFailed when a
// concurrent accept got there first.
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByServiceID(ctx context.Context, serviceID string, status entities.QuoteStatus) ([]entities.Quote, error)
	ListByProfessionalID(ctx context.Context, professionalID string, status entities.QuoteStatus) ([]entities.Quote, error)
	ListByClientID(ctx context.Context, clientID string, status entities.QuoteStatus) ([]entities.Quote, error)

	// UpdateStatus moves the quote status conditionally on the current one.
	UpdateStatus(ctx context.Context, id string, from, to entities.QuoteStatus) (entities.Quote, error)

	// MarkExpired persists the lazy pending -> expired flip. A concurrent
	// transition away from pending is not an error; the caller re-reads.
	MarkExpired(ctx context.Context, id string) (entities.Quote, error)

	// Accept applies the acceptance unit in a single transaction:
	//   - service status pending -> in_progress (the compare-and-set
	//     linearization point)
	//   - winner quote pending -> accepted
	//   - every listed sibling pending -> rejected
	Accept(ctx context.Context, serviceID, winnerID string, siblingIDs []string) (entities.Quote, error)
}
