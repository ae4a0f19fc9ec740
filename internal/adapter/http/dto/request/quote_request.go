package request

import (
	"time"

	"servihub/internal/domain/entities"
	"servihub/internal/usecase"
)

type QuoteMaterialRequest struct {
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
}

type QuoteLaborRequest struct {
	Description string  `json:"description"`
	Total       float64 `json:"total"`
}

// CreateQuoteRequest is a professional's offer against a service. The total
// price is never part of the payload; it is always computed server-side.
type CreateQuoteRequest struct {
	Materials  []QuoteMaterialRequest `json:"materials"`
	Labor      QuoteLaborRequest      `json:"labor" binding:"required"`
	ValidUntil string                 `json:"valid_until" binding:"required"` // RFC 3339
}

func (r CreateQuoteRequest) ToInput() usecase.CreateQuoteInput {
	materials := make([]entities.QuoteMaterial, 0, len(r.Materials))
	for _, m := range r.Materials {
		materials = append(materials, entities.QuoteMaterial{
			Name:      m.Name,
			Quantity:  m.Quantity,
			Unit:      m.Unit,
			UnitPrice: m.UnitPrice,
		})
	}

	validUntil, _ := time.Parse(time.RFC3339, r.ValidUntil)
	return usecase.CreateQuoteInput{
		Materials: materials,
		Labor: entities.QuoteLabor{
			Description: r.Labor.Description,
			Total:       r.Labor.Total,
		},
		ValidUntil: validUntil,
	}
}
