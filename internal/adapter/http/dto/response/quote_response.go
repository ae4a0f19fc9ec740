package response

import (
	"time"

	"servihub/internal/domain/entities"
)

type QuoteMaterialResponse struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

type QuoteLaborResponse struct {
	Description string  `json:"description,omitempty"`
	Total       float64 `json:"total"`
}

type QuoteResponse struct {
	ID             string `json:"id"`
	ServiceID      string `json:"service_id"`
	ProfessionalID string `json:"professional_id"`
	ClientID       string `json:"client_id"`

	Materials  []QuoteMaterialResponse `json:"materials"`
	Labor      QuoteLaborResponse      `json:"labor"`
	TotalPrice float64                 `json:"total_price"`

	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	ValidUntil    time.Time `json:"valid_until"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	materials := make([]QuoteMaterialResponse, 0, len(q.Materials))
	for _, m := range q.Materials {
		materials = append(materials, QuoteMaterialResponse{
			Name:      m.Name,
			Quantity:  m.Quantity,
			Unit:      m.Unit,
			UnitPrice: m.UnitPrice,
			Total:     m.Total(),
		})
	}

	return QuoteResponse{
		ID:             q.ID,
		ServiceID:      q.ServiceID,
		ProfessionalID: q.ProfessionalID,
		ClientID:       q.ClientID,
		Materials:      materials,
		Labor: QuoteLaborResponse{
			Description: q.Labor.Description,
			Total:       q.Labor.Total,
		},
		TotalPrice:    q.TotalPrice,
		Status:        string(q.Status),
		PaymentStatus: string(q.PaymentStatus),
		ValidUntil:    q.ValidUntil,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func FromQuotes(quotes []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}
