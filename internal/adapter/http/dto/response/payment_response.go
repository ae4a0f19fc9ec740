package response

import (
	"time"

	"servihub/internal/domain/entities"
)

type PaymentResponse struct {
	ID        string `json:"id"`
	QuoteID   string `json:"quote_id"`
	ServiceID string `json:"service_id"`

	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Method   string  `json:"method"`
	Status   string  `json:"status"`

	AppFee      float64   `json:"app_fee"`
	GatewayFee  float64   `json:"gateway_fee"`
	NetAmount   float64   `json:"net_amount"`
	AvailableAt time.Time `json:"available_at"`

	ExternalReference string `json:"external_reference"`
	ChargeRef         string `json:"charge_ref,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		QuoteID:           p.QuoteID,
		ServiceID:         p.ServiceID,
		Amount:            p.Amount,
		Currency:          p.Currency,
		Method:            string(p.Method),
		Status:            string(p.Status),
		AppFee:            p.AppFee,
		GatewayFee:        p.GatewayFee,
		NetAmount:         p.NetAmount,
		AvailableAt:       p.AvailableAt,
		ExternalReference: p.ExternalReference,
		ChargeRef:         p.ChargeRef,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}
