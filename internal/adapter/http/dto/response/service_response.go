package response

import (
	"time"

	"servihub/internal/domain/entities"
)

type ClientSignatureResponse struct {
	SignedAt time.Time `json:"signed_at"`
	SignedBy string    `json:"signed_by"`
}

type ProfessionalLocationResponse struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// ServiceResponse is the public view of a service. The verification code is
// intentionally absent: it reaches the client only through the notification
// channel, never through reads.
type ServiceResponse struct {
	ID          string  `json:"id"`
	ClientID    string  `json:"client_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	BudgetMin   float64 `json:"budget_min"`
	BudgetMax   float64 `json:"budget_max"`
	Priority    string  `json:"priority"`

	Status      string `json:"status"`
	RouteStatus string `json:"route_status"`

	Deadline          time.Time `json:"deadline"`
	Overdue           bool      `json:"overdue"`
	DaysUntilDeadline int       `json:"days_until_deadline"`

	ClientSignature      *ClientSignatureResponse      `json:"client_signature,omitempty"`
	ProfessionalLocation *ProfessionalLocationResponse `json:"professional_location,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromService(s entities.Service) ServiceResponse {
	now := time.Now().UTC()

	resp := ServiceResponse{
		ID:                s.ID,
		ClientID:          s.ClientID,
		Title:             s.Title,
		Description:       s.Description,
		Category:          s.Category,
		BudgetMin:         s.BudgetMin,
		BudgetMax:         s.BudgetMax,
		Priority:          string(s.Priority),
		Status:            string(s.Status),
		RouteStatus:       string(s.RouteStatus),
		Deadline:          s.Deadline,
		Overdue:           s.IsOverdue(now),
		DaysUntilDeadline: s.DaysUntilDeadline(now),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}

	if s.ClientSignature != nil {
		resp.ClientSignature = &ClientSignatureResponse{
			SignedAt: s.ClientSignature.SignedAt,
			SignedBy: s.ClientSignature.SignedBy,
		}
	}
	if s.ProfessionalLocation != nil {
		resp.ProfessionalLocation = &ProfessionalLocationResponse{
			Lat:       s.ProfessionalLocation.Lat,
			Lng:       s.ProfessionalLocation.Lng,
			Timestamp: s.ProfessionalLocation.Timestamp,
		}
	}
	return resp
}

func FromServices(services []entities.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, FromService(s))
	}
	return out
}
