package request

import (
	"strings"
	"time"

	"servihub/internal/domain/entities"
	"servihub/internal/usecase"
)

// CreateServiceRequest is the payload for posting a new job. Priority defaults
// to "normal" when omitted.
type CreateServiceRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	BudgetMin   float64 `json:"budget_min" binding:"required"`
	BudgetMax   float64 `json:"budget_max" binding:"required"`
	Priority    string  `json:"priority"`
	Deadline    string  `json:"deadline" binding:"required"` // RFC 3339
}

func (r CreateServiceRequest) ResolvePriority() entities.ServicePriority {
	p := strings.TrimSpace(r.Priority)
	if p == "" {
		return entities.ServicePriorityNormal
	}
	return entities.ServicePriority(p)
}

// ToInput converts the wire payload into the use case input. A malformed
// deadline yields a zero time, which the use case rejects.
func (r CreateServiceRequest) ToInput() usecase.CreateServiceInput {
	deadline, _ := time.Parse(time.RFC3339, r.Deadline)
	return usecase.CreateServiceInput{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Category:    strings.TrimSpace(r.Category),
		BudgetMin:   r.BudgetMin,
		BudgetMax:   r.BudgetMax,
		Priority:    r.ResolvePriority(),
		Deadline:    deadline,
	}
}
