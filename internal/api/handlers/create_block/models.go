package create_block

import (
	"github.com/m04kA/rental-guide-service/internal/service/blocks"
	"github.com/m04kA/rental-guide-service/pkg/types"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	StartDate types.Date `json:"startDate"`
	EndDate   types.Date `json:"endDate"` // Включительно
	Reason    *string    `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest(propertyID string) blocks.CreateRequest {
	return blocks.CreateRequest{
		PropertyID: propertyID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Reason:     r.Reason,
	}
}
