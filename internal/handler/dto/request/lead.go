package request

import (
	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

type QualifyLeadRequest struct {
	Phone       string `json:"phone" binding:"required"`
	Name        string `json:"name" binding:"max=200"`
	Interest    string `json:"interest" binding:"max=500"`
	Temperature string `json:"temperature" binding:"required"`
	Notes       string `json:"notes" binding:"max=1000"`
}

func (r QualifyLeadRequest) ToCommand(salonID uuid.UUID) commands.QualifyLeadRequest {
	return commands.QualifyLeadRequest{
		SalonID:     salonID,
		Phone:       r.Phone,
		Name:        r.Name,
		Interest:    r.Interest,
		Temperature: r.Temperature,
		Notes:       r.Notes,
	}
}
