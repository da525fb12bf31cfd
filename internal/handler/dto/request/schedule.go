package request

import (
	"time"

	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

type AddAvailabilityRuleRequest struct {
	Weekday *int   `json:"weekday" binding:"required,min=0,max=6"`
	Start   string `json:"start" binding:"required"`
	End     string `json:"end" binding:"required"`
	IsBreak bool   `json:"isBreak"`
}

func (r AddAvailabilityRuleRequest) ToCommand(salonID, professionalID uuid.UUID) commands.AddAvailabilityRuleRequest {
	return commands.AddAvailabilityRuleRequest{
		SalonID:        salonID,
		ProfessionalID: professionalID,
		Weekday:        *r.Weekday,
		Start:          r.Start,
		End:            r.End,
		IsBreak:        r.IsBreak,
	}
}

type AddScheduleOverrideRequest struct {
	// Omitted for a salon-wide closure.
	ProfessionalID *uuid.UUID `json:"professionalId,omitempty"`
	StartsAt       time.Time  `json:"startsAt" binding:"required"`
	EndsAt         time.Time  `json:"endsAt" binding:"required"`
	Reason         string     `json:"reason" binding:"max=500"`
}

func (r AddScheduleOverrideRequest) ToCommand(salonID uuid.UUID) commands.AddScheduleOverrideRequest {
	return commands.AddScheduleOverrideRequest{
		SalonID:        salonID,
		ProfessionalID: r.ProfessionalID,
		Start:          r.StartsAt,
		End:            r.EndsAt,
		Reason:         r.Reason,
	}
}
