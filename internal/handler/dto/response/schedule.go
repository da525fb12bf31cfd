package response

import (
	"github.com/google/uuid"
)

type AvailabilityRuleResponse struct {
	ID             uuid.UUID `json:"id"`
	ProfessionalID uuid.UUID `json:"professionalId"`
	Weekday        int       `json:"weekday"`
	Start          string    `json:"start"`
	End            string    `json:"end"`
	IsBreak        bool      `json:"isBreak"`
}

type ScheduleOverrideResponse struct {
	ID             uuid.UUID  `json:"id"`
	SalonID        uuid.UUID  `json:"salonId"`
	ProfessionalID *uuid.UUID `json:"professionalId,omitempty"`
	StartsAtISO    string     `json:"startsAtISO"`
	EndsAtISO      string     `json:"endsAtISO"`
	Reason         *string    `json:"reason,omitempty"`
}
