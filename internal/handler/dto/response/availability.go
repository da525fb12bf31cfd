package response

import (
	"github.com/google/uuid"
)

type SlotResponse struct {
	Time           string     `json:"time"`
	Available      bool       `json:"available"`
	ProfessionalID *uuid.UUID `json:"professionalId,omitempty"`
}

type AvailabilityResponse struct {
	Date                   string         `json:"date"`
	DateISO                string         `json:"dateISO"`
	ProfessionalID         *uuid.UUID     `json:"professionalId,omitempty"`
	DurationMinutes        int            `json:"durationMinutes"`
	Slots                  []SlotResponse `json:"slots"`
	TotalAvailable         int            `json:"totalAvailable"`
	RequestedSlotAvailable *bool          `json:"requestedSlotAvailable,omitempty"`
	Message                string         `json:"message"`
}
