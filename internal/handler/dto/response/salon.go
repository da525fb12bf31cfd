package response

import (
	"github.com/google/uuid"
)

type WorkingHoursResponse struct {
	Weekday string `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	Duration        string    `json:"duration"`
	Price           string    `json:"price"`
}

type ProfessionalResponse struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	ServiceIDs []uuid.UUID `json:"serviceIds"`
}

type SalonDetailsResponse struct {
	ID            uuid.UUID              `json:"id"`
	Name          string                 `json:"name"`
	Timezone      string                 `json:"timezone"`
	Plan          string                 `json:"plan"`
	WorkingHours  []WorkingHoursResponse `json:"workingHours"`
	Services      []ServiceResponse      `json:"services"`
	Professionals []ProfessionalResponse `json:"professionals"`
}
