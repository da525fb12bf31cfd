package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type WorkingHoursRM struct {
	Weekday string `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type ServiceRM struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	Duration        string    `json:"duration"`
	Price           string    `json:"price"`
}

type ProfessionalRM struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	ServiceIDs []uuid.UUID `json:"serviceIds"`
}

type SalonDetailsRM struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Timezone      string           `json:"timezone"`
	Plan          string           `json:"plan"`
	WorkingHours  []WorkingHoursRM `json:"workingHours"`
	Services      []ServiceRM      `json:"services"`
	Professionals []ProfessionalRM `json:"professionals"`
}

var weekdayNames = [...]string{"domingo", "segunda", "terça", "quarta", "quinta", "sexta", "sábado"}

func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}
