package response

import (
	"github.com/google/uuid"
)

type AppointmentResponse struct {
	ID               uuid.UUID `json:"id"`
	CustomerID       uuid.UUID `json:"customerId"`
	CustomerName     string    `json:"customerName"`
	ProfessionalID   uuid.UUID `json:"professionalId"`
	ProfessionalName string    `json:"professionalName"`
	ServiceID        uuid.UUID `json:"serviceId"`
	ServiceName      string    `json:"serviceName"`
	StartsAt         string    `json:"startsAt"`
	EndsAt           string    `json:"endsAt"`
	StartsAtISO      string    `json:"startsAtISO"`
	EndsAtISO        string    `json:"endsAtISO"`
	Status           string    `json:"status"`
	Notes            string    `json:"notes"`
	SyncWarning      *string   `json:"syncWarning,omitempty"`
}

type UpcomingAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
