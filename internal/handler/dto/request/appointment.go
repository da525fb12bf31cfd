package request

import (
	"strings"
	"time"

	"salon-scheduler/internal/pkg/ptr"
	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	CustomerID     uuid.UUID `json:"customerId" binding:"required"`
	ProfessionalID uuid.UUID `json:"professionalId" binding:"required"`
	ServiceID      uuid.UUID `json:"serviceId" binding:"required"`
	StartsAt       time.Time `json:"startsAt" binding:"required"`
	Notes          string    `json:"notes" binding:"max=1000"`
}

func (r CreateAppointmentRequest) ToCommand(salonID uuid.UUID) commands.CreateAppointmentRequest {
	return commands.CreateAppointmentRequest{
		SalonID:        salonID,
		CustomerID:     r.CustomerID,
		ProfessionalID: r.ProfessionalID,
		ServiceID:      r.ServiceID,
		Start:          r.StartsAt,
		Notes:          strings.TrimSpace(r.Notes),
	}
}

// UpdateAppointmentRequest is a partial update; omitted fields keep their stored value.
type UpdateAppointmentRequest struct {
	ProfessionalID *uuid.UUID `json:"professionalId,omitempty"`
	ServiceID      *uuid.UUID `json:"serviceId,omitempty"`
	StartsAt       *time.Time `json:"startsAt,omitempty"`
	Notes          *string    `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

func (r UpdateAppointmentRequest) IsEmpty() bool {
	return r.ProfessionalID == nil && r.ServiceID == nil && r.StartsAt == nil && r.Notes == nil
}

func (r UpdateAppointmentRequest) ToCommand(appointmentID uuid.UUID) commands.UpdateAppointmentRequest {
	cmd := commands.UpdateAppointmentRequest{
		AppointmentID:  appointmentID,
		ProfessionalID: r.ProfessionalID,
		ServiceID:      r.ServiceID,
		Start:          r.StartsAt,
	}
	if r.Notes != nil {
		cmd.Notes = ptr.To(strings.TrimSpace(*r.Notes))
	}
	return cmd
}
