package readmodel

import (
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/customer"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/pkg/tz"

	"github.com/google/uuid"
)

type AppointmentRM struct {
	ID               uuid.UUID `json:"id"`
	CustomerID       uuid.UUID `json:"customerId"`
	CustomerName     string    `json:"customerName"`
	ProfessionalID   uuid.UUID `json:"professionalId"`
	ProfessionalName string    `json:"professionalName"`
	ServiceID        uuid.UUID `json:"serviceId"`
	ServiceName      string    `json:"serviceName"`
	// StartsAt and EndsAt are pt-BR display strings in the salon zone.
	StartsAt    string  `json:"startsAt"`
	EndsAt      string  `json:"endsAt"`
	StartsAtISO string  `json:"startsAtISO"`
	EndsAtISO   string  `json:"endsAtISO"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
	SyncWarning *string `json:"syncWarning,omitempty"`
}

// NewAppointmentRM tolerates missing related entities; their names are left empty.
func NewAppointmentRM(
	a *appointment.Appointment,
	c *customer.Customer,
	pro *professional.Professional,
	svc *catalog.Service,
	loc *time.Location,
) AppointmentRM {
	rm := AppointmentRM{
		ID:             a.ID(),
		CustomerID:     a.CustomerID(),
		ProfessionalID: a.ProfessionalID(),
		ServiceID:      a.ServiceID(),
		StartsAt:       tz.FormatDisplay(a.Start(), loc),
		EndsAt:         tz.FormatDisplay(a.End(), loc),
		StartsAtISO:    tz.FormatISO(a.Start()),
		EndsAtISO:      tz.FormatISO(a.End()),
		Status:         a.Status().String(),
		Notes:          a.Notes(),
		SyncWarning:    a.LastSyncError(),
	}
	if c != nil {
		rm.CustomerName = c.Name()
	}
	if pro != nil {
		rm.ProfessionalName = pro.Name()
	}
	if svc != nil {
		rm.ServiceName = svc.Name()
	}
	return rm
}
