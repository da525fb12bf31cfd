package integration

import (
	"fmt"
	"strings"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/customer"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/salon"
	"salon-scheduler/internal/pkg/tz"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// AppointmentEvent carries everything a provider needs plus the external ids stored so far.
// PreviousCalendarRef is set when a reassignment moved the appointment to another calendar.
type AppointmentEvent struct {
	SalonID             uuid.UUID
	AppointmentID       uuid.UUID
	ProfessionalID      uuid.UUID
	CalendarRef         *string
	PreviousCalendarRef *string
	CalendarEventID     *string
	SchedulerEventID    *string
	Payload             shared.ExternalEvent
}

// MovedFrom records the calendar the appointment was on before a reassignment.
func (e AppointmentEvent) MovedFrom(previous *professional.Professional) AppointmentEvent {
	prevRef := previous.ExternalCalendarID()
	if prevRef == nil || (e.CalendarRef != nil && *e.CalendarRef == *prevRef) {
		return e
	}
	e.PreviousCalendarRef = prevRef
	return e
}

type ExternalIDs struct {
	CalendarEventID  *string
	SchedulerEventID *string
}

type SyncError struct {
	Provider  string
	Operation Operation
	Message   string
}

func (e SyncError) String() string {
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Operation, e.Message)
}

type SyncResult struct {
	Success     bool
	ExternalIDs ExternalIDs
	Errors      []SyncError
}

// Warning joins the per-provider errors, or returns nil when the sync succeeded.
func (r SyncResult) Warning() *string {
	if len(r.Errors) == 0 {
		return nil
	}
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = e.String()
	}
	w := strings.Join(parts, "; ")
	return &w
}

func NewAppointmentEvent(
	a *appointment.Appointment,
	sl *salon.Salon,
	pro *professional.Professional,
	svc *catalog.Service,
	c *customer.Customer,
) AppointmentEvent {
	loc := sl.Location()
	description := fmt.Sprintf("Cliente: %s (%s)\nServiço: %s\nProfissional: %s\nHorário: %s",
		c.Name(), c.Phone().String(), svc.Name(), pro.Name(), tz.FormatDisplay(a.Start(), loc))
	if a.Notes() != "" {
		description += "\nObservações: " + a.Notes()
	}
	return AppointmentEvent{
		SalonID:          a.SalonID(),
		AppointmentID:    a.ID(),
		ProfessionalID:   a.ProfessionalID(),
		CalendarRef:      pro.ExternalCalendarID(),
		CalendarEventID:  a.CalendarEventID(),
		SchedulerEventID: a.SchedulerEventID(),
		Payload: shared.ExternalEvent{
			AppointmentID:  a.ID(),
			ProfessionalID: a.ProfessionalID(),
			ServiceID:      a.ServiceID(),
			Title:          fmt.Sprintf("%s - %s", svc.Name(), c.Name()),
			Description:    description,
			CustomerName:   c.Name(),
			CustomerPhone:  c.Phone().String(),
			Start:          a.Start(),
			End:            a.End(),
			TimeZone:       sl.Timezone(),
		},
	}
}
