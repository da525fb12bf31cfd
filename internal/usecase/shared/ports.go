package shared

import (
	"context"
	"errors"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/availability"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/customer"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/salon"
	"salon-scheduler/internal/domain/vo"

	"github.com/google/uuid"
)

// Finders return (nil, nil) when the row does not exist.

type AppointmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	// FindByProfessionalAndDate returns non-cancelled appointments overlapping [from, to).
	FindByProfessionalAndDate(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error)
	FindConflicting(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*appointment.Appointment, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*appointment.Appointment, error)
	FindUpcoming(ctx context.Context, salonID uuid.UUID, from time.Time, limit int) ([]*appointment.Appointment, error)
	FindUpcomingByPhone(ctx context.Context, salonID uuid.UUID, phone vo.Phone, from time.Time, limit int) ([]*appointment.Appointment, error)
	Save(ctx context.Context, a *appointment.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateSyncState(ctx context.Context, id uuid.UUID, calendarEventID, schedulerEventID, lastSyncError *string) error
}

type AvailabilityRepository interface {
	FindByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*availability.Rule, error)
	FindByProfessionalAndDay(ctx context.Context, professionalID uuid.UUID, day time.Weekday) ([]*availability.Rule, error)
	// FindOverrides returns salon-wide and professional overrides of the salon overlapping [from, to).
	FindOverrides(ctx context.Context, salonID uuid.UUID, from, to time.Time) ([]*availability.Override, error)
	FindOverridesByProfessional(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*availability.Override, error)
	FindOverrideByID(ctx context.Context, id uuid.UUID) (*availability.Override, error)
	// GenerateSlots builds the base slots of a local date from the professional's rules.
	// An empty result does not distinguish "no rules" from rules that leave no slot;
	// callers check FindByProfessionalAndDay before falling back to salon hours.
	GenerateSlots(ctx context.Context, professionalID uuid.UUID, date time.Time, loc *time.Location, granularity time.Duration) ([]vo.TimeSlot, error)
	SaveRule(ctx context.Context, r *availability.Rule) error
	DeleteRule(ctx context.Context, id uuid.UUID) error
	SaveOverride(ctx context.Context, o *availability.Override) error
	DeleteOverride(ctx context.Context, id uuid.UUID) error
}

type SalonRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*salon.Salon, error)
	Save(ctx context.Context, s *salon.Salon) error
}

type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
	FindActiveBySalon(ctx context.Context, salonID uuid.UUID) ([]*catalog.Service, error)
	Save(ctx context.Context, s *catalog.Service) error
}

type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	FindByPhone(ctx context.Context, salonID uuid.UUID, phone vo.Phone) (*customer.Customer, error)
	// Upsert inserts c unless (salon, phone) already exists and returns the stored row either way.
	Upsert(ctx context.Context, c *customer.Customer) (*customer.Customer, error)
	Save(ctx context.Context, c *customer.Customer) error
}

type ProfessionalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*professional.Professional, error)
	FindActiveBySalon(ctx context.Context, salonID uuid.UUID) ([]*professional.Professional, error)
	Save(ctx context.Context, p *professional.Professional) error
}

// ErrExternalEventNotFound is returned by provider adapters when the remote event no longer exists.
var ErrExternalEventNotFound = errors.New("external event not found")

// ExternalEvent is what both providers receive for an appointment.
type ExternalEvent struct {
	AppointmentID  uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	Title          string
	Description    string
	CustomerName   string
	CustomerPhone  string
	Start          time.Time
	End            time.Time
	TimeZone       string
}

type CalendarService interface {
	IsConfigured(ctx context.Context, salonID uuid.UUID) bool
	FreeBusy(ctx context.Context, salonID uuid.UUID, calendarRef string, start, end time.Time) ([]vo.DateRange, error)
	CreateEvent(ctx context.Context, salonID uuid.UUID, calendarRef string, ev ExternalEvent) (string, error)
	UpdateEvent(ctx context.Context, salonID uuid.UUID, calendarRef, eventID string, ev ExternalEvent) error
	DeleteEvent(ctx context.Context, salonID uuid.UUID, calendarRef, eventID string) error
}

type ExternalScheduler interface {
	IsConfigured(ctx context.Context, salonID uuid.UUID) bool
	BusySlots(ctx context.Context, salonID, professionalID uuid.UUID, start, end time.Time) ([]vo.DateRange, error)
	CreateAppointment(ctx context.Context, salonID uuid.UUID, ev ExternalEvent) (string, error)
	UpdateAppointment(ctx context.Context, salonID uuid.UUID, externalID string, ev ExternalEvent) error
	DeleteAppointment(ctx context.Context, salonID uuid.UUID, externalID string) error
}
