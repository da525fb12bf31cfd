package appointment

import (
	"strings"
	"time"

	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/pkg/patch"

	"github.com/google/uuid"
)

// Appointment snapshots are never mutated; transitions return a new value.
type Appointment struct {
	id               uuid.UUID
	salonID          uuid.UUID
	customerID       uuid.UUID
	professionalID   uuid.UUID
	serviceID        uuid.UUID
	period           vo.DateRange
	status           Status
	calendarEventID  *string
	schedulerEventID *string
	notes            string
	lastSyncError    *string
	createdAt        time.Time
	updatedAt        time.Time
}

type NewParams struct {
	SalonID        uuid.UUID
	CustomerID     uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	Start          time.Time
	Duration       vo.Duration
	Notes          string
}

func NewAppointment(p NewParams, now time.Time) (*Appointment, error) {
	if !p.Start.After(now) {
		return nil, ErrStartInPast
	}
	period, err := vo.NewDateRange(p.Start, p.Start.Add(p.Duration.Std()))
	if err != nil {
		return nil, err
	}

	return &Appointment{
		id:             uuid.New(),
		salonID:        p.SalonID,
		customerID:     p.CustomerID,
		professionalID: p.ProfessionalID,
		serviceID:      p.ServiceID,
		period:         period,
		status:         StatusPending,
		notes:          strings.TrimSpace(p.Notes),
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructAppointment(
	id, salonID, customerID, professionalID, serviceID uuid.UUID,
	period vo.DateRange,
	status Status,
	calendarEventID, schedulerEventID *string,
	notes string,
	lastSyncError *string,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:               id,
		salonID:          salonID,
		customerID:       customerID,
		professionalID:   professionalID,
		serviceID:        serviceID,
		period:           period,
		status:           status,
		calendarEventID:  calendarEventID,
		schedulerEventID: schedulerEventID,
		notes:            notes,
		lastSyncError:    lastSyncError,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (a *Appointment) ID() uuid.UUID             { return a.id }
func (a *Appointment) SalonID() uuid.UUID        { return a.salonID }
func (a *Appointment) CustomerID() uuid.UUID     { return a.customerID }
func (a *Appointment) ProfessionalID() uuid.UUID { return a.professionalID }
func (a *Appointment) ServiceID() uuid.UUID      { return a.serviceID }
func (a *Appointment) Period() vo.DateRange      { return a.period }
func (a *Appointment) Start() time.Time          { return a.period.Start() }
func (a *Appointment) End() time.Time            { return a.period.End() }
func (a *Appointment) Status() Status            { return a.status }
func (a *Appointment) CalendarEventID() *string  { return a.calendarEventID }
func (a *Appointment) SchedulerEventID() *string { return a.schedulerEventID }
func (a *Appointment) Notes() string             { return a.notes }
func (a *Appointment) LastSyncError() *string    { return a.lastSyncError }
func (a *Appointment) CreatedAt() time.Time      { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time      { return a.updatedAt }

// IsActive appointments take part in conflict detection.
func (a *Appointment) IsActive() bool {
	return a.status != StatusCancelled
}

func (a *Appointment) CanBeModified(now time.Time) bool {
	return !a.status.IsTerminal() && a.period.Start().After(now)
}

// Changes carries the optional fields of an update; nil means unchanged.
type Changes struct {
	ProfessionalID *uuid.UUID
	ServiceID      *uuid.UUID
	Duration       *vo.Duration
	Start          *time.Time
	Notes          *string
}

func (a *Appointment) Apply(ch Changes, now time.Time) (*Appointment, error) {
	if !a.CanBeModified(now) {
		return nil, ErrNotModifiable
	}

	start := patch.Coalesce(ch.Start, a.period.Start())
	if ch.Start != nil && !start.After(now) {
		return nil, ErrStartInPast
	}
	length := a.period.Duration()
	if ch.Duration != nil {
		length = ch.Duration.Std()
	}
	period, err := vo.NewDateRange(start, start.Add(length))
	if err != nil {
		return nil, err
	}

	cp := *a
	cp.period = period
	cp.professionalID = patch.Coalesce(ch.ProfessionalID, a.professionalID)
	cp.serviceID = patch.Coalesce(ch.ServiceID, a.serviceID)
	if ch.Notes != nil {
		cp.notes = strings.TrimSpace(*ch.Notes)
	}
	cp.updatedAt = now
	return &cp, nil
}

// NeedsConflictCheck reports whether next occupies a different professional or time window than a.
func (a *Appointment) NeedsConflictCheck(next *Appointment) bool {
	return a.professionalID != next.professionalID || !a.period.Equals(next.period)
}

func (a *Appointment) Cancel(now time.Time) (*Appointment, error) {
	if a.status.IsTerminal() {
		return nil, ErrNotModifiable
	}
	return a.withStatus(StatusCancelled, now), nil
}

// WithSyncState records the outcome of an external sync; nil ids clear the stored reference.
func (a *Appointment) WithSyncState(calendarEventID, schedulerEventID, lastSyncError *string) *Appointment {
	cp := *a
	cp.calendarEventID = calendarEventID
	cp.schedulerEventID = schedulerEventID
	cp.lastSyncError = lastSyncError
	return &cp
}

func (a *Appointment) withStatus(s Status, now time.Time) *Appointment {
	cp := *a
	cp.status = s
	cp.updatedAt = now
	return &cp
}
