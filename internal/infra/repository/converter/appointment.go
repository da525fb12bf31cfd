package converter

import (
	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AppointmentRow struct {
	ID               uuid.UUID
	SalonID          uuid.UUID
	CustomerID       uuid.UUID
	ProfessionalID   uuid.UUID
	ServiceID        uuid.UUID
	StartsAt         pgtype.Timestamptz
	EndsAt           pgtype.Timestamptz
	Status           string
	CalendarEventID  pgtype.Text
	SchedulerEventID pgtype.Text
	Notes            string
	LastSyncError    pgtype.Text
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

// AppointmentFromRow restores instants in UTC regardless of the session time zone.
func AppointmentFromRow(row AppointmentRow) (*appointment.Appointment, error) {
	period, err := vo.NewDateRange(pgconv.TimeFromPgtype(row.StartsAt), pgconv.TimeFromPgtype(row.EndsAt))
	if err != nil {
		return nil, err
	}
	status := appointment.Status(row.Status)
	if !status.IsValid() {
		return nil, appointment.ErrInvalidStatus
	}
	return appointment.ReconstructAppointment(
		row.ID, row.SalonID, row.CustomerID, row.ProfessionalID, row.ServiceID,
		period,
		status,
		pgconv.StringPtrFromPgtype(row.CalendarEventID),
		pgconv.StringPtrFromPgtype(row.SchedulerEventID),
		row.Notes,
		pgconv.StringPtrFromPgtype(row.LastSyncError),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

// AppointmentToArgs orders the columns as the appointment upsert expects them.
func AppointmentToArgs(a *appointment.Appointment) []any {
	return []any{
		a.ID(),
		a.SalonID(),
		a.CustomerID(),
		a.ProfessionalID(),
		a.ServiceID(),
		pgconv.TimeToPgtype(a.Start()),
		pgconv.TimeToPgtype(a.End()),
		a.Status().String(),
		pgconv.StringPtrToPgtype(a.CalendarEventID()),
		pgconv.StringPtrToPgtype(a.SchedulerEventID()),
		a.Notes(),
		pgconv.StringPtrToPgtype(a.LastSyncError()),
		pgconv.TimeToPgtype(a.CreatedAt()),
		pgconv.TimeToPgtype(a.UpdatedAt()),
	}
}

