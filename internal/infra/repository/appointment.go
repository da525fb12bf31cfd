package repository

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/infra/repository/converter"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const appointmentColumns = `id, salon_id, customer_id, professional_id, service_id, starts_at, ends_at, status,
	calendar_event_id, scheduler_event_id, notes, last_sync_error, created_at, updated_at`

const appointmentColumnsQualified = `a.id, a.salon_id, a.customer_id, a.professional_id, a.service_id, a.starts_at, a.ends_at, a.status,
	a.calendar_event_id, a.scheduler_event_id, a.notes, a.last_sync_error, a.created_at, a.updated_at`

const activeAppointment = `status <> 'cancelled'`

type AppointmentRepository struct {
	db db.DBTX
}

func NewAppointmentRepository(db db.DBTX) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func scanAppointment(row pgx.Row) (*appointment.Appointment, error) {
	var r converter.AppointmentRow
	if err := row.Scan(
		&r.ID, &r.SalonID, &r.CustomerID, &r.ProfessionalID, &r.ServiceID,
		&r.StartsAt, &r.EndsAt, &r.Status,
		&r.CalendarEventID, &r.SchedulerEventID, &r.Notes, &r.LastSyncError,
		&r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return converter.AppointmentFromRow(r)
}

func (r *AppointmentRepository) list(ctx context.Context, msg, query string, args ...any) ([]*appointment.Appointment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	var out []*appointment.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(msg, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return out, nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, err := scanAppointment(r.db.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find appointment", err)
	}
	return a, nil
}

func (r *AppointmentRepository) FindByProfessionalAndDate(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
	return r.list(ctx, "failed to list professional appointments", `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE professional_id = $1 AND starts_at < $3 AND ends_at > $2 AND `+activeAppointment+`
		ORDER BY starts_at`,
		professionalID, pgconv.TimeToPgtype(from), pgconv.TimeToPgtype(to))
}

// FindConflicting uses half-open ranges, so back-to-back appointments never conflict.
func (r *AppointmentRepository) FindConflicting(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*appointment.Appointment, error) {
	return r.list(ctx, "failed to find conflicting appointments", `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE professional_id = $1 AND starts_at < $3 AND ends_at > $2 AND `+activeAppointment+`
			AND ($4::uuid IS NULL OR id <> $4::uuid)
		ORDER BY starts_at`,
		professionalID, pgconv.TimeToPgtype(start), pgconv.TimeToPgtype(end), pgconv.UUIDPtrToPgtype(excludeID))
}

func (r *AppointmentRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*appointment.Appointment, error) {
	return r.list(ctx, "failed to list customer appointments", `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE customer_id = $1
		ORDER BY starts_at`, customerID)
}

func (r *AppointmentRepository) FindUpcoming(ctx context.Context, salonID uuid.UUID, from time.Time, limit int) ([]*appointment.Appointment, error) {
	return r.list(ctx, "failed to list upcoming appointments", `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE salon_id = $1 AND starts_at >= $2 AND `+activeAppointment+`
		ORDER BY starts_at
		LIMIT NULLIF($3, 0)`, salonID, pgconv.TimeToPgtype(from), limit)
}

func (r *AppointmentRepository) FindUpcomingByPhone(ctx context.Context, salonID uuid.UUID, phone vo.Phone, from time.Time, limit int) ([]*appointment.Appointment, error) {
	return r.list(ctx, "failed to list upcoming appointments by phone", `
		SELECT `+appointmentColumnsQualified+` FROM appointments a
		JOIN customers c ON c.id = a.customer_id
		WHERE a.salon_id = $1 AND c.phone = $2 AND a.starts_at >= $3 AND a.status <> 'cancelled'
		ORDER BY a.starts_at
		LIMIT NULLIF($4, 0)`, salonID, phone.String(), pgconv.TimeToPgtype(from), limit)
}

// Save upserts the booking. The provider columns are written on insert only; afterwards
// UpdateSyncState is their sole writer, so an edit racing a sync cannot erase event ids.
// Overlaps rejected by appointments_no_overlap surface as infra.KindConflict.
func (r *AppointmentRepository) Save(ctx context.Context, a *appointment.Appointment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			professional_id = EXCLUDED.professional_id,
			service_id = EXCLUDED.service_id,
			starts_at = EXCLUDED.starts_at,
			ends_at = EXCLUDED.ends_at,
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at`,
		converter.AppointmentToArgs(a)...,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id); err != nil {
		return infra.WrapRepoErr("failed to delete appointment", err)
	}
	return nil
}

// UpdateSyncState touches only the provider columns so a concurrent edit is never overwritten.
func (r *AppointmentRepository) UpdateSyncState(ctx context.Context, id uuid.UUID, calendarEventID, schedulerEventID, lastSyncError *string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE appointments
		SET calendar_event_id = $2, scheduler_event_id = $3, last_sync_error = $4
		WHERE id = $1`,
		id,
		pgconv.StringPtrToPgtype(calendarEventID),
		pgconv.StringPtrToPgtype(schedulerEventID),
		pgconv.StringPtrToPgtype(lastSyncError),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment sync state", err)
	}
	return nil
}
