package repository

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/availability"
	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/pgconv"
	"salon-scheduler/internal/pkg/tz"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	ruleColumns     = `id, professional_id, weekday, start_minute, end_minute, is_break`
	overrideColumns = `id, salon_id, professional_id, starts_at, ends_at, reason`
)

type AvailabilityRepository struct {
	db db.DBTX
}

func NewAvailabilityRepository(db db.DBTX) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func scanRule(row pgx.Row) (*availability.Rule, error) {
	var (
		id, professionalID     uuid.UUID
		weekday                int16
		startMinute, endMinute int32
		isBreak                bool
	)
	if err := row.Scan(&id, &professionalID, &weekday, &startMinute, &endMinute, &isBreak); err != nil {
		return nil, err
	}
	start, err := vo.NewClockTime(int(startMinute)/60, int(startMinute)%60)
	if err != nil {
		return nil, err
	}
	end, err := vo.NewClockTime(int(endMinute)/60, int(endMinute)%60)
	if err != nil {
		return nil, err
	}
	return availability.ReconstructRule(id, professionalID, time.Weekday(weekday), start, end, isBreak), nil
}

func scanOverride(row pgx.Row) (*availability.Override, error) {
	var (
		id, salonID      uuid.UUID
		professionalID   pgtype.UUID
		startsAt, endsAt pgtype.Timestamptz
		reason           pgtype.Text
	)
	if err := row.Scan(&id, &salonID, &professionalID, &startsAt, &endsAt, &reason); err != nil {
		return nil, err
	}
	period, err := vo.NewDateRange(pgconv.TimeFromPgtype(startsAt), pgconv.TimeFromPgtype(endsAt))
	if err != nil {
		return nil, err
	}
	return availability.ReconstructOverride(
		id, salonID,
		pgconv.UUIDPtrFromPgtype(professionalID),
		period,
		pgconv.StringPtrFromPgtype(reason),
	), nil
}

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error), msg string) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(msg, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return out, nil
}

func (r *AvailabilityRepository) FindByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*availability.Rule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+ruleColumns+` FROM availability_rules
		WHERE professional_id = $1
		ORDER BY weekday, start_minute`, professionalID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability rules", err)
	}
	return collect(rows, scanRule, "failed to list availability rules")
}

func (r *AvailabilityRepository) FindByProfessionalAndDay(ctx context.Context, professionalID uuid.UUID, day time.Weekday) ([]*availability.Rule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+ruleColumns+` FROM availability_rules
		WHERE professional_id = $1 AND weekday = $2
		ORDER BY start_minute`, professionalID, int16(day))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability rules", err)
	}
	return collect(rows, scanRule, "failed to list availability rules")
}

func (r *AvailabilityRepository) FindOverrides(ctx context.Context, salonID uuid.UUID, from, to time.Time) ([]*availability.Override, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+overrideColumns+` FROM schedule_overrides
		WHERE salon_id = $1 AND starts_at < $3 AND ends_at > $2
		ORDER BY starts_at`, salonID, pgconv.TimeToPgtype(from), pgconv.TimeToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list schedule overrides", err)
	}
	return collect(rows, scanOverride, "failed to list schedule overrides")
}

// FindOverridesByProfessional includes the salon-wide overrides of the professional's salon.
func (r *AvailabilityRepository) FindOverridesByProfessional(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*availability.Override, error) {
	rows, err := r.db.Query(ctx, `
		SELECT o.id, o.salon_id, o.professional_id, o.starts_at, o.ends_at, o.reason
		FROM schedule_overrides o
		JOIN professionals p ON p.salon_id = o.salon_id
		WHERE p.id = $1 AND (o.professional_id IS NULL OR o.professional_id = $1)
			AND o.starts_at < $3 AND o.ends_at > $2
		ORDER BY o.starts_at`, professionalID, pgconv.TimeToPgtype(from), pgconv.TimeToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list professional overrides", err)
	}
	return collect(rows, scanOverride, "failed to list professional overrides")
}

func (r *AvailabilityRepository) FindOverrideByID(ctx context.Context, id uuid.UUID) (*availability.Override, error) {
	o, err := scanOverride(r.db.QueryRow(ctx,
		`SELECT `+overrideColumns+` FROM schedule_overrides WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find schedule override", err)
	}
	return o, nil
}

func (r *AvailabilityRepository) GenerateSlots(ctx context.Context, professionalID uuid.UUID, date time.Time, loc *time.Location, granularity time.Duration) ([]vo.TimeSlot, error) {
	day := tz.Weekday(date, loc)
	rules, err := r.FindByProfessionalAndDay(ctx, professionalID, day)
	if err != nil || len(rules) == 0 {
		return nil, err
	}
	return availability.GenerateSlots(date, loc, availability.WindowsFromRules(rules, day), granularity, &professionalID), nil
}

func (r *AvailabilityRepository) SaveRule(ctx context.Context, rule *availability.Rule) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO availability_rules (`+ruleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			weekday = EXCLUDED.weekday,
			start_minute = EXCLUDED.start_minute,
			end_minute = EXCLUDED.end_minute,
			is_break = EXCLUDED.is_break`,
		rule.ID(), rule.ProfessionalID(), int16(rule.Weekday()),
		int32(rule.Start().Minutes()), int32(rule.End().Minutes()), rule.IsBreak(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save availability rule", err)
	}
	return nil
}

func (r *AvailabilityRepository) DeleteRule(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM availability_rules WHERE id = $1`, id); err != nil {
		return infra.WrapRepoErr("failed to delete availability rule", err)
	}
	return nil
}

func (r *AvailabilityRepository) SaveOverride(ctx context.Context, o *availability.Override) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO schedule_overrides (`+overrideColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			professional_id = EXCLUDED.professional_id,
			starts_at = EXCLUDED.starts_at,
			ends_at = EXCLUDED.ends_at,
			reason = EXCLUDED.reason`,
		o.ID(), o.SalonID(), pgconv.UUIDPtrToPgtype(o.ProfessionalID()),
		pgconv.TimeToPgtype(o.Period().Start()), pgconv.TimeToPgtype(o.Period().End()),
		pgconv.StringPtrToPgtype(o.Reason()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save schedule override", err)
	}
	return nil
}

func (r *AvailabilityRepository) DeleteOverride(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM schedule_overrides WHERE id = $1`, id); err != nil {
		return infra.WrapRepoErr("failed to delete schedule override", err)
	}
	return nil
}
