package repository

import (
	"context"

	"salon-scheduler/internal/domain/salon"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/infra/repository/converter"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const salonColumns = `id, owner_id, name, timezone, plan, working_hours, settings, created_at, updated_at`

type SalonRepository struct {
	db db.DBTX
}

func NewSalonRepository(db db.DBTX) *SalonRepository {
	return &SalonRepository{db: db}
}

func (r *SalonRepository) FindByID(ctx context.Context, id uuid.UUID) (*salon.Salon, error) {
	var row converter.SalonRow
	err := r.db.QueryRow(ctx, `SELECT `+salonColumns+` FROM salons WHERE id = $1`, id).Scan(
		&row.ID, &row.OwnerID, &row.Name, &row.Timezone, &row.Plan,
		&row.WorkingHours, &row.Settings, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find salon", err)
	}
	s, err := converter.SalonFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode salon", err)
	}
	return s, nil
}

func (r *SalonRepository) Save(ctx context.Context, s *salon.Salon) error {
	hours, err := converter.WorkingHoursToJSON(s.WorkingHours())
	if err != nil {
		return infra.WrapRepoErr("failed to encode working hours", err)
	}
	settings, err := converter.MapToJSON(s.Settings())
	if err != nil {
		return infra.WrapRepoErr("failed to encode salon settings", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO salons (`+salonColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			timezone = EXCLUDED.timezone,
			plan = EXCLUDED.plan,
			working_hours = EXCLUDED.working_hours,
			settings = EXCLUDED.settings,
			updated_at = EXCLUDED.updated_at`,
		s.ID(), s.OwnerID(), s.Name(), s.Timezone(), string(s.Plan()),
		hours, settings, s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save salon", err)
	}
	return nil
}
