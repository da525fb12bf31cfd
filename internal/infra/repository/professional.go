package repository

import (
	"context"

	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/infra/repository/converter"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const professionalSelect = `
	SELECT p.id, p.salon_id, p.user_id, p.name, p.active, p.calendar_id, p.created_at, p.updated_at,
		COALESCE(array_agg(ps.service_id ORDER BY ps.service_id) FILTER (WHERE ps.service_id IS NOT NULL), '{}')
	FROM professionals p
	LEFT JOIN professional_services ps ON ps.professional_id = p.id`

type ProfessionalRepository struct {
	db db.DBTX
}

func NewProfessionalRepository(db db.DBTX) *ProfessionalRepository {
	return &ProfessionalRepository{db: db}
}

func scanProfessional(row pgx.Row) (*professional.Professional, error) {
	var r converter.ProfessionalRow
	if err := row.Scan(
		&r.ID, &r.SalonID, &r.UserID, &r.Name, &r.Active, &r.CalendarID,
		&r.CreatedAt, &r.UpdatedAt, &r.ServiceIDs,
	); err != nil {
		return nil, err
	}
	return converter.ProfessionalFromRow(r), nil
}

func (r *ProfessionalRepository) FindByID(ctx context.Context, id uuid.UUID) (*professional.Professional, error) {
	p, err := scanProfessional(r.db.QueryRow(ctx, professionalSelect+`
	WHERE p.id = $1
	GROUP BY p.id`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find professional", err)
	}
	return p, nil
}

func (r *ProfessionalRepository) FindActiveBySalon(ctx context.Context, salonID uuid.UUID) ([]*professional.Professional, error) {
	rows, err := r.db.Query(ctx, professionalSelect+`
	WHERE p.salon_id = $1 AND p.active
	GROUP BY p.id
	ORDER BY p.name`, salonID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list professionals", err)
	}
	defer rows.Close()

	var out []*professional.Professional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan professional", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list professionals", err)
	}
	return out, nil
}

// Save replaces the professional's service links; callers wanting atomicity run it inside a transaction.
func (r *ProfessionalRepository) Save(ctx context.Context, p *professional.Professional) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO professionals (id, salon_id, user_id, name, active, calendar_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			name = EXCLUDED.name,
			active = EXCLUDED.active,
			calendar_id = EXCLUDED.calendar_id,
			updated_at = EXCLUDED.updated_at`,
		p.ID(), p.SalonID(), pgconv.UUIDPtrToPgtype(p.UserID()), p.Name(), p.IsActive(),
		pgconv.StringPtrToPgtype(p.ExternalCalendarID()), p.CreatedAt(), p.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save professional", err)
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM professional_services WHERE professional_id = $1`, p.ID()); err != nil {
		return infra.WrapRepoErr("failed to reset professional services", err)
	}
	ids := p.ServiceIDs()
	if len(ids) == 0 {
		return nil
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO professional_services (professional_id, service_id)
		SELECT $1, unnest($2::uuid[])`, p.ID(), ids)
	if err != nil {
		return infra.WrapRepoErr("failed to link professional services", err)
	}
	return nil
}
