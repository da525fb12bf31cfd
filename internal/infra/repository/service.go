package repository

import (
	"context"

	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/infra/repository/converter"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const serviceColumns = `id, salon_id, name, duration_minutes, price_min_cents, price_max_cents, active, created_at, updated_at`

type ServiceRepository struct {
	db db.DBTX
}

func NewServiceRepository(db db.DBTX) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func scanService(row pgx.Row) (*catalog.Service, error) {
	var r converter.ServiceRow
	if err := row.Scan(
		&r.ID, &r.SalonID, &r.Name, &r.DurationMinutes,
		&r.PriceMinCents, &r.PriceMaxCents, &r.Active, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return converter.ServiceFromRow(r)
}

func (r *ServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	svc, err := scanService(r.db.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find service", err)
	}
	return svc, nil
}

func (r *ServiceRepository) FindActiveBySalon(ctx context.Context, salonID uuid.UUID) ([]*catalog.Service, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE salon_id = $1 AND active ORDER BY name`, salonID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	defer rows.Close()

	var out []*catalog.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan service", err)
		}
		out = append(out, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	return out, nil
}

func (r *ServiceRepository) Save(ctx context.Context, s *catalog.Service) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO services (`+serviceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			duration_minutes = EXCLUDED.duration_minutes,
			price_min_cents = EXCLUDED.price_min_cents,
			price_max_cents = EXCLUDED.price_max_cents,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at`,
		s.ID(), s.SalonID(), s.Name(), int32(s.Duration().Minutes()),
		s.Price().Min().Cents(), s.Price().Max().Cents(), s.IsActive(),
		s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save service", err)
	}
	return nil
}
