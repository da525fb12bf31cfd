package repository

import (
	"context"

	"salon-scheduler/internal/domain/customer"
	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/infra/repository/converter"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const customerColumns = `id, salon_id, phone, name, preferences, ai_preferences, created_at, updated_at`

type CustomerRepository struct {
	db db.DBTX
}

func NewCustomerRepository(db db.DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var r converter.CustomerRow
	if err := row.Scan(
		&r.ID, &r.SalonID, &r.Phone, &r.Name, &r.Preferences, &r.AIPreferences,
		&r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return converter.CustomerFromRow(r)
}

func (r *CustomerRepository) findOne(ctx context.Context, msg, query string, args ...any) (*customer.Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr(msg, err)
	}
	return c, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	return r.findOne(ctx, "failed to find customer",
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

func (r *CustomerRepository) FindByPhone(ctx context.Context, salonID uuid.UUID, phone vo.Phone) (*customer.Customer, error) {
	return r.findOne(ctx, "failed to find customer by phone",
		`SELECT `+customerColumns+` FROM customers WHERE salon_id = $1 AND phone = $2`, salonID, phone.String())
}

// Upsert never overwrites an existing customer; the stored row wins.
func (r *CustomerRepository) Upsert(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	args, err := customerArgs(c)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to encode customer", err)
	}
	if _, err := r.db.Exec(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (salon_id, phone) DO NOTHING`, args...); err != nil {
		return nil, infra.WrapRepoErr("failed to upsert customer", err)
	}
	stored, err := r.FindByPhone(ctx, c.SalonID(), c.Phone())
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, infra.WrapRepoErr("customer vanished after upsert", pgx.ErrNoRows)
	}
	return stored, nil
}

func (r *CustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	args, err := customerArgs(c)
	if err != nil {
		return infra.WrapRepoErr("failed to encode customer", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			preferences = EXCLUDED.preferences,
			ai_preferences = EXCLUDED.ai_preferences,
			updated_at = EXCLUDED.updated_at`, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to save customer", err)
	}
	return nil
}

func customerArgs(c *customer.Customer) ([]any, error) {
	prefs, err := converter.MapToJSON(c.Preferences())
	if err != nil {
		return nil, err
	}
	ai, err := converter.AIPreferencesToJSON(c.AIPreferences())
	if err != nil {
		return nil, err
	}
	return []any{
		c.ID(), c.SalonID(), c.Phone().String(), c.Name(), prefs, ai, c.CreatedAt(), c.UpdatedAt(),
	}, nil
}
