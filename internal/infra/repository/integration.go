package repository

import (
	"context"
	"encoding/json"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	ProviderCalendar  = "calendar"
	ProviderScheduler = "scheduler"
)

// IntegrationSettings holds a salon's credentials for one provider. Config is decoded by the adapter.
type IntegrationSettings struct {
	SalonID  uuid.UUID
	Provider string
	Enabled  bool
	Config   json.RawMessage
}

type IntegrationRepository struct {
	db db.DBTX
}

func NewIntegrationRepository(db db.DBTX) *IntegrationRepository {
	return &IntegrationRepository{db: db}
}

// FindSettings returns (nil, nil) when the salon has no row for the provider.
func (r *IntegrationRepository) FindSettings(ctx context.Context, salonID uuid.UUID, provider string) (*IntegrationSettings, error) {
	s := IntegrationSettings{SalonID: salonID, Provider: provider}
	var raw []byte
	err := r.db.QueryRow(ctx, `
		SELECT enabled, config FROM salon_integrations
		WHERE salon_id = $1 AND provider = $2`, salonID, provider).Scan(&s.Enabled, &raw)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find integration settings", err)
	}
	s.Config = raw
	return &s, nil
}

func (r *IntegrationRepository) SaveSettings(ctx context.Context, s IntegrationSettings) error {
	cfg := []byte(s.Config)
	if len(cfg) == 0 {
		cfg = []byte("{}")
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO salon_integrations (salon_id, provider, enabled, config)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (salon_id, provider) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			config = EXCLUDED.config`,
		s.SalonID, s.Provider, s.Enabled, cfg,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save integration settings", err)
	}
	return nil
}
