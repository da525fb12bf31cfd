package converter

import (
	"time"

	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ServiceRow struct {
	ID              uuid.UUID
	SalonID         uuid.UUID
	Name            string
	DurationMinutes int32
	PriceMinCents   int64
	PriceMaxCents   int64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func ServiceFromRow(row ServiceRow) (*catalog.Service, error) {
	d, err := vo.NewDuration(int(row.DurationMinutes))
	if err != nil {
		return nil, err
	}
	minPrice, err := vo.NewMoney(row.PriceMinCents)
	if err != nil {
		return nil, err
	}
	maxPrice, err := vo.NewMoney(row.PriceMaxCents)
	if err != nil {
		return nil, err
	}
	price, err := vo.NewPriceRange(minPrice, maxPrice)
	if err != nil {
		return nil, err
	}
	return catalog.ReconstructService(
		row.ID, row.SalonID,
		row.Name, d, price, row.Active,
		row.CreatedAt.UTC(), row.UpdatedAt.UTC(),
	), nil
}

type ProfessionalRow struct {
	ID         uuid.UUID
	SalonID    uuid.UUID
	UserID     pgtype.UUID
	Name       string
	Active     bool
	CalendarID pgtype.Text
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ServiceIDs []uuid.UUID
}

func ProfessionalFromRow(row ProfessionalRow) *professional.Professional {
	return professional.ReconstructProfessional(
		row.ID, row.SalonID,
		pgconv.UUIDPtrFromPgtype(row.UserID),
		row.Name, row.Active,
		row.ServiceIDs,
		pgconv.StringPtrFromPgtype(row.CalendarID),
		row.CreatedAt.UTC(), row.UpdatedAt.UTC(),
	)
}
