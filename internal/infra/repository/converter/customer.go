package converter

import (
	"time"

	"salon-scheduler/internal/domain/customer"
	"salon-scheduler/internal/domain/vo"

	"github.com/google/uuid"
)

type CustomerRow struct {
	ID            uuid.UUID
	SalonID       uuid.UUID
	Phone         string
	Name          string
	Preferences   []byte
	AIPreferences []byte
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func CustomerFromRow(row CustomerRow) (*customer.Customer, error) {
	prefs, err := MapFromJSON(row.Preferences)
	if err != nil {
		return nil, err
	}
	ai, err := MapFromJSON(row.AIPreferences)
	if err != nil {
		return nil, err
	}
	return customer.ReconstructCustomer(
		row.ID, row.SalonID,
		vo.ReconstructPhone(row.Phone),
		row.Name,
		prefs, ai,
		row.CreatedAt.UTC(), row.UpdatedAt.UTC(),
	), nil
}

// AIPreferencesToJSON keeps SQL NULL for customers without an AI blob.
func AIPreferencesToJSON(m map[string]any) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return MapToJSON(m)
}
