package converter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"salon-scheduler/internal/domain/salon"

	"github.com/google/uuid"
)

type SalonRow struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Name         string
	Timezone     string
	Plan         string
	WorkingHours []byte
	Settings     []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type hoursJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WorkingHoursToJSON keys the week by weekday number, Sunday = "0".
func WorkingHoursToJSON(hours map[time.Weekday]salon.WorkingHours) ([]byte, error) {
	out := make(map[string]hoursJSON, len(hours))
	for d, wh := range hours {
		out[strconv.Itoa(int(d))] = hoursJSON{Start: wh.Start.String(), End: wh.End.String()}
	}
	return json.Marshal(out)
}

func WorkingHoursFromJSON(raw []byte) (map[time.Weekday]salon.WorkingHours, error) {
	hours := map[time.Weekday]salon.WorkingHours{}
	if len(raw) == 0 {
		return hours, nil
	}
	var in map[string]hoursJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("decode working hours: %w", err)
	}
	for key, h := range in {
		d, err := strconv.Atoi(key)
		if err != nil || d < 0 || d > 6 {
			return nil, fmt.Errorf("invalid weekday key %q", key)
		}
		wh, err := salon.NewWorkingHours(h.Start, h.End)
		if err != nil {
			return nil, fmt.Errorf("weekday %d: %w", d, err)
		}
		hours[time.Weekday(d)] = wh
	}
	return hours, nil
}

func SalonFromRow(row SalonRow) (*salon.Salon, error) {
	hours, err := WorkingHoursFromJSON(row.WorkingHours)
	if err != nil {
		return nil, err
	}
	settings, err := MapFromJSON(row.Settings)
	if err != nil {
		return nil, err
	}
	return salon.ReconstructSalon(
		row.ID, row.OwnerID,
		row.Name, row.Timezone,
		hours, settings,
		salon.Plan(row.Plan),
		row.CreatedAt.UTC(), row.UpdatedAt.UTC(),
	), nil
}

// MapFromJSON decodes a jsonb object; SQL NULL and JSON null both yield nil.
func MapFromJSON(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode json object: %w", err)
	}
	return m, nil
}

// MapToJSON encodes nil as an empty object.
func MapToJSON(m map[string]any) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}
