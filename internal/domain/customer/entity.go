package customer

import (
	"maps"
	"strings"
	"time"

	"salon-scheduler/internal/domain/vo"

	"github.com/google/uuid"
)

// Customer is unique per (salon, phone).
type Customer struct {
	id            uuid.UUID
	salonID       uuid.UUID
	phone         vo.Phone
	name          string
	preferences   map[string]any
	aiPreferences map[string]any
	createdAt     time.Time
	updatedAt     time.Time
}

func NewCustomer(salonID uuid.UUID, phone vo.Phone, name string, now time.Time) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Customer{
		id:          uuid.New(),
		salonID:     salonID,
		phone:       phone,
		name:        name,
		preferences: map[string]any{},
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructCustomer(
	id, salonID uuid.UUID,
	phone vo.Phone,
	name string,
	preferences, aiPreferences map[string]any,
	createdAt, updatedAt time.Time,
) *Customer {
	if preferences == nil {
		preferences = map[string]any{}
	}
	return &Customer{
		id:            id,
		salonID:       salonID,
		phone:         phone,
		name:          name,
		preferences:   preferences,
		aiPreferences: aiPreferences,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (c *Customer) ID() uuid.UUID        { return c.id }
func (c *Customer) SalonID() uuid.UUID   { return c.salonID }
func (c *Customer) Phone() vo.Phone      { return c.phone }
func (c *Customer) Name() string         { return c.name }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time { return c.updatedAt }

func (c *Customer) Preferences() map[string]any   { return maps.Clone(c.preferences) }
func (c *Customer) AIPreferences() map[string]any { return maps.Clone(c.aiPreferences) }

func (c *Customer) WithName(name string, now time.Time) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	cp := c.clone()
	cp.name = name
	cp.updatedAt = now
	return cp, nil
}

func (c *Customer) WithPreference(key string, value any, now time.Time) *Customer {
	cp := c.clone()
	cp.preferences[key] = value
	cp.updatedAt = now
	return cp
}

// WithLeadQualification stores the qualification under the AI-preferences blob, replacing any earlier one.
func (c *Customer) WithLeadQualification(q LeadQualification, now time.Time) (*Customer, error) {
	if !q.Temperature.IsValid() {
		return nil, ErrInvalidTemperature
	}
	interest := strings.TrimSpace(q.Interest)
	if interest == "" {
		return nil, ErrEmptyInterest
	}
	if q.QualifiedAt.IsZero() {
		q.QualifiedAt = now
	}

	cp := c.clone()
	if cp.aiPreferences == nil {
		cp.aiPreferences = map[string]any{}
	}
	cp.aiPreferences[leadKey] = map[string]any{
		leadTemperatureKey: string(q.Temperature),
		leadInterestKey:    interest,
		leadNotesKey:       strings.TrimSpace(q.Notes),
		leadQualifiedAtKey: q.QualifiedAt.UTC().Format(time.RFC3339),
	}
	cp.updatedAt = now
	return cp, nil
}

// LeadQualification reads back what WithLeadQualification stored, tolerating JSON-decoded blobs.
func (c *Customer) LeadQualification() (LeadQualification, bool) {
	raw, ok := c.aiPreferences[leadKey].(map[string]any)
	if !ok {
		return LeadQualification{}, false
	}
	q := LeadQualification{}
	if v, ok := raw[leadTemperatureKey].(string); ok {
		q.Temperature = LeadTemperature(v)
	}
	if v, ok := raw[leadInterestKey].(string); ok {
		q.Interest = v
	}
	if v, ok := raw[leadNotesKey].(string); ok {
		q.Notes = v
	}
	if v, ok := raw[leadQualifiedAtKey].(string); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q.QualifiedAt = t
		}
	}
	return q, q.Temperature.IsValid()
}

func (c *Customer) clone() *Customer {
	cp := *c
	cp.preferences = maps.Clone(c.preferences)
	if cp.preferences == nil {
		cp.preferences = map[string]any{}
	}
	cp.aiPreferences = maps.Clone(c.aiPreferences)
	return &cp
}
