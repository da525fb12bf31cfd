package salon

import (
	"maps"
	"strings"
	"time"

	"salon-scheduler/internal/pkg/tz"

	"github.com/google/uuid"
)

type Salon struct {
	id           uuid.UUID
	ownerID      uuid.UUID
	name         string
	timezone     string
	workingHours map[time.Weekday]WorkingHours
	settings     map[string]any
	plan         Plan
	createdAt    time.Time
	updatedAt    time.Time
}

func NewSalon(
	ownerID uuid.UUID,
	name string,
	timezone string,
	workingHours map[time.Weekday]WorkingHours,
	now time.Time,
) (*Salon, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	for _, wh := range workingHours {
		if !wh.Start.Before(wh.End) {
			return nil, ErrInvalidWorkingHours
		}
	}
	if timezone == "" {
		timezone = tz.DefaultZone
	}

	return &Salon{
		id:           uuid.New(),
		ownerID:      ownerID,
		name:         name,
		timezone:     timezone,
		workingHours: maps.Clone(workingHours),
		settings:     map[string]any{},
		plan:         PlanFree,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructSalon(
	id, ownerID uuid.UUID,
	name, timezone string,
	workingHours map[time.Weekday]WorkingHours,
	settings map[string]any,
	plan Plan,
	createdAt, updatedAt time.Time,
) *Salon {
	if settings == nil {
		settings = map[string]any{}
	}
	return &Salon{
		id:           id,
		ownerID:      ownerID,
		name:         name,
		timezone:     timezone,
		workingHours: workingHours,
		settings:     settings,
		plan:         plan,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (s *Salon) ID() uuid.UUID            { return s.id }
func (s *Salon) OwnerID() uuid.UUID       { return s.ownerID }
func (s *Salon) Name() string             { return s.name }
func (s *Salon) Timezone() string         { return s.timezone }
func (s *Salon) Plan() Plan               { return s.plan }
func (s *Salon) CreatedAt() time.Time     { return s.createdAt }
func (s *Salon) UpdatedAt() time.Time     { return s.updatedAt }
func (s *Salon) Location() *time.Location { return tz.Location(s.timezone) }

func (s *Salon) WorkingHours() map[time.Weekday]WorkingHours {
	return maps.Clone(s.workingHours)
}

func (s *Salon) Settings() map[string]any {
	return maps.Clone(s.settings)
}

// WorkingHoursFor reports false when the salon is closed on that weekday.
func (s *Salon) WorkingHoursFor(day time.Weekday) (WorkingHours, bool) {
	wh, ok := s.workingHours[day]
	return wh, ok
}

func (s *Salon) WithWorkingHours(day time.Weekday, wh WorkingHours, now time.Time) (*Salon, error) {
	if !wh.Start.Before(wh.End) {
		return nil, ErrInvalidWorkingHours
	}
	cp := s.clone()
	cp.workingHours[day] = wh
	cp.updatedAt = now
	return cp, nil
}

func (s *Salon) WithoutWorkingHours(day time.Weekday, now time.Time) *Salon {
	cp := s.clone()
	delete(cp.workingHours, day)
	cp.updatedAt = now
	return cp
}

func (s *Salon) WithPlan(plan Plan, now time.Time) (*Salon, error) {
	if !plan.IsValid() {
		return nil, ErrInvalidPlan
	}
	cp := s.clone()
	cp.plan = plan
	cp.updatedAt = now
	return cp, nil
}

func (s *Salon) clone() *Salon {
	cp := *s
	cp.workingHours = maps.Clone(s.workingHours)
	if cp.workingHours == nil {
		cp.workingHours = map[time.Weekday]WorkingHours{}
	}
	cp.settings = maps.Clone(s.settings)
	return &cp
}
