package professional

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("professional name cannot be empty")
	ErrAlreadyInactive = errors.New("professional is already inactive")
)

type Professional struct {
	id         uuid.UUID
	salonID    uuid.UUID
	userID     *uuid.UUID
	name       string
	active     bool
	serviceIDs map[uuid.UUID]struct{}
	calendarID *string
	createdAt  time.Time
	updatedAt  time.Time
}

func NewProfessional(salonID uuid.UUID, name string, serviceIDs []uuid.UUID, calendarID *string, now time.Time) (*Professional, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Professional{
		id:         uuid.New(),
		salonID:    salonID,
		name:       name,
		active:     true,
		serviceIDs: toSet(serviceIDs),
		calendarID: calendarID,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructProfessional(
	id, salonID uuid.UUID,
	userID *uuid.UUID,
	name string,
	active bool,
	serviceIDs []uuid.UUID,
	calendarID *string,
	createdAt, updatedAt time.Time,
) *Professional {
	return &Professional{
		id:         id,
		salonID:    salonID,
		userID:     userID,
		name:       name,
		active:     active,
		serviceIDs: toSet(serviceIDs),
		calendarID: calendarID,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (p *Professional) ID() uuid.UUID               { return p.id }
func (p *Professional) SalonID() uuid.UUID          { return p.salonID }
func (p *Professional) UserID() *uuid.UUID          { return p.userID }
func (p *Professional) Name() string                { return p.name }
func (p *Professional) IsActive() bool              { return p.active }
func (p *Professional) ExternalCalendarID() *string { return p.calendarID }
func (p *Professional) CreatedAt() time.Time        { return p.createdAt }
func (p *Professional) UpdatedAt() time.Time        { return p.updatedAt }

// ServiceIDs is sorted for stable persistence and output.
func (p *Professional) ServiceIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.serviceIDs))
	for id := range p.serviceIDs {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) })
	return ids
}

// CanPerformService must hold before the professional is assigned to an appointment.
func (p *Professional) CanPerformService(serviceID uuid.UUID) bool {
	if !p.active {
		return false
	}
	_, ok := p.serviceIDs[serviceID]
	return ok
}

func (p *Professional) HasExternalCalendar() bool {
	return p.calendarID != nil && *p.calendarID != ""
}

func (p *Professional) Deactivate(now time.Time) (*Professional, error) {
	if !p.active {
		return nil, ErrAlreadyInactive
	}
	cp := p.clone()
	cp.active = false
	cp.updatedAt = now
	return cp, nil
}

func (p *Professional) WithServices(serviceIDs []uuid.UUID, now time.Time) *Professional {
	cp := p.clone()
	cp.serviceIDs = toSet(serviceIDs)
	cp.updatedAt = now
	return cp
}

func (p *Professional) WithExternalCalendar(calendarID *string, now time.Time) *Professional {
	cp := p.clone()
	cp.calendarID = calendarID
	cp.updatedAt = now
	return cp
}

func (p *Professional) clone() *Professional {
	cp := *p
	cp.serviceIDs = toSet(p.ServiceIDs())
	return &cp
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
