package catalog

import (
	"errors"
	"strings"
	"time"

	"salon-scheduler/internal/domain/vo"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("service name cannot be empty")
	ErrNotBookable   = errors.New("service is not active")
	ErrAlreadyActive = errors.New("service is already active")
)

// Service is a bookable salon offering.
type Service struct {
	id        uuid.UUID
	salonID   uuid.UUID
	name      string
	duration  vo.Duration
	price     vo.PriceRange
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewService(salonID uuid.UUID, name string, durationMinutes int, price vo.PriceRange, now time.Time) (*Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	duration, err := vo.NewDuration(durationMinutes)
	if err != nil {
		return nil, err
	}
	return &Service{
		id:        uuid.New(),
		salonID:   salonID,
		name:      name,
		duration:  duration,
		price:     price,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructService(
	id, salonID uuid.UUID,
	name string,
	duration vo.Duration,
	price vo.PriceRange,
	active bool,
	createdAt, updatedAt time.Time,
) *Service {
	return &Service{
		id:        id,
		salonID:   salonID,
		name:      name,
		duration:  duration,
		price:     price,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Service) ID() uuid.UUID         { return s.id }
func (s *Service) SalonID() uuid.UUID    { return s.salonID }
func (s *Service) Name() string          { return s.name }
func (s *Service) Duration() vo.Duration { return s.duration }
func (s *Service) Price() vo.PriceRange  { return s.price }
func (s *Service) IsActive() bool        { return s.active }
func (s *Service) CreatedAt() time.Time  { return s.createdAt }
func (s *Service) UpdatedAt() time.Time  { return s.updatedAt }

// IsBookable: only active services may be booked.
func (s *Service) IsBookable() bool {
	return s.active
}

func (s *Service) EnsureBookable() error {
	if !s.active {
		return ErrNotBookable
	}
	return nil
}

func (s *Service) Deactivate(now time.Time) *Service {
	cp := *s
	cp.active = false
	cp.updatedAt = now
	return &cp
}

func (s *Service) Activate(now time.Time) (*Service, error) {
	if s.active {
		return nil, ErrAlreadyActive
	}
	cp := *s
	cp.active = true
	cp.updatedAt = now
	return &cp, nil
}

func (s *Service) WithDuration(minutes int, now time.Time) (*Service, error) {
	d, err := vo.NewDuration(minutes)
	if err != nil {
		return nil, err
	}
	cp := *s
	cp.duration = d
	cp.updatedAt = now
	return &cp, nil
}
