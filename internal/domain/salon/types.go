package salon

import (
	"errors"

	"salon-scheduler/internal/domain/vo"
)

var (
	ErrEmptyName           = errors.New("salon name cannot be empty")
	ErrInvalidWorkingHours = errors.New("working hours end must be after start")
	ErrInvalidPlan         = errors.New("invalid subscription plan")
)

type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanPro, PlanEnterprise:
		return true
	default:
		return false
	}
}

// WorkingHours is the single opening interval of a weekday.
type WorkingHours struct {
	Start vo.ClockTime
	End   vo.ClockTime
}

func NewWorkingHours(start, end string) (WorkingHours, error) {
	s, err := vo.ParseClockTime(start)
	if err != nil {
		return WorkingHours{}, err
	}
	e, err := vo.ParseClockTime(end)
	if err != nil {
		return WorkingHours{}, err
	}
	if !s.Before(e) {
		return WorkingHours{}, ErrInvalidWorkingHours
	}
	return WorkingHours{Start: s, End: e}, nil
}
