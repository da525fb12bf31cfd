package availability

import (
	"errors"
	"strings"
	"time"

	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/pkg/ptr"

	"github.com/google/uuid"
)

var (
	ErrInvalidWeekday = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidWindow  = errors.New("rule end must be after start")
)

// Window is a wall-clock interval on one weekday, either working time or a break.
type Window struct {
	Start   vo.ClockTime
	End     vo.ClockTime
	IsBreak bool
}

// Rule is a recurring weekly work or break block of one professional.
type Rule struct {
	id             uuid.UUID
	professionalID uuid.UUID
	weekday        time.Weekday
	window         Window
}

func NewRule(professionalID uuid.UUID, weekday time.Weekday, start, end vo.ClockTime, isBreak bool) (*Rule, error) {
	if weekday < time.Sunday || weekday > time.Saturday {
		return nil, ErrInvalidWeekday
	}
	if !start.Before(end) {
		return nil, ErrInvalidWindow
	}
	return &Rule{
		id:             uuid.New(),
		professionalID: professionalID,
		weekday:        weekday,
		window:         Window{Start: start, End: end, IsBreak: isBreak},
	}, nil
}

func ReconstructRule(id, professionalID uuid.UUID, weekday time.Weekday, start, end vo.ClockTime, isBreak bool) *Rule {
	return &Rule{
		id:             id,
		professionalID: professionalID,
		weekday:        weekday,
		window:         Window{Start: start, End: end, IsBreak: isBreak},
	}
}

func (r *Rule) ID() uuid.UUID             { return r.id }
func (r *Rule) ProfessionalID() uuid.UUID { return r.professionalID }
func (r *Rule) Weekday() time.Weekday     { return r.weekday }
func (r *Rule) Start() vo.ClockTime       { return r.window.Start }
func (r *Rule) End() vo.ClockTime         { return r.window.End }
func (r *Rule) IsBreak() bool             { return r.window.IsBreak }
func (r *Rule) Window() Window            { return r.window }

// Override removes availability inside its period, for one professional or the whole salon.
type Override struct {
	id             uuid.UUID
	salonID        uuid.UUID
	professionalID *uuid.UUID
	period         vo.DateRange
	reason         *string
}

func NewOverride(salonID uuid.UUID, professionalID *uuid.UUID, period vo.DateRange, reason string) *Override {
	return &Override{
		id:             uuid.New(),
		salonID:        salonID,
		professionalID: professionalID,
		period:         period,
		reason:         ptr.NonEmpty(strings.TrimSpace(reason)),
	}
}

func ReconstructOverride(id, salonID uuid.UUID, professionalID *uuid.UUID, period vo.DateRange, reason *string) *Override {
	return &Override{
		id:             id,
		salonID:        salonID,
		professionalID: professionalID,
		period:         period,
		reason:         reason,
	}
}

func (o *Override) ID() uuid.UUID              { return o.id }
func (o *Override) SalonID() uuid.UUID         { return o.salonID }
func (o *Override) ProfessionalID() *uuid.UUID { return o.professionalID }
func (o *Override) Period() vo.DateRange       { return o.period }
func (o *Override) Reason() *string            { return o.reason }
func (o *Override) IsSalonWide() bool          { return o.professionalID == nil }

func (o *Override) AppliesTo(professionalID uuid.UUID) bool {
	return o.professionalID == nil || *o.professionalID == professionalID
}
