package queries

import (
	"context"
	"log/slog"
	"time"

	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/tz"
	"salon-scheduler/internal/usecase/availability"
	"salon-scheduler/internal/usecase/readmodel"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityRequest struct {
	SalonID uuid.UUID
	// Date is a salon-local YYYY-MM-DD.
	Date           string
	ProfessionalID *uuid.UUID
	ServiceID      *uuid.UUID
	// DurationMinutes overrides the service duration.
	DurationMinutes *int
	// Time (HH:mm) asks whether that exact start is bookable; CheckAvailability only.
	Time *string
}

type AvailabilityQueries interface {
	CheckAvailability(ctx context.Context, req AvailabilityRequest) (shared.Result[readmodel.AvailabilityRM], error)
	GetAvailableSlots(ctx context.Context, req AvailabilityRequest) (shared.Result[readmodel.AvailabilityRM], error)
}

type availabilityQueriesImpl struct {
	salons          shared.SalonRepository
	services        shared.ServiceRepository
	availability    *availability.Service
	defaultDuration time.Duration
	logger          *slog.Logger
}

func NewAvailabilityQueries(
	salons shared.SalonRepository,
	services shared.ServiceRepository,
	svc *availability.Service,
	logger *slog.Logger,
	cfg config.SchedulingConfig,
) AvailabilityQueries {
	d := cfg.DefaultServiceDuration
	if d <= 0 {
		d = 30 * time.Minute
	}
	return &availabilityQueriesImpl{
		salons:          salons,
		services:        services,
		availability:    svc,
		defaultDuration: d,
		logger:          logger,
	}
}

func (q *availabilityQueriesImpl) CheckAvailability(ctx context.Context, req AvailabilityRequest) (shared.Result[readmodel.AvailabilityRM], error) {
	return q.resolve(ctx, req, false)
}

func (q *availabilityQueriesImpl) GetAvailableSlots(ctx context.Context, req AvailabilityRequest) (shared.Result[readmodel.AvailabilityRM], error) {
	req.Time = nil
	return q.resolve(ctx, req, true)
}

func (q *availabilityQueriesImpl) resolve(ctx context.Context, req AvailabilityRequest, onlyAvailable bool) (shared.Result[readmodel.AvailabilityRM], error) {
	sl, err := q.salons.FindByID(ctx, req.SalonID)
	if err != nil {
		return shared.Result[readmodel.AvailabilityRM]{}, shared.StoreFailure(err, "find salon")
	}
	if sl == nil {
		return shared.Fail[readmodel.AvailabilityRM](shared.NotFound("salon")), nil
	}
	loc := sl.Location()

	date, err := tz.ParseLocalDate(req.Date, loc)
	if err != nil {
		return shared.Fail[readmodel.AvailabilityRM](shared.Validation("date must be YYYY-MM-DD", err)), nil
	}
	var requested *vo.ClockTime
	if req.Time != nil {
		c, err := vo.ParseClockTime(*req.Time)
		if err != nil {
			return shared.Fail[readmodel.AvailabilityRM](shared.Validation("time must be HH:mm", err)), nil
		}
		requested = &c
	}

	d, err := q.duration(ctx, sl.ID(), req)
	if err != nil {
		return shared.FromError[readmodel.AvailabilityRM](err)
	}

	var slots []vo.TimeSlot
	if req.ProfessionalID != nil {
		slots, err = q.availability.CalculateAvailability(ctx, availability.Request{
			SalonID:         sl.ID(),
			ProfessionalID:  *req.ProfessionalID,
			Date:            date,
			ServiceDuration: d,
		})
	} else {
		slots, err = q.availability.SalonSlots(ctx, availability.SalonRequest{
			SalonID:         sl.ID(),
			Date:            date,
			ServiceDuration: d,
		})
	}
	if err != nil {
		return shared.FromError[readmodel.AvailabilityRM](err)
	}

	rm := readmodel.NewAvailabilityRM(date, loc, req.ProfessionalID, d, slots, onlyAvailable)
	q.logger.DebugContext(ctx, "availability resolved",
		"salon_id", sl.ID(),
		"date", rm.DateISO,
		"duration_minutes", rm.DurationMinutes,
		"available", rm.TotalAvailable)
	if requested == nil {
		return shared.Ok(rm), nil
	}

	start := tz.AtMinute(date, requested.Minutes(), loc)
	var ok bool
	if req.ProfessionalID != nil {
		ok, err = q.availability.IsSlotAvailable(ctx, availability.SlotCheck{
			SalonID:        sl.ID(),
			ProfessionalID: *req.ProfessionalID,
			Start:          start,
			End:            start.Add(d),
		})
		if err != nil {
			return shared.FromError[readmodel.AvailabilityRM](err)
		}
	} else {
		ok = startsAvailable(slots, start)
	}
	rm.RequestedSlotAvailable = &ok
	return shared.Ok(rm), nil
}

// duration prefers the explicit override, then the service, then the configured default.
func (q *availabilityQueriesImpl) duration(ctx context.Context, salonID uuid.UUID, req AvailabilityRequest) (time.Duration, error) {
	if req.DurationMinutes != nil {
		d, err := vo.NewDuration(*req.DurationMinutes)
		if err != nil {
			return 0, shared.Validation("duration must be a positive number of minutes", err)
		}
		return d.Std(), nil
	}
	if req.ServiceID == nil {
		return q.defaultDuration, nil
	}
	svc, err := q.services.FindByID(ctx, *req.ServiceID)
	if err != nil {
		return 0, shared.StoreFailure(err, "find service")
	}
	if svc == nil || svc.SalonID() != salonID {
		return 0, shared.NotFound("service")
	}
	if err := svc.EnsureBookable(); err != nil {
		return 0, shared.InvalidState("service is not bookable", err)
	}
	return svc.Duration().Std(), nil
}

func startsAvailable(slots []vo.TimeSlot, start time.Time) bool {
	for _, s := range slots {
		if s.Start().Equal(start) {
			return s.Available()
		}
	}
	return false
}
