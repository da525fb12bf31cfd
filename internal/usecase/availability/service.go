package availability

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"salon-scheduler/internal/domain/availability"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/salon"
	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/infra/metrics"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/deadline"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/pkg/tz"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("salon-scheduler/usecase/availability")

type Request struct {
	SalonID        uuid.UUID
	ProfessionalID uuid.UUID
	// Date is any instant inside the requested salon-local day.
	Date            time.Time
	ServiceDuration time.Duration
}

type SalonRequest struct {
	SalonID         uuid.UUID
	Date            time.Time
	ServiceDuration time.Duration
}

type SlotCheck struct {
	SalonID              uuid.UUID
	ProfessionalID       uuid.UUID
	Start                time.Time
	End                  time.Time
	ExcludeAppointmentID *uuid.UUID
}

// Service merges working rules, overrides, internal bookings and both external
// busy sources into one slot timeline. Every stage only narrows availability.
type Service struct {
	salons          shared.SalonRepository
	professionals   shared.ProfessionalRepository
	appointments    shared.AppointmentRepository
	availability    shared.AvailabilityRepository
	calendar        shared.CalendarService
	scheduler       shared.ExternalScheduler
	clock           clock.Clock
	metrics         *metrics.SchedulerMetrics
	logger          *slog.Logger
	granularity     time.Duration
	providerTimeout time.Duration
}

// NewService accepts nil calendar and scheduler ports; availability then stays internal-only.
func NewService(
	salons shared.SalonRepository,
	professionals shared.ProfessionalRepository,
	appointments shared.AppointmentRepository,
	availabilityRepo shared.AvailabilityRepository,
	calendar shared.CalendarService,
	scheduler shared.ExternalScheduler,
	clock clock.Clock,
	m *metrics.SchedulerMetrics,
	logger *slog.Logger,
	cfg config.SchedulingConfig,
) *Service {
	granularity := cfg.SlotGranularity
	if granularity <= 0 {
		granularity = availability.DefaultGranularity
	}
	return &Service{
		salons:          salons,
		professionals:   professionals,
		appointments:    appointments,
		availability:    availabilityRepo,
		calendar:        calendar,
		scheduler:       scheduler,
		clock:           clock,
		metrics:         m,
		logger:          logger,
		granularity:     granularity,
		providerTimeout: cfg.ProviderTimeout,
	}
}

func (s *Service) Granularity() time.Duration {
	return s.granularity
}

func (s *Service) CalculateAvailability(ctx context.Context, req Request) ([]vo.TimeSlot, error) {
	ctx, span := tracer.Start(ctx, "availability.calculate", trace.WithAttributes(
		attribute.String("salon_id", req.SalonID.String()),
		attribute.String("professional_id", req.ProfessionalID.String()),
	))
	defer span.End()
	started := time.Now()
	defer func() {
		s.metrics.ObserveAvailabilityLatency("professional", time.Since(started).Seconds())
	}()

	sl, pro, err := s.load(ctx, req.SalonID, req.ProfessionalID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	loc := sl.Location()
	date := tz.LocalMidnight(req.Date, loc)
	dayStart, dayEnd := tz.DayBounds(date, loc)
	proID := pro.ID()

	slots, err := s.baseSlots(ctx, sl, proID, date)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return []vo.TimeSlot{}, nil
	}

	overrides, err := s.availability.FindOverrides(ctx, sl.ID(), dayStart, dayEnd)
	if err != nil {
		return nil, shared.StoreFailure(err, "find overrides")
	}
	availability.MarkBusy(slots, overridePeriods(overrides, func(o *availability.Override) bool {
		return o.AppliesTo(proID)
	}))

	booked, err := s.appointments.FindByProfessionalAndDate(ctx, proID, dayStart, dayEnd)
	if err != nil {
		return nil, shared.StoreFailure(err, "find appointments")
	}
	periods := make([]vo.DateRange, 0, len(booked))
	for _, a := range booked {
		if a.IsActive() {
			periods = append(periods, a.Period())
		}
	}
	availability.MarkBusy(slots, periods)

	calendarBusy, schedulerBusy := s.externalBusy(ctx, sl.ID(), pro, dayStart, dayEnd)
	availability.MarkBusy(slots, calendarBusy)
	availability.MarkBusy(slots, schedulerBusy)

	slots = s.finish(slots, date, loc, req.ServiceDuration)
	span.SetAttributes(
		attribute.Int("slots.total", len(slots)),
		attribute.Int("slots.available", availability.CountAvailable(slots)),
	)
	return slots, nil
}

// SalonSlots resolves availability from salon working hours when no professional is chosen.
func (s *Service) SalonSlots(ctx context.Context, req SalonRequest) ([]vo.TimeSlot, error) {
	ctx, span := tracer.Start(ctx, "availability.salon_slots", trace.WithAttributes(
		attribute.String("salon_id", req.SalonID.String()),
	))
	defer span.End()
	started := time.Now()
	defer func() {
		s.metrics.ObserveAvailabilityLatency("salon", time.Since(started).Seconds())
	}()

	sl, err := s.salons.FindByID(ctx, req.SalonID)
	if err != nil {
		return nil, shared.StoreFailure(err, "find salon")
	}
	if sl == nil {
		return nil, shared.NotFound("salon")
	}
	loc := sl.Location()
	date := tz.LocalMidnight(req.Date, loc)

	slots := s.salonBaseSlots(sl, date, nil)
	if len(slots) == 0 {
		return []vo.TimeSlot{}, nil
	}

	dayStart, dayEnd := tz.DayBounds(date, loc)
	overrides, err := s.availability.FindOverrides(ctx, sl.ID(), dayStart, dayEnd)
	if err != nil {
		return nil, shared.StoreFailure(err, "find overrides")
	}
	availability.MarkBusy(slots, overridePeriods(overrides, (*availability.Override).IsSalonWide))

	return s.finish(slots, date, loc, req.ServiceDuration), nil
}

// IsSlotAvailable checks one candidate window, stopping at the first source reporting a conflict.
// External providers are advisory: their failures count as no conflict.
func (s *Service) IsSlotAvailable(ctx context.Context, check SlotCheck) (bool, error) {
	ctx, span := tracer.Start(ctx, "availability.is_slot_available", trace.WithAttributes(
		attribute.String("salon_id", check.SalonID.String()),
		attribute.String("professional_id", check.ProfessionalID.String()),
	))
	defer span.End()

	window, err := vo.NewDateRange(check.Start, check.End)
	if err != nil {
		return false, shared.Validation("invalid slot window", err)
	}
	if !window.Start().After(s.clock.Now()) {
		span.SetAttributes(attribute.String("conflict", "started"))
		return false, nil
	}
	sl, pro, err := s.load(ctx, check.SalonID, check.ProfessionalID)
	if err != nil {
		return false, err
	}
	loc := sl.Location()
	date := tz.LocalMidnight(check.Start, loc)
	proID := pro.ID()

	windows, err := s.workingWindows(ctx, sl, proID, date)
	if err != nil {
		return false, err
	}
	if !availability.CoversWindow(date, loc, windows, window.Start(), window.End()) {
		span.SetAttributes(attribute.String("conflict", "working_time"))
		return false, nil
	}

	overrides, err := s.availability.FindOverrides(ctx, sl.ID(), window.Start(), window.End())
	if err != nil {
		return false, shared.StoreFailure(err, "find overrides")
	}
	for _, o := range overrides {
		if o.AppliesTo(proID) && o.Period().Overlaps(window) {
			span.SetAttributes(attribute.String("conflict", "override"))
			return false, nil
		}
	}

	conflicts, err := s.appointments.FindConflicting(ctx, proID, window.Start(), window.End(), check.ExcludeAppointmentID)
	if err != nil {
		return false, shared.StoreFailure(err, "find conflicting appointments")
	}
	if len(conflicts) > 0 {
		span.SetAttributes(attribute.String("conflict", "appointment"))
		return false, nil
	}

	if busy := s.calendarBusy(ctx, sl.ID(), pro, window.Start(), window.End()); overlapsAny(window, busy) {
		span.SetAttributes(attribute.String("conflict", metrics.ProviderCalendar))
		return false, nil
	}
	if busy := s.schedulerBusy(ctx, sl.ID(), proID, window.Start(), window.End()); overlapsAny(window, busy) {
		span.SetAttributes(attribute.String("conflict", metrics.ProviderScheduler))
		return false, nil
	}
	return true, nil
}

func (s *Service) load(ctx context.Context, salonID, professionalID uuid.UUID) (*salon.Salon, *professional.Professional, error) {
	sl, err := s.salons.FindByID(ctx, salonID)
	if err != nil {
		return nil, nil, shared.StoreFailure(err, "find salon")
	}
	if sl == nil {
		return nil, nil, shared.NotFound("salon")
	}
	pro, err := s.professionals.FindByID(ctx, professionalID)
	if err != nil {
		return nil, nil, shared.StoreFailure(err, "find professional")
	}
	if pro == nil || pro.SalonID() != sl.ID() {
		return nil, nil, shared.NotFound("professional")
	}
	return sl, pro, nil
}

// workingWindows prefers the professional's rules for the weekday and falls back to salon hours.
func (s *Service) workingWindows(ctx context.Context, sl *salon.Salon, professionalID uuid.UUID, date time.Time) ([]availability.Window, error) {
	day := tz.Weekday(date, sl.Location())
	rules, err := s.availability.FindByProfessionalAndDay(ctx, professionalID, day)
	if err != nil {
		return nil, shared.StoreFailure(err, "find availability rules")
	}
	if windows := availability.WindowsFromRules(rules, day); len(windows) > 0 {
		return windows, nil
	}
	return salonWindows(sl, day), nil
}

// baseSlots uses the professional's rules when any exist for the weekday, even if they
// yield no slot; salon hours apply only to professionals without rules that day.
func (s *Service) baseSlots(ctx context.Context, sl *salon.Salon, professionalID uuid.UUID, date time.Time) ([]vo.TimeSlot, error) {
	loc := sl.Location()
	slots, err := s.availability.GenerateSlots(ctx, professionalID, date, loc, s.granularity)
	if err != nil {
		return nil, shared.StoreFailure(err, "generate base slots")
	}
	if len(slots) > 0 {
		return slots, nil
	}
	rules, err := s.availability.FindByProfessionalAndDay(ctx, professionalID, tz.Weekday(date, loc))
	if err != nil {
		return nil, shared.StoreFailure(err, "find availability rules")
	}
	if len(rules) > 0 {
		return nil, nil
	}
	return s.salonBaseSlots(sl, date, &professionalID), nil
}

func (s *Service) salonBaseSlots(sl *salon.Salon, date time.Time, professionalID *uuid.UUID) []vo.TimeSlot {
	loc := sl.Location()
	return availability.GenerateSlots(date, loc, salonWindows(sl, tz.Weekday(date, loc)), s.granularity, professionalID)
}

func salonWindows(sl *salon.Salon, day time.Weekday) []availability.Window {
	wh, ok := sl.WorkingHoursFor(day)
	if !ok {
		return nil
	}
	return []availability.Window{{Start: wh.Start, End: wh.End}}
}

// finish applies the fit rule and, for today, drops slots that already started.
func (s *Service) finish(slots []vo.TimeSlot, date time.Time, loc *time.Location, d time.Duration) []vo.TimeSlot {
	if d <= 0 {
		d = s.granularity
	}
	availability.MarkUnfit(slots, d)
	if now := s.clock.Now(); tz.IsSameLocalDay(now, date, loc) {
		slots = availability.DropStarted(slots, now)
	}
	return slots
}

// externalBusy queries both providers concurrently; each branch swallows its own failure.
func (s *Service) externalBusy(ctx context.Context, salonID uuid.UUID, pro *professional.Professional, from, to time.Time) ([]vo.DateRange, []vo.DateRange) {
	var calendarBusy, schedulerBusy []vo.DateRange
	var g errgroup.Group
	g.Go(func() error {
		calendarBusy = s.calendarBusy(ctx, salonID, pro, from, to)
		return nil
	})
	g.Go(func() error {
		schedulerBusy = s.schedulerBusy(ctx, salonID, pro.ID(), from, to)
		return nil
	})
	_ = g.Wait()
	return calendarBusy, schedulerBusy
}

func (s *Service) calendarBusy(ctx context.Context, salonID uuid.UUID, pro *professional.Professional, from, to time.Time) []vo.DateRange {
	if s.calendar == nil || !pro.HasExternalCalendar() || !s.calendar.IsConfigured(ctx, salonID) {
		return nil
	}
	ref := *pro.ExternalCalendarID()
	busy, err := deadline.Call(ctx, s.providerTimeout, func(ctx context.Context) ([]vo.DateRange, error) {
		return s.calendar.FreeBusy(ctx, salonID, ref, from, to)
	})
	if err != nil {
		s.providerSkipped(ctx, metrics.ProviderCalendar, salonID, pro.ID(), err)
		return nil
	}
	return busy
}

func (s *Service) schedulerBusy(ctx context.Context, salonID, professionalID uuid.UUID, from, to time.Time) []vo.DateRange {
	if s.scheduler == nil || !s.scheduler.IsConfigured(ctx, salonID) {
		return nil
	}
	busy, err := deadline.Call(ctx, s.providerTimeout, func(ctx context.Context) ([]vo.DateRange, error) {
		return s.scheduler.BusySlots(ctx, salonID, professionalID, from, to)
	})
	if err != nil {
		s.providerSkipped(ctx, metrics.ProviderScheduler, salonID, professionalID, err)
		return nil
	}
	return busy
}

func (s *Service) providerSkipped(ctx context.Context, provider string, salonID, professionalID uuid.UUID, err error) {
	s.metrics.ObserveProviderFailure(provider)
	trace.SpanFromContext(ctx).AddEvent("provider skipped", trace.WithAttributes(
		attribute.String("provider", provider),
	))
	s.logger.WarnContext(ctx, "availability provider skipped",
		"salon_id", salonID,
		"professional_id", professionalID,
		"provider", provider,
		"unavailable", providerUnavailable(err),
		"error", err)
}

// providerUnavailable separates outages and timeouts from rejected requests.
func providerUnavailable(err error) bool {
	return errs.Is(err, errs.ErrProviderUnavailable) || errors.Is(err, context.DeadlineExceeded)
}

func overridePeriods(overrides []*availability.Override, keep func(*availability.Override) bool) []vo.DateRange {
	periods := make([]vo.DateRange, 0, len(overrides))
	for _, o := range overrides {
		if keep(o) {
			periods = append(periods, o.Period())
		}
	}
	return periods
}

func overlapsAny(window vo.DateRange, busy []vo.DateRange) bool {
	for _, b := range busy {
		if window.Overlaps(b) {
			return true
		}
	}
	return false
}
