package integration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"salon-scheduler/internal/infra/metrics"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/deadline"
	"salon-scheduler/internal/usecase/shared"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("salon-scheduler/usecase/integration")

// Service propagates committed appointment state to the configured providers.
// Each provider is attempted independently; failures are collected, never returned.
type Service struct {
	calendar  shared.CalendarService
	scheduler shared.ExternalScheduler
	metrics   *metrics.SchedulerMetrics
	logger    *slog.Logger
	timeout   time.Duration
}

func NewService(
	calendar shared.CalendarService,
	scheduler shared.ExternalScheduler,
	m *metrics.SchedulerMetrics,
	logger *slog.Logger,
	cfg config.SchedulingConfig,
) *Service {
	return &Service{
		calendar:  calendar,
		scheduler: scheduler,
		metrics:   m,
		logger:    logger,
		timeout:   cfg.SyncTimeout,
	}
}

// SyncCreate takes the update path for any provider that already holds an event id.
func (s *Service) SyncCreate(ctx context.Context, ev AppointmentEvent) SyncResult {
	return s.run(ctx, OperationCreate, ev)
}

// SyncUpdate creates the remote event on first sync and updates it otherwise.
func (s *Service) SyncUpdate(ctx context.Context, ev AppointmentEvent) SyncResult {
	return s.run(ctx, OperationUpdate, ev)
}

// SyncDelete treats an already removed remote event as deleted.
func (s *Service) SyncDelete(ctx context.Context, ev AppointmentEvent) SyncResult {
	return s.run(ctx, OperationDelete, ev)
}

func (s *Service) run(ctx context.Context, op Operation, ev AppointmentEvent) SyncResult {
	ctx, span := tracer.Start(ctx, "integration.sync_"+string(op), trace.WithAttributes(
		attribute.String("salon_id", ev.SalonID.String()),
		attribute.String("appointment_id", ev.AppointmentID.String()),
	))
	defer span.End()

	ids := ExternalIDs{CalendarEventID: ev.CalendarEventID, SchedulerEventID: ev.SchedulerEventID}
	var (
		mu       sync.Mutex
		failures []SyncError
	)
	fail := func(provider string, performed Operation, err error) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, SyncError{Provider: provider, Operation: performed, Message: err.Error()})
	}

	apply := func(provider string, syncFn func() (*string, Operation, error), set func(*string)) {
		id, performed, err := guard(syncFn)
		if performed == "" {
			performed = op
		}
		s.observe(ctx, provider, performed, ev, err)
		if err != nil && !errors.Is(err, errSkipped) {
			fail(provider, performed, err)
			return
		}
		set(id)
	}

	var g errgroup.Group
	g.Go(func() error {
		apply(metrics.ProviderCalendar,
			func() (*string, Operation, error) { return s.syncCalendar(ctx, op, ev) },
			func(id *string) { ids.CalendarEventID = id })
		return nil
	})
	g.Go(func() error {
		apply(metrics.ProviderScheduler,
			func() (*string, Operation, error) { return s.syncScheduler(ctx, op, ev) },
			func(id *string) { ids.SchedulerEventID = id })
		return nil
	})
	_ = g.Wait()
	slices.SortFunc(failures, func(a, b SyncError) int { return strings.Compare(a.Provider, b.Provider) })

	span.SetAttributes(attribute.Int("sync.errors", len(failures)))
	return SyncResult{
		Success:     len(failures) == 0,
		ExternalIDs: ids,
		Errors:      failures,
	}
}

// errSkipped signals that a provider is absent or not configured for the salon.
var errSkipped = errors.New("provider skipped")

// syncCalendar returns the event id to store afterwards and the operation actually performed.
func (s *Service) syncCalendar(ctx context.Context, op Operation, ev AppointmentEvent) (*string, Operation, error) {
	if s.calendar == nil || (ev.CalendarRef == nil && ev.PreviousCalendarRef == nil) ||
		!s.calendar.IsConfigured(ctx, ev.SalonID) {
		return ev.CalendarEventID, op, errSkipped
	}
	if ev.PreviousCalendarRef != nil && ev.CalendarEventID != nil {
		prev := *ev.PreviousCalendarRef
		err := deadline.Do(ctx, s.timeout, func(ctx context.Context) error {
			return s.calendar.DeleteEvent(ctx, ev.SalonID, prev, *ev.CalendarEventID)
		})
		if err != nil && !errors.Is(err, shared.ErrExternalEventNotFound) {
			return ev.CalendarEventID, OperationDelete, err
		}
		ev.CalendarEventID = nil
	}
	if ev.CalendarRef == nil {
		return ev.CalendarEventID, op, errSkipped
	}
	ref := *ev.CalendarRef

	if op == OperationDelete {
		if ev.CalendarEventID == nil {
			return nil, op, errSkipped
		}
		err := deadline.Do(ctx, s.timeout, func(ctx context.Context) error {
			return s.calendar.DeleteEvent(ctx, ev.SalonID, ref, *ev.CalendarEventID)
		})
		if err != nil && !errors.Is(err, shared.ErrExternalEventNotFound) {
			return ev.CalendarEventID, op, err
		}
		return nil, op, nil
	}

	if ev.CalendarEventID != nil {
		err := deadline.Do(ctx, s.timeout, func(ctx context.Context) error {
			return s.calendar.UpdateEvent(ctx, ev.SalonID, ref, *ev.CalendarEventID, ev.Payload)
		})
		if !errors.Is(err, shared.ErrExternalEventNotFound) {
			return ev.CalendarEventID, OperationUpdate, err
		}
	}
	id, err := deadline.Call(ctx, s.timeout, func(ctx context.Context) (string, error) {
		return s.calendar.CreateEvent(ctx, ev.SalonID, ref, ev.Payload)
	})
	if err != nil {
		return ev.CalendarEventID, OperationCreate, err
	}
	return &id, OperationCreate, nil
}

func (s *Service) syncScheduler(ctx context.Context, op Operation, ev AppointmentEvent) (*string, Operation, error) {
	if s.scheduler == nil || !s.scheduler.IsConfigured(ctx, ev.SalonID) {
		return ev.SchedulerEventID, op, errSkipped
	}

	if op == OperationDelete {
		if ev.SchedulerEventID == nil {
			return nil, op, errSkipped
		}
		err := deadline.Do(ctx, s.timeout, func(ctx context.Context) error {
			return s.scheduler.DeleteAppointment(ctx, ev.SalonID, *ev.SchedulerEventID)
		})
		if err != nil && !errors.Is(err, shared.ErrExternalEventNotFound) {
			return ev.SchedulerEventID, op, err
		}
		return nil, op, nil
	}

	if ev.SchedulerEventID != nil {
		err := deadline.Do(ctx, s.timeout, func(ctx context.Context) error {
			return s.scheduler.UpdateAppointment(ctx, ev.SalonID, *ev.SchedulerEventID, ev.Payload)
		})
		if !errors.Is(err, shared.ErrExternalEventNotFound) {
			return ev.SchedulerEventID, OperationUpdate, err
		}
	}
	id, err := deadline.Call(ctx, s.timeout, func(ctx context.Context) (string, error) {
		return s.scheduler.CreateAppointment(ctx, ev.SalonID, ev.Payload)
	})
	if err != nil {
		return ev.SchedulerEventID, OperationCreate, err
	}
	return &id, OperationCreate, nil
}

// observe records the outcome; a skipped provider is neither a success nor a failure.
func (s *Service) observe(ctx context.Context, provider string, op Operation, ev AppointmentEvent, err error) {
	switch {
	case err == nil:
		s.metrics.ObserveSync(provider, string(op), metrics.OutcomeSuccess)
	case errors.Is(err, errSkipped):
		s.metrics.ObserveSync(provider, string(op), metrics.OutcomeSkipped)
	default:
		s.metrics.ObserveSync(provider, string(op), metrics.OutcomeFailure)
		s.logger.WarnContext(ctx, "external sync failed",
			"salon_id", ev.SalonID,
			"appointment_id", ev.AppointmentID,
			"provider", provider,
			"operation", op,
			"error", err)
	}
}

// guard turns a provider panic into an error so one provider cannot take the sync down.
func guard(fn func() (*string, Operation, error)) (id *string, op Operation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panicked: %v", r)
		}
	}()
	return fn()
}
