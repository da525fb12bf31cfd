package components

import (
	"context"
	"log/slog"

	"salon-scheduler/internal/infra/cache"
	"salon-scheduler/internal/infra/calendar"
	"salon-scheduler/internal/infra/scheduler"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/usecase/integration"
	"salon-scheduler/internal/usecase/shared"

	"go.uber.org/fx"
)

var IntegrationModule = fx.Module("integration",
	fx.Provide(
		NewCalendarService,
		NewExternalScheduler,
		integration.NewService,
		NewDispatcher,
	),
)

// NewCalendarService decorates Google Calendar with the busy cache when redis is configured.
func NewCalendarService(src calendar.SettingsSource, busy *cache.BusyCache, cfg config.Config, logger *slog.Logger) shared.CalendarService {
	var svc shared.CalendarService = calendar.NewGoogleCalendar(src, cfg.Google, cfg.Scheduling.SyncTimeout, logger)
	if busy != nil {
		svc = cache.NewCachedCalendar(svc, busy)
	}
	return svc
}

func NewExternalScheduler(src scheduler.SettingsSource, busy *cache.BusyCache, cfg config.Config, logger *slog.Logger) shared.ExternalScheduler {
	var svc shared.ExternalScheduler = scheduler.NewClient(src, cfg.Scheduler, logger)
	if busy != nil {
		svc = cache.NewCachedScheduler(svc, busy)
	}
	return svc
}

// NewDispatcher drains in-flight syncs on shutdown.
func NewDispatcher(lc fx.Lifecycle, svc *integration.Service, appointments shared.AppointmentRepository, logger *slog.Logger) *integration.Dispatcher {
	d := integration.NewDispatcher(svc, appointments, logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := d.Wait(ctx); err != nil {
				logger.Warn("shutdown before external syncs finished", "error", err)
			}
			return nil
		},
	})
	return d
}
