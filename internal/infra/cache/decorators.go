package cache

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// CachedCalendar serves FreeBusy from the busy cache and invalidates the salon's entries on every write.
type CachedCalendar struct {
	shared.CalendarService
	cache *BusyCache
}

func NewCachedCalendar(inner shared.CalendarService, cache *BusyCache) *CachedCalendar {
	return &CachedCalendar{CalendarService: inner, cache: cache}
}

func (c *CachedCalendar) FreeBusy(ctx context.Context, salonID uuid.UUID, calendarRef string, start, end time.Time) ([]vo.DateRange, error) {
	return c.cache.lookup(ctx, busyKey(providerCalendar, salonID, calendarRef, start, end), func(ctx context.Context) ([]vo.DateRange, error) {
		return c.CalendarService.FreeBusy(ctx, salonID, calendarRef, start, end)
	})
}

func (c *CachedCalendar) CreateEvent(ctx context.Context, salonID uuid.UUID, calendarRef string, ev shared.ExternalEvent) (string, error) {
	defer c.cache.Invalidate(ctx, providerCalendar, salonID)
	return c.CalendarService.CreateEvent(ctx, salonID, calendarRef, ev)
}

func (c *CachedCalendar) UpdateEvent(ctx context.Context, salonID uuid.UUID, calendarRef, eventID string, ev shared.ExternalEvent) error {
	defer c.cache.Invalidate(ctx, providerCalendar, salonID)
	return c.CalendarService.UpdateEvent(ctx, salonID, calendarRef, eventID, ev)
}

func (c *CachedCalendar) DeleteEvent(ctx context.Context, salonID uuid.UUID, calendarRef, eventID string) error {
	defer c.cache.Invalidate(ctx, providerCalendar, salonID)
	return c.CalendarService.DeleteEvent(ctx, salonID, calendarRef, eventID)
}

// CachedScheduler is the ExternalScheduler counterpart of CachedCalendar, keyed by professional.
type CachedScheduler struct {
	shared.ExternalScheduler
	cache *BusyCache
}

func NewCachedScheduler(inner shared.ExternalScheduler, cache *BusyCache) *CachedScheduler {
	return &CachedScheduler{ExternalScheduler: inner, cache: cache}
}

func (c *CachedScheduler) BusySlots(ctx context.Context, salonID, professionalID uuid.UUID, start, end time.Time) ([]vo.DateRange, error) {
	return c.cache.lookup(ctx, busyKey(providerScheduler, salonID, professionalID.String(), start, end), func(ctx context.Context) ([]vo.DateRange, error) {
		return c.ExternalScheduler.BusySlots(ctx, salonID, professionalID, start, end)
	})
}

func (c *CachedScheduler) CreateAppointment(ctx context.Context, salonID uuid.UUID, ev shared.ExternalEvent) (string, error) {
	defer c.cache.Invalidate(ctx, providerScheduler, salonID)
	return c.ExternalScheduler.CreateAppointment(ctx, salonID, ev)
}

func (c *CachedScheduler) UpdateAppointment(ctx context.Context, salonID uuid.UUID, externalID string, ev shared.ExternalEvent) error {
	defer c.cache.Invalidate(ctx, providerScheduler, salonID)
	return c.ExternalScheduler.UpdateAppointment(ctx, salonID, externalID, ev)
}

func (c *CachedScheduler) DeleteAppointment(ctx context.Context, salonID uuid.UUID, externalID string) error {
	defer c.cache.Invalidate(ctx, providerScheduler, salonID)
	return c.ExternalScheduler.DeleteAppointment(ctx, salonID, externalID)
}
