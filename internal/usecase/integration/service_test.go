//go:build unit

package integration_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"salon-scheduler/internal/infra/metrics"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/ptr"
	"salon-scheduler/internal/usecase/integration"
	"salon-scheduler/internal/usecase/shared"
	"salon-scheduler/internal/usecase/shared/sharedmock"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newSyncService(cal shared.CalendarService, sched shared.ExternalScheduler) *integration.Service {
	return integration.NewService(cal, sched,
		metrics.NewSchedulerMetrics(prometheus.NewRegistry()), discard,
		config.SchedulingConfig{SyncTimeout: time.Second})
}

func newEvent() integration.AppointmentEvent {
	start := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
	id := uuid.New()
	return integration.AppointmentEvent{
		SalonID:        uuid.New(),
		AppointmentID:  id,
		ProfessionalID: uuid.New(),
		CalendarRef:    ptr.To("ana@studio.example"),
		Payload: shared.ExternalEvent{
			AppointmentID: id,
			Title:         "Corte feminino - Maria",
			Start:         start,
			End:           start.Add(30 * time.Minute),
			TimeZone:      "America/Sao_Paulo",
		},
	}
}

type mocks struct {
	cal   *sharedmock.MockCalendarService
	sched *sharedmock.MockExternalScheduler
}

func newMocks(t *testing.T, ev integration.AppointmentEvent) mocks {
	ctrl := gomock.NewController(t)
	m := mocks{
		cal:   sharedmock.NewMockCalendarService(ctrl),
		sched: sharedmock.NewMockExternalScheduler(ctrl),
	}
	m.cal.EXPECT().IsConfigured(gomock.Any(), ev.SalonID).Return(true).AnyTimes()
	m.sched.EXPECT().IsConfigured(gomock.Any(), ev.SalonID).Return(true).AnyTimes()
	return m
}

func TestSyncCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates on both providers", func(t *testing.T) {
		ev := newEvent()
		m := newMocks(t, ev)
		m.cal.EXPECT().CreateEvent(gomock.Any(), ev.SalonID, "ana@studio.example", ev.Payload).Return("gcal-1", nil)
		m.sched.EXPECT().CreateAppointment(gomock.Any(), ev.SalonID, ev.Payload).Return("trinks-9", nil)

		res := newSyncService(m.cal, m.sched).SyncCreate(ctx, ev)
		assert.True(t, res.Success)
		assert.Empty(t, res.Errors)
		assert.Equal(t, "gcal-1", *res.ExternalIDs.CalendarEventID)
		assert.Equal(t, "trinks-9", *res.ExternalIDs.SchedulerEventID)
		assert.Nil(t, res.Warning())
	})

	t.Run("stored ids take the update path and never create twice", func(t *testing.T) {
		ev := newEvent()
		m := newMocks(t, ev)
		m.cal.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("gcal-1", nil).Times(1)
		m.sched.EXPECT().CreateAppointment(gomock.Any(), gomock.Any(), gomock.Any()).Return("trinks-9", nil).Times(1)
		m.cal.EXPECT().UpdateEvent(gomock.Any(), ev.SalonID, "ana@studio.example", "gcal-1", ev.Payload).Return(nil).Times(1)
		m.sched.EXPECT().UpdateAppointment(gomock.Any(), ev.SalonID, "trinks-9", ev.Payload).Return(nil).Times(1)
		svc := newSyncService(m.cal, m.sched)

		first := svc.SyncCreate(ctx, ev)
		require.True(t, first.Success)

		ev.CalendarEventID = first.ExternalIDs.CalendarEventID
		ev.SchedulerEventID = first.ExternalIDs.SchedulerEventID
		second := svc.SyncCreate(ctx, ev)
		assert.True(t, second.Success)
		assert.Equal(t, first.ExternalIDs, second.ExternalIDs)
	})

	t.Run("one failing provider does not stop the other", func(t *testing.T) {
		ev := newEvent()
		m := newMocks(t, ev)
		m.cal.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("googleapi: Error 401: invalid_grant"))
		m.sched.EXPECT().CreateAppointment(gomock.Any(), gomock.Any(), gomock.Any()).Return("trinks-9", nil)

		res := newSyncService(m.cal, m.sched).SyncCreate(ctx, ev)
		assert.False(t, res.Success)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, integration.SyncError{
			Provider:  metrics.ProviderCalendar,
			Operation: integration.OperationCreate,
			Message:   "googleapi: Error 401: invalid_grant",
		}, res.Errors[0])
		assert.Nil(t, res.ExternalIDs.CalendarEventID)
		assert.Equal(t, "trinks-9", *res.ExternalIDs.SchedulerEventID)
		assert.Equal(t, "calendar create: googleapi: Error 401: invalid_grant", *res.Warning())
	})

	t.Run("provider panic is captured", func(t *testing.T) {
		ev := newEvent()
		m := newMocks(t, ev)
		m.cal.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, uuid.UUID, string, shared.ExternalEvent) (string, error) {
				panic("nil map")
			})
		m.sched.EXPECT().CreateAppointment(gomock.Any(), gomock.Any(), gomock.Any()).Return("trinks-9", nil)

		res := newSyncService(m.cal, m.sched).SyncCreate(ctx, ev)
		assert.False(t, res.Success)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0].Message, "nil map")
	})

	t.Run("without ports nothing is attempted", func(t *testing.T) {
		res := newSyncService(nil, nil).SyncCreate(ctx, newEvent())
		assert.True(t, res.Success)
		assert.Nil(t, res.ExternalIDs.CalendarEventID)
		assert.Nil(t, res.ExternalIDs.SchedulerEventID)
	})

	t.Run("unconfigured salon and missing calendar ref are skipped", func(t *testing.T) {
		ev := newEvent()
		ev.CalendarRef = nil
		ctrl := gomock.NewController(t)
		cal := sharedmock.NewMockCalendarService(ctrl)
		sched := sharedmock.NewMockExternalScheduler(ctrl)
		sched.EXPECT().IsConfigured(gomock.Any(), ev.SalonID).Return(false)

		res := newSyncService(cal, sched).SyncCreate(ctx, ev)
		assert.True(t, res.Success)
		assert.Empty(t, res.Errors)
	})
}

func TestSyncUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("first sync creates", func(t *testing.T) {
		ev := newEvent()
		m := newMocks(t, ev)
		m.cal.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("gcal-1", nil)
		m.sched.EXPECT().CreateAppointment(gomock.Any(), gomock.Any(), gomock.Any()).Return("trinks-9", nil)

		res := newSyncService(m.cal, m.sched).SyncUpdate(ctx, ev)
		assert.True(t, res.Success)
		assert.Equal(t, "gcal-1", *res.ExternalIDs.CalendarEventID)
	})

	t.Run("remote event deleted out of band is recreated", func(t *testing.T) {
		ev := newEvent()
		ev.CalendarEventID = ptr.To("gcal-old")
		ev.SchedulerEventID = ptr.To("trinks-9")
		m := newMocks(t, ev)
		m.cal.EXPECT().UpdateEvent(gomock.Any(), gomock.Any(), gomock.Any(), "gcal-old", gomock.Any()).
			Return(shared.ErrExternalEventNotFound)
		m.cal.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("gcal-new", nil)
		m.sched.EXPECT().UpdateAppointment(gomock.Any(), gomock.Any(), "trinks-9", gomock.Any()).Return(nil)

		res := newSyncService(m.cal, m.sched).SyncUpdate(ctx, ev)
		assert.True(t, res.Success)
		assert.Equal(t, "gcal-new", *res.ExternalIDs.CalendarEventID)
		assert.Equal(t, "trinks-9", *res.ExternalIDs.SchedulerEventID)
	})

	t.Run("reassignment moves the event to the new calendar", func(t *testing.T) {
		ev := newEvent()
		ev.PreviousCalendarRef = ptr.To("bia@studio.example")
		ev.CalendarEventID = ptr.To("gcal-old")
		m := newMocks(t, ev)
		gomock.InOrder(
			m.cal.EXPECT().DeleteEvent(gomock.Any(), ev.SalonID, "bia@studio.example", "gcal-old").Return(nil),
			m.cal.EXPECT().CreateEvent(gomock.Any(), ev.SalonID, "ana@studio.example", ev.Payload).Return("gcal-new", nil),
		)
		m.cal.EXPECT().UpdateEvent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		m.sched.EXPECT().CreateAppointment(gomock.Any(), gomock.Any(), gomock.Any()).Return("trinks-9", nil)

		res := newSyncService(m.cal, m.sched).SyncUpdate(ctx, ev)
		assert.True(t, res.Success)
		assert.Equal(t, "gcal-new", *res.ExternalIDs.CalendarEventID)
	})

	t.Run("failed update keeps the stored id", func(t *testing.T) {
		ev := newEvent()
		ev.CalendarEventID = ptr.To("gcal-1")
		m := newMocks(t, ev)
		m.cal.EXPECT().UpdateEvent(gomock.Any(), gomock.Any(), gomock.Any(), "gcal-1", gomock.Any()).
			Return(errors.New("rate limited"))
		m.sched.EXPECT().CreateAppointment(gomock.Any(), gomock.Any(), gomock.Any()).Return("trinks-9", nil)

		res := newSyncService(m.cal, m.sched).SyncUpdate(ctx, ev)
		assert.False(t, res.Success)
		assert.Equal(t, integration.OperationUpdate, res.Errors[0].Operation)
		assert.Equal(t, "gcal-1", *res.ExternalIDs.CalendarEventID)
	})
}

func TestSyncDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("not found remotely counts as deleted", func(t *testing.T) {
		ev := newEvent()
		ev.CalendarEventID = ptr.To("gcal-1")
		ev.SchedulerEventID = ptr.To("trinks-9")
		m := newMocks(t, ev)
		m.cal.EXPECT().DeleteEvent(gomock.Any(), ev.SalonID, "ana@studio.example", "gcal-1").
			Return(shared.ErrExternalEventNotFound)
		m.sched.EXPECT().DeleteAppointment(gomock.Any(), ev.SalonID, "trinks-9").Return(nil)

		res := newSyncService(m.cal, m.sched).SyncDelete(ctx, ev)
		assert.True(t, res.Success)
		assert.Nil(t, res.ExternalIDs.CalendarEventID)
		assert.Nil(t, res.ExternalIDs.SchedulerEventID)
	})

	t.Run("failure keeps the id for a later retry", func(t *testing.T) {
		ev := newEvent()
		ev.SchedulerEventID = ptr.To("trinks-9")
		m := newMocks(t, ev)
		m.sched.EXPECT().DeleteAppointment(gomock.Any(), ev.SalonID, "trinks-9").Return(errors.New("503"))

		res := newSyncService(m.cal, m.sched).SyncDelete(ctx, ev)
		assert.False(t, res.Success)
		assert.Equal(t, "trinks-9", *res.ExternalIDs.SchedulerEventID)
		assert.Nil(t, res.ExternalIDs.CalendarEventID)
	})
}

func TestSyncTimeout(t *testing.T) {
	ev := newEvent()
	m := newMocks(t, ev)
	m.cal.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ uuid.UUID, _ string, _ shared.ExternalEvent) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})
	m.sched.EXPECT().CreateAppointment(gomock.Any(), gomock.Any(), gomock.Any()).Return("trinks-9", nil)

	svc := integration.NewService(m.cal, m.sched, nil, discard, config.SchedulingConfig{SyncTimeout: 20 * time.Millisecond})
	res := svc.SyncCreate(context.Background(), ev)
	assert.False(t, res.Success)
	assert.Equal(t, metrics.ProviderCalendar, res.Errors[0].Provider)
	assert.Equal(t, "trinks-9", *res.ExternalIDs.SchedulerEventID)
}
