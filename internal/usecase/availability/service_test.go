//go:build unit

package availability_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domain "salon-scheduler/internal/domain/availability"
	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/infra/metrics"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/pkg/ptr"
	"salon-scheduler/internal/pkg/tz"
	"salon-scheduler/internal/usecase/availability"
	"salon-scheduler/internal/usecase/shared"
	"salon-scheduler/internal/usecase/shared/sharedmock"
	"salon-scheduler/internal/usecase/shared/sharedtest"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const day = "2026-03-10"

var now = time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)

type deps struct {
	fx        *sharedtest.Fixture
	calendar  shared.CalendarService
	scheduler shared.ExternalScheduler
	clock     clock.Clock
	cfg       config.SchedulingConfig
	logs      io.Writer
}

func newDeps(t *testing.T) *deps {
	return &deps{
		fx:    sharedtest.NewFixture(t, now),
		clock: clock.NewMockClock(now),
		logs:  io.Discard,
		cfg: config.SchedulingConfig{
			SlotGranularity: 15 * time.Minute,
			ProviderTimeout: 50 * time.Millisecond,
		},
	}
}

func (d *deps) service() *availability.Service {
	store := d.fx.Store
	return availability.NewService(
		store.Salons(),
		store.Professionals(),
		store.Appointments(),
		store.Availability(),
		d.calendar,
		d.scheduler,
		d.clock,
		metrics.NewSchedulerMetrics(prometheus.NewRegistry()),
		slog.New(slog.NewTextHandler(d.logs, nil)),
		d.cfg,
	)
}

func (d *deps) request(t *testing.T, professionalID uuid.UUID, minutes int) availability.Request {
	return availability.Request{
		SalonID:         d.fx.Salon.ID(),
		ProfessionalID:  professionalID,
		Date:            d.fx.At(t, day, "00:00"),
		ServiceDuration: time.Duration(minutes) * time.Minute,
	}
}

func availableTimes(slots []vo.TimeSlot, loc *time.Location) []string {
	var out []string
	for _, s := range slots {
		if s.Available() {
			out = append(out, tz.FormatClock(s.Start(), loc))
		}
	}
	return out
}

func unavailableTimes(slots []vo.TimeSlot, loc *time.Location) []string {
	var out []string
	for _, s := range slots {
		if !s.Available() {
			out = append(out, tz.FormatClock(s.Start(), loc))
		}
	}
	return out
}

func TestCalculateAvailabilityWithoutProviders(t *testing.T) {
	ctx := context.Background()

	t.Run("60-minute granularity yields nine hourly starts", func(t *testing.T) {
		d := newDeps(t)
		d.cfg.SlotGranularity = time.Hour

		slots, err := d.service().CalculateAvailability(ctx, d.request(t, d.fx.Professional.ID(), 60))
		require.NoError(t, err)
		assert.Equal(t, []string{
			"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00",
		}, availableTimes(slots, d.fx.Loc))
	})

	t.Run("15-minute granularity yields every start that fits 60 minutes", func(t *testing.T) {
		d := newDeps(t)

		slots, err := d.service().CalculateAvailability(ctx, d.request(t, d.fx.Professional.ID(), 60))
		require.NoError(t, err)
		times := availableTimes(slots, d.fx.Loc)
		assert.Len(t, times, 33)
		assert.Equal(t, "09:00", times[0])
		assert.Equal(t, "17:00", times[len(times)-1])
		assert.Equal(t, []string{"17:15", "17:30", "17:45"}, unavailableTimes(slots, d.fx.Loc))
	})

	t.Run("closed weekday yields no slots", func(t *testing.T) {
		d := newDeps(t)
		closed := d.fx.Salon.WithoutWorkingHours(time.Tuesday, now)
		require.NoError(t, d.fx.Store.Salons().Save(ctx, closed))

		slots, err := d.service().CalculateAvailability(ctx, d.request(t, d.fx.Professional.ID(), 30))
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("unknown professional is not found", func(t *testing.T) {
		d := newDeps(t)

		_, err := d.service().CalculateAvailability(ctx, d.request(t, uuid.New(), 30))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("store failure propagates as an error", func(t *testing.T) {
		d := newDeps(t)
		d.fx.Store.Err = errors.New("connection refused")

		_, err := d.service().CalculateAvailability(ctx, d.request(t, d.fx.Professional.ID(), 30))
		assert.ErrorIs(t, err, shared.ErrStoreFailure)
	})
}

func TestCalculateAvailabilityExcludesBookedSlots(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	d.fx.Book(t, d.fx.At(t, day, "10:00"), 30, now)
	d.fx.Book(t, d.fx.At(t, day, "14:00"), 60, now)
	cancelled := d.fx.Book(t, d.fx.At(t, day, "16:00"), 30, now)
	cancelled, err := cancelled.Cancel(now)
	require.NoError(t, err)
	require.NoError(t, d.fx.Store.Appointments().Save(ctx, cancelled))

	expected := []string{"10:00", "10:15", "14:00", "14:15", "14:30", "14:45"}

	t.Run("internal only", func(t *testing.T) {
		slots, err := d.service().CalculateAvailability(ctx, d.request(t, d.fx.Professional.ID(), 15))
		require.NoError(t, err)
		assert.Len(t, slots, 36)
		assert.Equal(t, expected, unavailableTimes(slots, d.fx.Loc))
	})

	t.Run("failing providers leave the internal result untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pro := d.fx.AddProfessional(t, "Bia", ptr.To("bia@studio.example"), now)
		d.fx.Book(t, d.fx.At(t, day, "10:00"), 30, now)

		cal := sharedmock.NewMockCalendarService(ctrl)
		cal.EXPECT().IsConfigured(gomock.Any(), d.fx.Salon.ID()).Return(true)
		cal.EXPECT().FreeBusy(gomock.Any(), d.fx.Salon.ID(), "bia@studio.example", gomock.Any(), gomock.Any()).
			Return(nil, errors.New("googleapi: Error 503"))
		sched := sharedmock.NewMockExternalScheduler(ctrl)
		sched.EXPECT().IsConfigured(gomock.Any(), d.fx.Salon.ID()).Return(true)
		sched.EXPECT().BusySlots(gomock.Any(), d.fx.Salon.ID(), pro.ID(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _, _ uuid.UUID, _, _ time.Time) ([]vo.DateRange, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			})

		withProviders := *d
		withProviders.calendar = cal
		withProviders.scheduler = sched

		slots, err := withProviders.service().CalculateAvailability(ctx, d.request(t, pro.ID(), 15))
		require.NoError(t, err)
		assert.Len(t, slots, 36)
		assert.Empty(t, unavailableTimes(slots, d.fx.Loc), "bookings of another professional do not count")
	})
}

func TestCalculateAvailabilityMergesProviderBusyPeriods(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	d := newDeps(t)
	pro := d.fx.AddProfessional(t, "Bia", ptr.To("bia@studio.example"), now)

	busy := func(from, to string) vo.DateRange {
		r, err := vo.NewDateRange(d.fx.At(t, day, from), d.fx.At(t, day, to))
		require.NoError(t, err)
		return r
	}
	wantFrom, wantTo := tz.DayBounds(d.fx.At(t, day, "00:00"), d.fx.Loc)

	cal := sharedmock.NewMockCalendarService(ctrl)
	cal.EXPECT().IsConfigured(gomock.Any(), d.fx.Salon.ID()).Return(true)
	cal.EXPECT().FreeBusy(gomock.Any(), d.fx.Salon.ID(), "bia@studio.example", wantFrom, wantTo).
		Return([]vo.DateRange{busy("11:00", "11:30")}, nil)
	sched := sharedmock.NewMockExternalScheduler(ctrl)
	sched.EXPECT().IsConfigured(gomock.Any(), d.fx.Salon.ID()).Return(true)
	sched.EXPECT().BusySlots(gomock.Any(), d.fx.Salon.ID(), pro.ID(), wantFrom, wantTo).
		Return([]vo.DateRange{busy("15:10", "15:20")}, nil)
	d.calendar = cal
	d.scheduler = sched

	slots, err := d.service().CalculateAvailability(ctx, d.request(t, pro.ID(), 15))
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00", "11:15", "15:00", "15:15"}, unavailableTimes(slots, d.fx.Loc))
}

func TestCalculateAvailabilityLogsProviderOutages(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		wantUnavailable string
	}{
		{"outage", errs.Mark(errors.New("scheduler: status 502"), errs.ErrProviderUnavailable), "unavailable=true"},
		{"timeout", context.DeadlineExceeded, "unavailable=true"},
		{"rejected", errors.New("scheduler: status 400"), "unavailable=false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			d := newDeps(t)
			var logs bytes.Buffer
			d.logs = &logs
			pro := d.fx.AddProfessional(t, "Bia", nil, now)

			sched := sharedmock.NewMockExternalScheduler(ctrl)
			sched.EXPECT().IsConfigured(gomock.Any(), d.fx.Salon.ID()).Return(true)
			sched.EXPECT().BusySlots(gomock.Any(), d.fx.Salon.ID(), pro.ID(), gomock.Any(), gomock.Any()).
				Return(nil, tt.err)
			d.scheduler = sched

			slots, err := d.service().CalculateAvailability(context.Background(), d.request(t, pro.ID(), 30))
			require.NoError(t, err)
			assert.Len(t, availableTimes(slots, d.fx.Loc), 35)
			assert.Contains(t, logs.String(), "availability provider skipped")
			assert.Contains(t, logs.String(), tt.wantUnavailable)
		})
	}
}

func TestCalculateAvailabilitySkipsUnconfiguredProviders(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := newDeps(t)
	pro := d.fx.AddProfessional(t, "Bia", ptr.To("bia@studio.example"), now)

	cal := sharedmock.NewMockCalendarService(ctrl)
	cal.EXPECT().IsConfigured(gomock.Any(), d.fx.Salon.ID()).Return(false)
	cal.EXPECT().FreeBusy(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	sched := sharedmock.NewMockExternalScheduler(ctrl)
	sched.EXPECT().IsConfigured(gomock.Any(), d.fx.Salon.ID()).Return(false)
	sched.EXPECT().BusySlots(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	d.calendar = cal
	d.scheduler = sched

	slots, err := d.service().CalculateAvailability(context.Background(), d.request(t, pro.ID(), 30))
	require.NoError(t, err)
	assert.Len(t, availableTimes(slots, d.fx.Loc), 35)
}

func TestCalculateAvailabilityRulesAndOverrides(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	proID := d.fx.Professional.ID()
	repo := d.fx.Store.Availability()

	clockAt := func(s string) vo.ClockTime {
		c, err := vo.ParseClockTime(s)
		require.NoError(t, err)
		return c
	}
	work, err := domain.NewRule(proID, time.Tuesday, clockAt("10:00"), clockAt("14:00"), false)
	require.NoError(t, err)
	lunch, err := domain.NewRule(proID, time.Tuesday, clockAt("12:00"), clockAt("13:00"), true)
	require.NoError(t, err)
	require.NoError(t, repo.SaveRule(ctx, work))
	require.NoError(t, repo.SaveRule(ctx, lunch))

	period, err := vo.NewDateRange(d.fx.At(t, day, "10:00"), d.fx.At(t, day, "10:30"))
	require.NoError(t, err)
	require.NoError(t, repo.SaveOverride(ctx, domain.NewOverride(d.fx.Salon.ID(), &proID, period, "dentist")))
	otherPro := uuid.New()
	other, err := vo.NewDateRange(d.fx.At(t, day, "13:00"), d.fx.At(t, day, "14:00"))
	require.NoError(t, err)
	require.NoError(t, repo.SaveOverride(ctx, domain.NewOverride(d.fx.Salon.ID(), &otherPro, other, "")))

	slots, err := d.service().CalculateAvailability(ctx, d.request(t, proID, 30))
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "10:45", "11:00", "11:15", "11:30", "13:00", "13:15", "13:30"}, availableTimes(slots, d.fx.Loc))
}

func TestCalculateAvailabilityKeepsRulesThatYieldNoSlot(t *testing.T) {
	ctx := context.Background()

	clockAt := func(s string) vo.ClockTime {
		c, err := vo.ParseClockTime(s)
		require.NoError(t, err)
		return c
	}

	type ruleSpec struct {
		start, end string
		isBreak    bool
	}
	tests := []struct {
		name  string
		rules []ruleSpec
	}{
		{
			name:  "work block fully on break",
			rules: []ruleSpec{{"09:00", "10:00", false}, {"09:00", "10:00", true}},
		},
		{
			name:  "work block shorter than the granularity",
			rules: []ruleSpec{{"09:00", "09:10", false}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newDeps(t)
			proID := d.fx.Professional.ID()
			for _, r := range tc.rules {
				rule, err := domain.NewRule(proID, time.Tuesday, clockAt(r.start), clockAt(r.end), r.isBreak)
				require.NoError(t, err)
				require.NoError(t, d.fx.Store.Availability().SaveRule(ctx, rule))
			}

			slots, err := d.service().CalculateAvailability(ctx, d.request(t, proID, 30))
			require.NoError(t, err)
			assert.Empty(t, availableTimes(slots, d.fx.Loc), "salon hours must not replace existing rules")

			ok, err := d.service().IsSlotAvailable(ctx, availability.SlotCheck{
				SalonID:        d.fx.Salon.ID(),
				ProfessionalID: proID,
				Start:          d.fx.At(t, day, "14:00"),
				End:            d.fx.At(t, day, "14:30"),
			})
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestCalculateAvailabilityDropsStartedSlotsToday(t *testing.T) {
	d := newDeps(t)
	d.clock = clock.NewMockClock(d.fx.At(t, day, "16:40"))

	slots, err := d.service().CalculateAvailability(context.Background(), d.request(t, d.fx.Professional.ID(), 30))
	require.NoError(t, err)
	assert.Equal(t, []string{"16:45", "17:00", "17:15", "17:30"}, availableTimes(slots, d.fx.Loc))
	assert.Equal(t, []string{"17:45"}, unavailableTimes(slots, d.fx.Loc))
}

func TestSalonSlots(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	repo := d.fx.Store.Availability()
	proID := d.fx.Professional.ID()

	closure, err := vo.NewDateRange(d.fx.At(t, day, "09:00"), d.fx.At(t, day, "12:00"))
	require.NoError(t, err)
	require.NoError(t, repo.SaveOverride(ctx, domain.NewOverride(d.fx.Salon.ID(), nil, closure, "inventory")))
	personal, err := vo.NewDateRange(d.fx.At(t, day, "12:00"), d.fx.At(t, day, "18:00"))
	require.NoError(t, err)
	require.NoError(t, repo.SaveOverride(ctx, domain.NewOverride(d.fx.Salon.ID(), &proID, personal, "")))

	slots, err := d.service().SalonSlots(ctx, availability.SalonRequest{
		SalonID:         d.fx.Salon.ID(),
		Date:            d.fx.At(t, day, "00:00"),
		ServiceDuration: time.Hour,
	})
	require.NoError(t, err)
	times := availableTimes(slots, d.fx.Loc)
	assert.Len(t, times, 21)
	assert.Equal(t, "12:00", times[0])
	for _, s := range slots {
		assert.Nil(t, s.ProfessionalID())
	}

	_, err = d.service().SalonSlots(ctx, availability.SalonRequest{SalonID: uuid.New(), Date: now})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestIsSlotAvailable(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	existing := d.fx.Book(t, d.fx.At(t, day, "10:00"), 30, now)

	check := func(from, to string, exclude *uuid.UUID) availability.SlotCheck {
		return availability.SlotCheck{
			SalonID:              d.fx.Salon.ID(),
			ProfessionalID:       d.fx.Professional.ID(),
			Start:                d.fx.At(t, day, from),
			End:                  d.fx.At(t, day, to),
			ExcludeAppointmentID: exclude,
		}
	}

	tests := []struct {
		name  string
		check availability.SlotCheck
		want  bool
	}{
		{name: "free window", check: check("10:30", "11:00", nil), want: true},
		{name: "overlaps a booking", check: check("10:15", "10:45", nil), want: false},
		{name: "own booking is excluded", check: check("10:15", "10:45", ptr.To(existing.ID())), want: true},
		{name: "before opening", check: check("08:45", "09:15", nil), want: false},
		{name: "past closing", check: check("17:45", "18:15", nil), want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := d.service().IsSlotAvailable(ctx, tc.check)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}

	t.Run("calendar conflict short-circuits before the scheduler", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pro := d.fx.AddProfessional(t, "Bia", ptr.To("bia@studio.example"), now)
		busy, err := vo.NewDateRange(d.fx.At(t, day, "15:00"), d.fx.At(t, day, "16:00"))
		require.NoError(t, err)

		cal := sharedmock.NewMockCalendarService(ctrl)
		cal.EXPECT().IsConfigured(gomock.Any(), d.fx.Salon.ID()).Return(true)
		cal.EXPECT().FreeBusy(gomock.Any(), d.fx.Salon.ID(), "bia@studio.example", gomock.Any(), gomock.Any()).
			Return([]vo.DateRange{busy}, nil)
		sched := sharedmock.NewMockExternalScheduler(ctrl)
		sched.EXPECT().BusySlots(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		withProviders := *d
		withProviders.calendar = cal
		withProviders.scheduler = sched
		c := check("15:30", "16:00", nil)
		c.ProfessionalID = pro.ID()

		ok, err := withProviders.service().IsSlotAvailable(ctx, c)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("provider failure counts as no conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sched := sharedmock.NewMockExternalScheduler(ctrl)
		sched.EXPECT().IsConfigured(gomock.Any(), d.fx.Salon.ID()).Return(true)
		sched.EXPECT().BusySlots(gomock.Any(), d.fx.Salon.ID(), d.fx.Professional.ID(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("502 bad gateway"))

		withProviders := *d
		withProviders.scheduler = sched

		ok, err := withProviders.service().IsSlotAvailable(ctx, check("11:00", "11:30", nil))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("window already started today", func(t *testing.T) {
		today := *d
		today.clock = clock.NewMockClock(d.fx.At(t, day, "12:00"))

		ok, err := today.service().IsSlotAvailable(ctx, check("10:30", "11:00", nil))
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = today.service().IsSlotAvailable(ctx, check("14:00", "14:30", nil))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("inverted window is a validation failure", func(t *testing.T) {
		_, err := d.service().IsSlotAvailable(ctx, check("11:00", "10:00", nil))
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}
