//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/infra/metrics"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/ptr"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/integration"
	"salon-scheduler/internal/usecase/shared"
	"salon-scheduler/internal/usecase/shared/sharedtest"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = "2026-03-10"

var (
	now     = time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)
	discard = slog.New(slog.NewTextHandler(io.Discard, nil))
)

type harness struct {
	fx         *sharedtest.Fixture
	reg        *prometheus.Registry
	dispatcher *integration.Dispatcher
	uc         commands.AppointmentCommands
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fx := sharedtest.NewFixture(t, now)
	reg := prometheus.NewRegistry()
	m := metrics.NewSchedulerMetrics(reg)
	syncer := integration.NewService(nil, nil, m, discard, config.SchedulingConfig{SyncTimeout: time.Second})
	d := integration.NewDispatcher(syncer, fx.Store.Appointments(), discard)
	store := fx.Store

	h := &harness{
		fx:         fx,
		reg:        reg,
		dispatcher: d,
		uc: commands.NewAppointmentCommands(
			store.UnitOfWork(),
			store.Salons(),
			store.Customers(),
			store.Professionals(),
			store.Services(),
			store.Appointments(),
			d,
			m,
			clock.NewMockClock(now),
			discard,
		),
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		assert.NoError(t, d.Wait(ctx))
	})
	return h
}

func (h *harness) create(t *testing.T, clockTime string) commands.CreateAppointmentRequest {
	return commands.CreateAppointmentRequest{
		SalonID:        h.fx.Salon.ID(),
		CustomerID:     h.fx.Customer.ID(),
		ProfessionalID: h.fx.Professional.ID(),
		ServiceID:      h.fx.Service.ID(),
		Start:          h.fx.At(t, day, clockTime),
		Notes:          "  primeira vez  ",
	}
}

func failureCode[T any](t *testing.T, res shared.Result[T]) shared.ErrorCode {
	t.Helper()
	require.False(t, res.IsOk(), "expected a failure result")
	return res.Failure().Code
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a pending appointment", func(t *testing.T) {
		h := newHarness(t)

		res, err := h.uc.CreateAppointment(ctx, h.create(t, "10:00"))
		require.NoError(t, err)
		require.True(t, res.IsOk())

		rm := res.Value()
		assert.Equal(t, "pending", rm.Status)
		assert.Equal(t, "Maria", rm.CustomerName)
		assert.Equal(t, "Ana", rm.ProfessionalName)
		assert.Equal(t, "Corte feminino", rm.ServiceName)
		assert.Equal(t, "10/03/2026 10:00", rm.StartsAt)
		assert.Equal(t, "10/03/2026 10:30", rm.EndsAt)
		assert.Equal(t, "2026-03-10T13:00:00Z", rm.StartsAtISO)
		assert.Equal(t, "primeira vez", rm.Notes)

		stored := h.fx.Store.Appointment(rm.ID)
		require.NotNil(t, stored)
		assert.Equal(t, appointment.StatusPending, stored.Status())
	})

	t.Run("overlapping request conflicts, adjacent request succeeds", func(t *testing.T) {
		h := newHarness(t)
		h.fx.Book(t, h.fx.At(t, day, "10:00"), 30, now)

		res, err := h.uc.CreateAppointment(ctx, h.create(t, "10:15"))
		require.NoError(t, err)
		assert.Equal(t, shared.CodeConflict, failureCode(t, res))
		assert.Equal(t, 1.0, conflicts(t, h.reg, "create"))

		res, err = h.uc.CreateAppointment(ctx, h.create(t, "10:30"))
		require.NoError(t, err)
		assert.True(t, res.IsOk())
	})

	t.Run("another professional's appointment does not conflict", func(t *testing.T) {
		h := newHarness(t)
		other := h.fx.AddProfessional(t, "Bia", nil, now)
		h.fx.Book(t, h.fx.At(t, day, "10:00"), 30, now)

		req := h.create(t, "10:00")
		req.ProfessionalID = other.ID()
		res, err := h.uc.CreateAppointment(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsOk())
	})

	t.Run("cancelled appointments free the slot", func(t *testing.T) {
		h := newHarness(t)
		booked := h.fx.Book(t, h.fx.At(t, day, "10:00"), 30, now)
		cancelled, err := booked.Cancel(now)
		require.NoError(t, err)
		require.NoError(t, h.fx.Store.Appointments().Save(ctx, cancelled))

		res, err := h.uc.CreateAppointment(ctx, h.create(t, "10:00"))
		require.NoError(t, err)
		assert.True(t, res.IsOk())
	})

	t.Run("failures", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(t *testing.T, h *harness, req *commands.CreateAppointmentRequest)
			want   shared.ErrorCode
		}{
			{
				name: "unknown salon",
				mutate: func(_ *testing.T, _ *harness, req *commands.CreateAppointmentRequest) {
					req.SalonID = uuid.New()
				},
				want: shared.CodeNotFound,
			},
			{
				name: "unknown customer",
				mutate: func(_ *testing.T, _ *harness, req *commands.CreateAppointmentRequest) {
					req.CustomerID = uuid.New()
				},
				want: shared.CodeNotFound,
			},
			{
				name: "unknown professional",
				mutate: func(_ *testing.T, _ *harness, req *commands.CreateAppointmentRequest) {
					req.ProfessionalID = uuid.New()
				},
				want: shared.CodeNotFound,
			},
			{
				name: "professional cannot perform the service",
				mutate: func(t *testing.T, h *harness, req *commands.CreateAppointmentRequest) {
					money, err := vo.NewMoney(9000)
					require.NoError(t, err)
					svc, err := catalog.NewService(h.fx.Salon.ID(), "Coloração", 90, vo.FixedPrice(money), now)
					require.NoError(t, err)
					require.NoError(t, h.fx.Store.Services().Save(context.Background(), svc))
					req.ServiceID = svc.ID()
				},
				want: shared.CodeInvalidState,
			},
			{
				name: "inactive service",
				mutate: func(t *testing.T, h *harness, _ *commands.CreateAppointmentRequest) {
					require.NoError(t, h.fx.Store.Services().Save(context.Background(), h.fx.Service.Deactivate(now)))
				},
				want: shared.CodeInvalidState,
			},
			{
				name: "start in the past",
				mutate: func(t *testing.T, h *harness, req *commands.CreateAppointmentRequest) {
					req.Start = h.fx.At(t, "2026-03-09", "09:00")
				},
				want: shared.CodeInvalidState,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				h := newHarness(t)
				req := h.create(t, "10:00")
				tt.mutate(t, h, &req)

				res, err := h.uc.CreateAppointment(ctx, req)
				require.NoError(t, err)
				assert.Equal(t, tt.want, failureCode(t, res))
				assert.Zero(t, h.fx.Store.AppointmentSaves)
			})
		}
	})

	t.Run("store failure is returned as an error", func(t *testing.T) {
		h := newHarness(t)
		h.fx.Store.Err = errors.New("connection refused")

		res, err := h.uc.CreateAppointment(ctx, h.create(t, "10:00"))
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrStoreFailure)
		assert.False(t, res.IsOk())
	})
}

func TestUpdateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("rescheduling onto its own range succeeds", func(t *testing.T) {
		h := newHarness(t)
		booked := h.fx.Book(t, h.fx.At(t, day, "10:00"), 30, now)
		saves := h.fx.Store.AppointmentSaves

		res, err := h.uc.UpdateAppointment(ctx, commands.UpdateAppointmentRequest{
			AppointmentID: booked.ID(),
			Start:         ptr.To(h.fx.At(t, day, "10:00")),
			Notes:         ptr.To("trazer referência"),
		})
		require.NoError(t, err)
		require.True(t, res.IsOk())
		assert.Equal(t, "trazer referência", res.Value().Notes)
		assert.Equal(t, saves+1, h.fx.Store.AppointmentSaves)
	})

	t.Run("shifting within its own range succeeds", func(t *testing.T) {
		h := newHarness(t)
		booked := h.fx.Book(t, h.fx.At(t, day, "10:00"), 30, now)

		res, err := h.uc.UpdateAppointment(ctx, commands.UpdateAppointmentRequest{
			AppointmentID: booked.ID(),
			Start:         ptr.To(h.fx.At(t, day, "10:15")),
		})
		require.NoError(t, err)
		require.True(t, res.IsOk())
		assert.Equal(t, "10/03/2026 10:45", res.Value().EndsAt)
	})

	t.Run("rescheduling onto another appointment conflicts", func(t *testing.T) {
		h := newHarness(t)
		booked := h.fx.Book(t, h.fx.At(t, day, "10:00"), 30, now)
		h.fx.Book(t, h.fx.At(t, day, "11:00"), 30, now)

		res, err := h.uc.UpdateAppointment(ctx, commands.UpdateAppointmentRequest{
			AppointmentID: booked.ID(),
			Start:         ptr.To(h.fx.At(t, day, "11:15")),
		})
		require.NoError(t, err)
		assert.Equal(t, shared.CodeConflict, failureCode(t, res))
		assert.Equal(t, 1.0, conflicts(t, h.reg, "update"))
		assert.True(t, h.fx.Store.Appointment(booked.ID()).Start().Equal(h.fx.At(t, day, "10:00")))
	})

	t.Run("reassigning to a busy professional conflicts", func(t *testing.T) {
		h := newHarness(t)
		other := h.fx.AddProfessional(t, "Bia", nil, now)
		booked := h.fx.Book(t, h.fx.At(t, day, "10:00"), 30, now)
		blocking, err := h.fx.Book(t, h.fx.At(t, day, "10:00"), 30, now).
			Apply(appointment.Changes{ProfessionalID: ptr.To(other.ID())}, now)
		require.NoError(t, err)
		require.NoError(t, h.fx.Store.Appointments().Save(ctx, blocking))

		res, err := h.uc.UpdateAppointment(ctx, commands.UpdateAppointmentRequest{
			AppointmentID:  booked.ID(),
			ProfessionalID: ptr.To(other.ID()),
		})
		require.NoError(t, err)
		assert.Equal(t, shared.CodeConflict, failureCode(t, res))
	})

	t.Run("changing the service recomputes the duration", func(t *testing.T) {
		h := newHarness(t)
		money, err := vo.NewMoney(12000)
		require.NoError(t, err)
		svc, err := catalog.NewService(h.fx.Salon.ID(), "Escova progressiva", 90, vo.FixedPrice(money), now)
		require.NoError(t, err)
		require.NoError(t, h.fx.Store.Services().Save(ctx, svc))
		require.NoError(t, h.fx.Store.Professionals().Save(ctx,
			h.fx.Professional.WithServices([]uuid.UUID{h.fx.Service.ID(), svc.ID()}, now)))
		booked := h.fx.Book(t, h.fx.At(t, day, "10:00"), 30, now)

		res, err := h.uc.UpdateAppointment(ctx, commands.UpdateAppointmentRequest{
			AppointmentID: booked.ID(),
			ServiceID:     ptr.To(svc.ID()),
		})
		require.NoError(t, err)
		require.True(t, res.IsOk())
		assert.Equal(t, "Escova progressiva", res.Value().ServiceName)
		assert.Equal(t, "10/03/2026 11:30", res.Value().EndsAt)
	})

	t.Run("failures", func(t *testing.T) {
		tests := []struct {
			name string
			req  func(t *testing.T, h *harness) commands.UpdateAppointmentRequest
			want shared.ErrorCode
		}{
			{
				name: "unknown appointment",
				req: func(_ *testing.T, _ *harness) commands.UpdateAppointmentRequest {
					return commands.UpdateAppointmentRequest{AppointmentID: uuid.New()}
				},
				want: shared.CodeNotFound,
			},
			{
				name: "cancelled appointment",
				req: func(t *testing.T, h *harness) commands.UpdateAppointmentRequest {
					booked := h.fx.Book(t, h.fx.At(t, day, "10:00"), 30, now)
					cancelled, err := booked.Cancel(now)
					require.NoError(t, err)
					require.NoError(t, h.fx.Store.Appointments().Save(context.Background(), cancelled))
					return commands.UpdateAppointmentRequest{AppointmentID: booked.ID(), Notes: ptr.To("x")}
				},
				want: shared.CodeInvalidState,
			},
			{
				name: "unknown professional",
				req: func(t *testing.T, h *harness) commands.UpdateAppointmentRequest {
					booked := h.fx.Book(t, h.fx.At(t, day, "10:00"), 30, now)
					return commands.UpdateAppointmentRequest{AppointmentID: booked.ID(), ProfessionalID: ptr.To(uuid.New())}
				},
				want: shared.CodeNotFound,
			},
			{
				name: "new start in the past",
				req: func(t *testing.T, h *harness) commands.UpdateAppointmentRequest {
					booked := h.fx.Book(t, h.fx.At(t, day, "10:00"), 30, now)
					return commands.UpdateAppointmentRequest{
						AppointmentID: booked.ID(),
						Start:         ptr.To(h.fx.At(t, "2026-03-09", "08:00")),
					}
				},
				want: shared.CodeInvalidState,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				h := newHarness(t)
				res, err := h.uc.UpdateAppointment(ctx, tt.req(t, h))
				require.NoError(t, err)
				assert.Equal(t, tt.want, failureCode(t, res))
			})
		}
	})
}

func TestCancelAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels and frees the slot", func(t *testing.T) {
		h := newHarness(t)
		booked := h.fx.Book(t, h.fx.At(t, day, "10:00"), 30, now)

		res, err := h.uc.CancelAppointment(ctx, booked.ID())
		require.NoError(t, err)
		require.True(t, res.IsOk())
		assert.Equal(t, "cancelled", res.Value().Status)

		again, err := h.uc.CreateAppointment(ctx, h.create(t, "10:00"))
		require.NoError(t, err)
		assert.True(t, again.IsOk())
	})

	t.Run("cancelling twice is an invalid state", func(t *testing.T) {
		h := newHarness(t)
		booked := h.fx.Book(t, h.fx.At(t, day, "10:00"), 30, now)

		_, err := h.uc.CancelAppointment(ctx, booked.ID())
		require.NoError(t, err)
		res, err := h.uc.CancelAppointment(ctx, booked.ID())
		require.NoError(t, err)
		assert.Equal(t, shared.CodeInvalidState, failureCode(t, res))
	})

	t.Run("unknown appointment", func(t *testing.T) {
		h := newHarness(t)
		res, err := h.uc.CancelAppointment(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, shared.CodeNotFound, failureCode(t, res))
	})
}

// conflicts reads the conflict counter for op from the registry.
func conflicts(t *testing.T, reg *prometheus.Registry, op string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "salon_scheduler_appointment_conflicts_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "operation" && l.GetValue() == op {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
