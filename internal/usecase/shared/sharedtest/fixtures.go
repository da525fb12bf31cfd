package sharedtest

import (
	"context"
	"testing"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/customer"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/salon"
	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/pkg/tz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Fixture is a salon open 09:00-18:00 every day with one professional able to
// perform one 30-minute service, and one customer.
type Fixture struct {
	Store        *Store
	Salon        *salon.Salon
	Service      *catalog.Service
	Professional *professional.Professional
	Customer     *customer.Customer
	Loc          *time.Location
}

func NewFixture(t testing.TB, now time.Time) *Fixture {
	t.Helper()
	ctx := context.Background()
	store := NewStore()

	hours, err := salon.NewWorkingHours("09:00", "18:00")
	require.NoError(t, err)
	week := map[time.Weekday]salon.WorkingHours{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		week[d] = hours
	}
	sl, err := salon.NewSalon(uuid.New(), "Studio Bela", tz.DefaultZone, week, now)
	require.NoError(t, err)
	require.NoError(t, store.Salons().Save(ctx, sl))

	money, err := vo.NewMoney(5000)
	require.NoError(t, err)
	svc, err := catalog.NewService(sl.ID(), "Corte feminino", 30, vo.FixedPrice(money), now)
	require.NoError(t, err)
	require.NoError(t, store.Services().Save(ctx, svc))

	pro, err := professional.NewProfessional(sl.ID(), "Ana", []uuid.UUID{svc.ID()}, nil, now)
	require.NoError(t, err)
	require.NoError(t, store.Professionals().Save(ctx, pro))

	phone, err := vo.NewPhone("(11) 98765-4321", vo.DefaultPhoneRegion)
	require.NoError(t, err)
	c, err := customer.NewCustomer(sl.ID(), phone, "Maria", now)
	require.NoError(t, err)
	require.NoError(t, store.Customers().Save(ctx, c))

	return &Fixture{
		Store:        store,
		Salon:        sl,
		Service:      svc,
		Professional: pro,
		Customer:     c,
		Loc:          sl.Location(),
	}
}

// At returns the instant of local date and HH:mm in the salon zone.
func (f *Fixture) At(t testing.TB, date, clock string) time.Time {
	t.Helper()
	d, err := tz.ParseLocalDate(date, f.Loc)
	require.NoError(t, err)
	c, err := vo.ParseClockTime(clock)
	require.NoError(t, err)
	return tz.AtMinute(d, c.Minutes(), f.Loc).UTC()
}

// Book stores an appointment for the fixture professional and service.
func (f *Fixture) Book(t testing.TB, start time.Time, minutes int, now time.Time) *appointment.Appointment {
	t.Helper()
	d, err := vo.NewDuration(minutes)
	require.NoError(t, err)
	a, err := appointment.NewAppointment(appointment.NewParams{
		SalonID:        f.Salon.ID(),
		CustomerID:     f.Customer.ID(),
		ProfessionalID: f.Professional.ID(),
		ServiceID:      f.Service.ID(),
		Start:          start,
		Duration:       d,
	}, now)
	require.NoError(t, err)
	require.NoError(t, f.Store.Appointments().Save(context.Background(), a))
	return a
}

// AddProfessional stores another active professional of the fixture salon.
func (f *Fixture) AddProfessional(t testing.TB, name string, calendarID *string, now time.Time) *professional.Professional {
	t.Helper()
	pro, err := professional.NewProfessional(f.Salon.ID(), name, []uuid.UUID{f.Service.ID()}, calendarID, now)
	require.NoError(t, err)
	require.NoError(t, f.Store.Professionals().Save(context.Background(), pro))
	return pro
}
