package queries

import (
	"context"

	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/customer"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/usecase/readmodel"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppointmentQueries interface {
	GetUpcomingAppointments(ctx context.Context, salonID uuid.UUID, phone string) (shared.Result[[]readmodel.AppointmentRM], error)
}

type appointmentQueriesImpl struct {
	salons        shared.SalonRepository
	customers     shared.CustomerRepository
	professionals shared.ProfessionalRepository
	services      shared.ServiceRepository
	appointments  shared.AppointmentRepository
	clock         clock.Clock
	limit         int
}

func NewAppointmentQueries(
	salons shared.SalonRepository,
	customers shared.CustomerRepository,
	professionals shared.ProfessionalRepository,
	services shared.ServiceRepository,
	appointments shared.AppointmentRepository,
	clk clock.Clock,
	cfg config.SchedulingConfig,
) AppointmentQueries {
	limit := cfg.UpcomingLimit
	if limit <= 0 {
		limit = 20
	}
	return &appointmentQueriesImpl{
		salons:        salons,
		customers:     customers,
		professionals: professionals,
		services:      services,
		appointments:  appointments,
		clock:         clk,
		limit:         limit,
	}
}

func (q *appointmentQueriesImpl) GetUpcomingAppointments(ctx context.Context, salonID uuid.UUID, rawPhone string) (shared.Result[[]readmodel.AppointmentRM], error) {
	sl, err := q.salons.FindByID(ctx, salonID)
	if err != nil {
		return shared.Result[[]readmodel.AppointmentRM]{}, shared.StoreFailure(err, "find salon")
	}
	if sl == nil {
		return shared.Fail[[]readmodel.AppointmentRM](shared.NotFound("salon")), nil
	}
	phone, err := vo.NewPhone(rawPhone, vo.DefaultPhoneRegion)
	if err != nil {
		return shared.Fail[[]readmodel.AppointmentRM](shared.Validation("invalid phone number", err)), nil
	}

	c, err := q.customers.FindByPhone(ctx, salonID, phone)
	if err != nil {
		return shared.Result[[]readmodel.AppointmentRM]{}, shared.StoreFailure(err, "find customer")
	}
	if c == nil {
		return shared.Ok([]readmodel.AppointmentRM{}), nil
	}

	upcoming, err := q.appointments.FindUpcomingByPhone(ctx, salonID, phone, q.clock.Now(), q.limit)
	if err != nil {
		return shared.Result[[]readmodel.AppointmentRM]{}, shared.StoreFailure(err, "find upcoming appointments")
	}

	names := lookups{
		customers:     map[uuid.UUID]*customer.Customer{c.ID(): c},
		professionals: map[uuid.UUID]*professional.Professional{},
		services:      map[uuid.UUID]*catalog.Service{},
	}
	out := make([]readmodel.AppointmentRM, 0, len(upcoming))
	for _, a := range upcoming {
		pro, err := names.professional(ctx, q.professionals, a.ProfessionalID())
		if err != nil {
			return shared.Result[[]readmodel.AppointmentRM]{}, err
		}
		svc, err := names.service(ctx, q.services, a.ServiceID())
		if err != nil {
			return shared.Result[[]readmodel.AppointmentRM]{}, err
		}
		out = append(out, readmodel.NewAppointmentRM(a, names.customers[a.CustomerID()], pro, svc, sl.Location()))
	}
	return shared.Ok(out), nil
}

// lookups memoizes related entities across one listing.
type lookups struct {
	customers     map[uuid.UUID]*customer.Customer
	professionals map[uuid.UUID]*professional.Professional
	services      map[uuid.UUID]*catalog.Service
}

func (l lookups) professional(ctx context.Context, repo shared.ProfessionalRepository, id uuid.UUID) (*professional.Professional, error) {
	if p, ok := l.professionals[id]; ok {
		return p, nil
	}
	p, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.StoreFailure(err, "find professional")
	}
	l.professionals[id] = p
	return p, nil
}

func (l lookups) service(ctx context.Context, repo shared.ServiceRepository, id uuid.UUID) (*catalog.Service, error) {
	if s, ok := l.services[id]; ok {
		return s, nil
	}
	s, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.StoreFailure(err, "find service")
	}
	l.services[id] = s
	return s, nil
}
