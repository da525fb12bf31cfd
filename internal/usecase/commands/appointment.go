package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/customer"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/salon"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/metrics"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/patch"
	"salon-scheduler/internal/usecase/integration"
	"salon-scheduler/internal/usecase/readmodel"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	SalonID        uuid.UUID
	CustomerID     uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	Start          time.Time
	Notes          string
}

// UpdateAppointmentRequest leaves nil fields unchanged.
type UpdateAppointmentRequest struct {
	AppointmentID  uuid.UUID
	ProfessionalID *uuid.UUID
	ServiceID      *uuid.UUID
	Start          *time.Time
	Notes          *string
}

type AppointmentCommands interface {
	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (shared.Result[readmodel.AppointmentRM], error)
	UpdateAppointment(ctx context.Context, req UpdateAppointmentRequest) (shared.Result[readmodel.AppointmentRM], error)
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) (shared.Result[readmodel.AppointmentRM], error)
}

type appointmentUseCaseImpl struct {
	uow           shared.UnitOfWork
	salons        shared.SalonRepository
	customers     shared.CustomerRepository
	professionals shared.ProfessionalRepository
	services      shared.ServiceRepository
	appointments  shared.AppointmentRepository
	dispatcher    *integration.Dispatcher
	metrics       *metrics.SchedulerMetrics
	clock         clock.Clock
	logger        *slog.Logger
}

func NewAppointmentCommands(
	uow shared.UnitOfWork,
	salons shared.SalonRepository,
	customers shared.CustomerRepository,
	professionals shared.ProfessionalRepository,
	services shared.ServiceRepository,
	appointments shared.AppointmentRepository,
	dispatcher *integration.Dispatcher,
	m *metrics.SchedulerMetrics,
	clk clock.Clock,
	logger *slog.Logger,
) AppointmentCommands {
	return &appointmentUseCaseImpl{
		uow:           uow,
		salons:        salons,
		customers:     customers,
		professionals: professionals,
		services:      services,
		appointments:  appointments,
		dispatcher:    dispatcher,
		metrics:       m,
		clock:         clk,
		logger:        logger,
	}
}

func (uc *appointmentUseCaseImpl) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (shared.Result[readmodel.AppointmentRM], error) {
	sl, err := uc.salons.FindByID(ctx, req.SalonID)
	if err != nil {
		return shared.Result[readmodel.AppointmentRM]{}, shared.StoreFailure(err, "find salon")
	}
	if sl == nil {
		return shared.Fail[readmodel.AppointmentRM](shared.NotFound("salon")), nil
	}

	c, err := uc.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return shared.Result[readmodel.AppointmentRM]{}, shared.StoreFailure(err, "find customer")
	}
	if c == nil || c.SalonID() != sl.ID() {
		return shared.Fail[readmodel.AppointmentRM](shared.NotFound("customer")), nil
	}

	pro, svc, err := uc.assignment(ctx, sl.ID(), req.ProfessionalID, req.ServiceID, true)
	if err != nil {
		return shared.FromError[readmodel.AppointmentRM](err)
	}

	now := uc.clock.Now()
	a, err := appointment.NewAppointment(appointment.NewParams{
		SalonID:        sl.ID(),
		CustomerID:     c.ID(),
		ProfessionalID: pro.ID(),
		ServiceID:      svc.ID(),
		Start:          req.Start,
		Duration:       svc.Duration(),
		Notes:          req.Notes,
	}, now)
	if err != nil {
		return shared.FromError[readmodel.AppointmentRM](domainFailure(err))
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := uc.ensureNoConflict(ctx, tx, a, nil); err != nil {
			return err
		}
		return tx.Appointments().Save(ctx, a)
	})
	if err != nil {
		return uc.writeFailure(err, "create")
	}

	uc.logger.InfoContext(ctx, "appointment created",
		"salon_id", sl.ID(),
		"appointment_id", a.ID(),
		"professional_id", pro.ID())
	uc.dispatcher.Dispatch(ctx, integration.OperationCreate, integration.NewAppointmentEvent(a, sl, pro, svc, c))

	return shared.Ok(readmodel.NewAppointmentRM(a, c, pro, svc, sl.Location())), nil
}

func (uc *appointmentUseCaseImpl) UpdateAppointment(ctx context.Context, req UpdateAppointmentRequest) (shared.Result[readmodel.AppointmentRM], error) {
	current, err := uc.appointments.FindByID(ctx, req.AppointmentID)
	if err != nil {
		return shared.Result[readmodel.AppointmentRM]{}, shared.StoreFailure(err, "find appointment")
	}
	if current == nil {
		return shared.Fail[readmodel.AppointmentRM](shared.NotFound("appointment")), nil
	}
	now := uc.clock.Now()
	if !current.CanBeModified(now) {
		return shared.Fail[readmodel.AppointmentRM](
			shared.InvalidState("appointment can no longer be modified", appointment.ErrNotModifiable)), nil
	}

	sl, err := uc.salons.FindByID(ctx, current.SalonID())
	if err != nil {
		return shared.Result[readmodel.AppointmentRM]{}, shared.StoreFailure(err, "find salon")
	}
	if sl == nil {
		return shared.Fail[readmodel.AppointmentRM](shared.NotFound("salon")), nil
	}

	serviceChanged := patch.Changed(req.ServiceID, current.ServiceID())
	pro, svc, err := uc.assignment(ctx, sl.ID(),
		patch.Coalesce(req.ProfessionalID, current.ProfessionalID()),
		patch.Coalesce(req.ServiceID, current.ServiceID()),
		serviceChanged)
	if err != nil {
		return shared.FromError[readmodel.AppointmentRM](err)
	}

	changes := appointment.Changes{
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Start:          req.Start,
		Notes:          req.Notes,
	}
	if serviceChanged {
		d := svc.Duration()
		changes.Duration = &d
	}
	next, err := current.Apply(changes, now)
	if err != nil {
		return shared.FromError[readmodel.AppointmentRM](domainFailure(err))
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if current.NeedsConflictCheck(next) {
			id := current.ID()
			if err := uc.ensureNoConflict(ctx, tx, next, &id); err != nil {
				return err
			}
		}
		return tx.Appointments().Save(ctx, next)
	})
	if err != nil {
		return uc.writeFailure(err, "update")
	}

	c, err := uc.customers.FindByID(ctx, next.CustomerID())
	if err != nil {
		return shared.Result[readmodel.AppointmentRM]{}, shared.StoreFailure(err, "find customer")
	}
	if c != nil {
		ev := integration.NewAppointmentEvent(next, sl, pro, svc, c)
		if next.ProfessionalID() != current.ProfessionalID() {
			if previous, err := uc.professionals.FindByID(ctx, current.ProfessionalID()); err == nil && previous != nil {
				ev = ev.MovedFrom(previous)
			}
		}
		uc.dispatcher.Dispatch(ctx, integration.OperationUpdate, ev)
	}

	return shared.Ok(readmodel.NewAppointmentRM(next, c, pro, svc, sl.Location())), nil
}

func (uc *appointmentUseCaseImpl) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) (shared.Result[readmodel.AppointmentRM], error) {
	current, err := uc.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		return shared.Result[readmodel.AppointmentRM]{}, shared.StoreFailure(err, "find appointment")
	}
	if current == nil {
		return shared.Fail[readmodel.AppointmentRM](shared.NotFound("appointment")), nil
	}
	cancelled, err := current.Cancel(uc.clock.Now())
	if err != nil {
		return shared.FromError[readmodel.AppointmentRM](domainFailure(err))
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Appointments().Save(ctx, cancelled)
	})
	if err != nil {
		return uc.writeFailure(err, "cancel")
	}

	sl, pro, svc, c, err := uc.related(ctx, cancelled)
	if err != nil {
		return shared.Result[readmodel.AppointmentRM]{}, err
	}
	if sl == nil {
		return shared.Fail[readmodel.AppointmentRM](shared.NotFound("salon")), nil
	}
	if pro != nil && svc != nil && c != nil {
		uc.dispatcher.Dispatch(ctx, integration.OperationDelete, integration.NewAppointmentEvent(cancelled, sl, pro, svc, c))
	}
	return shared.Ok(readmodel.NewAppointmentRM(cancelled, c, pro, svc, sl.Location())), nil
}

// assignment loads the professional and service and checks that one can perform the other.
// Bookability is only enforced for a newly chosen service.
func (uc *appointmentUseCaseImpl) assignment(
	ctx context.Context,
	salonID, professionalID, serviceID uuid.UUID,
	requireBookable bool,
) (*professional.Professional, *catalog.Service, error) {
	pro, err := uc.professionals.FindByID(ctx, professionalID)
	if err != nil {
		return nil, nil, shared.StoreFailure(err, "find professional")
	}
	if pro == nil || pro.SalonID() != salonID {
		return nil, nil, shared.NotFound("professional")
	}

	svc, err := uc.services.FindByID(ctx, serviceID)
	if err != nil {
		return nil, nil, shared.StoreFailure(err, "find service")
	}
	if svc == nil || svc.SalonID() != salonID {
		return nil, nil, shared.NotFound("service")
	}
	if requireBookable {
		if err := svc.EnsureBookable(); err != nil {
			return nil, nil, shared.InvalidState("service is not bookable", err)
		}
	}
	if !pro.CanPerformService(svc.ID()) {
		return nil, nil, shared.InvalidState("professional cannot perform this service", nil)
	}
	return pro, svc, nil
}

func (uc *appointmentUseCaseImpl) ensureNoConflict(ctx context.Context, tx shared.Tx, a *appointment.Appointment, exclude *uuid.UUID) error {
	conflicts, err := tx.Appointments().FindConflicting(ctx, a.ProfessionalID(), a.Start(), a.End(), exclude)
	if err != nil {
		return shared.StoreFailure(err, "find conflicting appointments")
	}
	if len(conflicts) > 0 {
		return shared.Conflict("professional already has %d appointment(s) overlapping %s", len(conflicts), a.Period())
	}
	return nil
}

// writeFailure maps transaction errors: domain failures and the overlap constraint become Results.
func (uc *appointmentUseCaseImpl) writeFailure(err error, op string) (shared.Result[readmodel.AppointmentRM], error) {
	if infra.IsKind(err, infra.KindConflict) {
		err = shared.Conflict("the requested time overlaps another appointment")
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		if de.Code == shared.CodeConflict {
			uc.metrics.ObserveConflict(op)
		}
		return shared.Fail[readmodel.AppointmentRM](de), nil
	}
	if errors.Is(err, shared.ErrStoreFailure) {
		return shared.Result[readmodel.AppointmentRM]{}, err
	}
	return shared.Result[readmodel.AppointmentRM]{}, shared.StoreFailure(err, op+" appointment")
}

func (uc *appointmentUseCaseImpl) related(ctx context.Context, a *appointment.Appointment) (
	*salon.Salon, *professional.Professional, *catalog.Service, *customer.Customer, error,
) {
	sl, err := uc.salons.FindByID(ctx, a.SalonID())
	if err != nil {
		return nil, nil, nil, nil, shared.StoreFailure(err, "find salon")
	}
	pro, err := uc.professionals.FindByID(ctx, a.ProfessionalID())
	if err != nil {
		return nil, nil, nil, nil, shared.StoreFailure(err, "find professional")
	}
	svc, err := uc.services.FindByID(ctx, a.ServiceID())
	if err != nil {
		return nil, nil, nil, nil, shared.StoreFailure(err, "find service")
	}
	c, err := uc.customers.FindByID(ctx, a.CustomerID())
	if err != nil {
		return nil, nil, nil, nil, shared.StoreFailure(err, "find customer")
	}
	return sl, pro, svc, c, nil
}

// domainFailure classifies entity validation errors.
func domainFailure(err error) *shared.DomainError {
	switch {
	case errors.Is(err, appointment.ErrStartInPast):
		return shared.InvalidState("appointment start must be in the future", err)
	case errors.Is(err, appointment.ErrNotModifiable):
		return shared.InvalidState("appointment can no longer be modified", err)
	default:
		return shared.Validation("invalid appointment", err)
	}
}
