package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"salon-scheduler/internal/domain/customer"
	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/usecase/readmodel"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type QualifyLeadRequest struct {
	SalonID     uuid.UUID
	Phone       string
	Name        string
	Interest    string
	Temperature string
	Notes       string
}

type LeadCommands interface {
	QualifyLead(ctx context.Context, req QualifyLeadRequest) (shared.Result[readmodel.LeadRM], error)
}

type leadUseCaseImpl struct {
	uow    shared.UnitOfWork
	salons shared.SalonRepository
	clock  clock.Clock
	logger *slog.Logger
}

func NewLeadCommands(uow shared.UnitOfWork, salons shared.SalonRepository, clk clock.Clock, logger *slog.Logger) LeadCommands {
	return &leadUseCaseImpl{
		uow:    uow,
		salons: salons,
		clock:  clk,
		logger: logger,
	}
}

func (uc *leadUseCaseImpl) QualifyLead(ctx context.Context, req QualifyLeadRequest) (shared.Result[readmodel.LeadRM], error) {
	sl, err := uc.salons.FindByID(ctx, req.SalonID)
	if err != nil {
		return shared.Result[readmodel.LeadRM]{}, shared.StoreFailure(err, "find salon")
	}
	if sl == nil {
		return shared.Fail[readmodel.LeadRM](shared.NotFound("salon")), nil
	}

	phone, err := vo.NewPhone(req.Phone, vo.DefaultPhoneRegion)
	if err != nil {
		return shared.Fail[readmodel.LeadRM](shared.Validation("invalid phone number", err)), nil
	}
	temperature := customer.LeadTemperature(strings.ToLower(strings.TrimSpace(req.Temperature)))
	if !temperature.IsValid() {
		return shared.Fail[readmodel.LeadRM](shared.Validation("temperature must be cold, warm or hot", customer.ErrInvalidTemperature)), nil
	}

	now := uc.clock.Now()
	candidate, err := customer.NewCustomer(sl.ID(), phone, req.Name, now)
	if err != nil {
		return shared.Fail[readmodel.LeadRM](shared.Validation("invalid customer", err)), nil
	}

	var (
		stored  *customer.Customer
		created bool
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Customers().Upsert(ctx, candidate)
		if err != nil {
			return shared.StoreFailure(err, "upsert customer")
		}
		created = c.ID() == candidate.ID()

		qualified, err := c.WithLeadQualification(customer.LeadQualification{
			Temperature: temperature,
			Interest:    req.Interest,
			Notes:       req.Notes,
			QualifiedAt: now,
		}, now)
		if err != nil {
			return shared.Validation("invalid lead qualification", err)
		}
		if err := tx.Customers().Save(ctx, qualified); err != nil {
			return shared.StoreFailure(err, "save customer")
		}
		stored = qualified
		return nil
	})
	if err != nil {
		var de *shared.DomainError
		if errors.As(err, &de) {
			return shared.Fail[readmodel.LeadRM](de), nil
		}
		return shared.Result[readmodel.LeadRM]{}, err
	}

	uc.logger.InfoContext(ctx, "lead qualified",
		"salon_id", sl.ID(),
		"customer_id", stored.ID(),
		"temperature", string(temperature),
		"created", created)

	q, _ := stored.LeadQualification()
	return shared.Ok(readmodel.LeadRM{
		CustomerID:  stored.ID(),
		Name:        stored.Name(),
		Phone:       stored.Phone().String(),
		Temperature: string(q.Temperature),
		Interest:    q.Interest,
		Notes:       q.Notes,
		QualifiedAt: q.QualifiedAt,
		Created:     created,
	}), nil
}
