package commands

import (
	"context"
	"log/slog"
	"time"

	"salon-scheduler/internal/domain/availability"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/pkg/tz"
	"salon-scheduler/internal/usecase/readmodel"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type AddAvailabilityRuleRequest struct {
	SalonID        uuid.UUID
	ProfessionalID uuid.UUID
	Weekday        int
	Start          string // HH:mm
	End            string // HH:mm
	IsBreak        bool
}

type AddScheduleOverrideRequest struct {
	SalonID uuid.UUID
	// Nil blocks the whole salon.
	ProfessionalID *uuid.UUID
	Start          time.Time
	End            time.Time
	Reason         string
}

type ScheduleCommands interface {
	AddAvailabilityRule(ctx context.Context, req AddAvailabilityRuleRequest) (shared.Result[readmodel.AvailabilityRuleRM], error)
	RemoveAvailabilityRule(ctx context.Context, salonID, professionalID, ruleID uuid.UUID) (shared.Result[uuid.UUID], error)
	AddScheduleOverride(ctx context.Context, req AddScheduleOverrideRequest) (shared.Result[readmodel.ScheduleOverrideRM], error)
	RemoveScheduleOverride(ctx context.Context, salonID, overrideID uuid.UUID) (shared.Result[uuid.UUID], error)
}

type scheduleUseCaseImpl struct {
	professionals shared.ProfessionalRepository
	availability  shared.AvailabilityRepository
	logger        *slog.Logger
}

func NewScheduleCommands(
	professionals shared.ProfessionalRepository,
	availabilityRepo shared.AvailabilityRepository,
	logger *slog.Logger,
) ScheduleCommands {
	return &scheduleUseCaseImpl{
		professionals: professionals,
		availability:  availabilityRepo,
		logger:        logger,
	}
}

func (uc *scheduleUseCaseImpl) AddAvailabilityRule(ctx context.Context, req AddAvailabilityRuleRequest) (shared.Result[readmodel.AvailabilityRuleRM], error) {
	pro, err := uc.professional(ctx, req.SalonID, req.ProfessionalID)
	if err != nil {
		return shared.FromError[readmodel.AvailabilityRuleRM](err)
	}

	start, err := vo.ParseClockTime(req.Start)
	if err != nil {
		return shared.Fail[readmodel.AvailabilityRuleRM](shared.Validation("invalid start time", err)), nil
	}
	end, err := vo.ParseClockTime(req.End)
	if err != nil {
		return shared.Fail[readmodel.AvailabilityRuleRM](shared.Validation("invalid end time", err)), nil
	}
	rule, err := availability.NewRule(pro.ID(), time.Weekday(req.Weekday), start, end, req.IsBreak)
	if err != nil {
		return shared.Fail[readmodel.AvailabilityRuleRM](shared.Validation("invalid availability rule", err)), nil
	}

	if err := uc.availability.SaveRule(ctx, rule); err != nil {
		return shared.Result[readmodel.AvailabilityRuleRM]{}, shared.StoreFailure(err, "save availability rule")
	}
	uc.logger.InfoContext(ctx, "availability rule added",
		"professional_id", pro.ID(),
		"rule_id", rule.ID(),
		"weekday", rule.Weekday().String())

	return shared.Ok(readmodel.AvailabilityRuleRM{
		ID:             rule.ID(),
		ProfessionalID: rule.ProfessionalID(),
		Weekday:        int(rule.Weekday()),
		Start:          rule.Start().String(),
		End:            rule.End().String(),
		IsBreak:        rule.IsBreak(),
	}), nil
}

func (uc *scheduleUseCaseImpl) RemoveAvailabilityRule(ctx context.Context, salonID, professionalID, ruleID uuid.UUID) (shared.Result[uuid.UUID], error) {
	pro, err := uc.professional(ctx, salonID, professionalID)
	if err != nil {
		return shared.FromError[uuid.UUID](err)
	}
	rules, err := uc.availability.FindByProfessional(ctx, pro.ID())
	if err != nil {
		return shared.Result[uuid.UUID]{}, shared.StoreFailure(err, "find availability rules")
	}
	found := false
	for _, r := range rules {
		if r.ID() == ruleID {
			found = true
			break
		}
	}
	if !found {
		return shared.Fail[uuid.UUID](shared.NotFound("availability rule")), nil
	}
	if err := uc.availability.DeleteRule(ctx, ruleID); err != nil {
		return shared.Result[uuid.UUID]{}, shared.StoreFailure(err, "delete availability rule")
	}
	return shared.Ok(ruleID), nil
}

func (uc *scheduleUseCaseImpl) AddScheduleOverride(ctx context.Context, req AddScheduleOverrideRequest) (shared.Result[readmodel.ScheduleOverrideRM], error) {
	if req.ProfessionalID != nil {
		if _, err := uc.professional(ctx, req.SalonID, *req.ProfessionalID); err != nil {
			return shared.FromError[readmodel.ScheduleOverrideRM](err)
		}
	}
	period, err := vo.NewDateRange(req.Start, req.End)
	if err != nil {
		return shared.Fail[readmodel.ScheduleOverrideRM](shared.Validation("override end must be after start", err)), nil
	}

	o := availability.NewOverride(req.SalonID, req.ProfessionalID, period, req.Reason)
	if err := uc.availability.SaveOverride(ctx, o); err != nil {
		return shared.Result[readmodel.ScheduleOverrideRM]{}, shared.StoreFailure(err, "save schedule override")
	}
	uc.logger.InfoContext(ctx, "schedule override added",
		"salon_id", req.SalonID,
		"override_id", o.ID(),
		"salon_wide", o.IsSalonWide())

	return shared.Ok(readmodel.ScheduleOverrideRM{
		ID:             o.ID(),
		SalonID:        o.SalonID(),
		ProfessionalID: o.ProfessionalID(),
		StartsAtISO:    tz.FormatISO(o.Period().Start()),
		EndsAtISO:      tz.FormatISO(o.Period().End()),
		Reason:         o.Reason(),
	}), nil
}

func (uc *scheduleUseCaseImpl) RemoveScheduleOverride(ctx context.Context, salonID, overrideID uuid.UUID) (shared.Result[uuid.UUID], error) {
	o, err := uc.availability.FindOverrideByID(ctx, overrideID)
	if err != nil {
		return shared.Result[uuid.UUID]{}, shared.StoreFailure(err, "find schedule override")
	}
	if o == nil || o.SalonID() != salonID {
		return shared.Fail[uuid.UUID](shared.NotFound("schedule override")), nil
	}
	if err := uc.availability.DeleteOverride(ctx, overrideID); err != nil {
		return shared.Result[uuid.UUID]{}, shared.StoreFailure(err, "delete schedule override")
	}
	return shared.Ok(overrideID), nil
}

func (uc *scheduleUseCaseImpl) professional(ctx context.Context, salonID, professionalID uuid.UUID) (*professional.Professional, error) {
	pro, err := uc.professionals.FindByID(ctx, professionalID)
	if err != nil {
		return nil, shared.StoreFailure(err, "find professional")
	}
	if pro == nil || pro.SalonID() != salonID {
		return nil, shared.NotFound("professional")
	}
	return pro, nil
}
