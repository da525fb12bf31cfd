package queries

import (
	"context"
	"time"

	"salon-scheduler/internal/usecase/readmodel"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// SalonQueries lists services and professionals in the name order of the repositories.
type SalonQueries interface {
	GetSalonDetails(ctx context.Context, salonID uuid.UUID) (shared.Result[readmodel.SalonDetailsRM], error)
}

type salonQueriesImpl struct {
	salons        shared.SalonRepository
	services      shared.ServiceRepository
	professionals shared.ProfessionalRepository
}

func NewSalonQueries(
	salons shared.SalonRepository,
	services shared.ServiceRepository,
	professionals shared.ProfessionalRepository,
) SalonQueries {
	return &salonQueriesImpl{
		salons:        salons,
		services:      services,
		professionals: professionals,
	}
}

func (q *salonQueriesImpl) GetSalonDetails(ctx context.Context, salonID uuid.UUID) (shared.Result[readmodel.SalonDetailsRM], error) {
	sl, err := q.salons.FindByID(ctx, salonID)
	if err != nil {
		return shared.Result[readmodel.SalonDetailsRM]{}, shared.StoreFailure(err, "find salon")
	}
	if sl == nil {
		return shared.Fail[readmodel.SalonDetailsRM](shared.NotFound("salon")), nil
	}

	services, err := q.services.FindActiveBySalon(ctx, salonID)
	if err != nil {
		return shared.Result[readmodel.SalonDetailsRM]{}, shared.StoreFailure(err, "find services")
	}
	professionals, err := q.professionals.FindActiveBySalon(ctx, salonID)
	if err != nil {
		return shared.Result[readmodel.SalonDetailsRM]{}, shared.StoreFailure(err, "find professionals")
	}

	rm := readmodel.SalonDetailsRM{
		ID:            sl.ID(),
		Name:          sl.Name(),
		Timezone:      sl.Timezone(),
		Plan:          string(sl.Plan()),
		WorkingHours:  make([]readmodel.WorkingHoursRM, 0, 7),
		Services:      make([]readmodel.ServiceRM, 0, len(services)),
		Professionals: make([]readmodel.ProfessionalRM, 0, len(professionals)),
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		wh, open := sl.WorkingHoursFor(d)
		if !open {
			continue
		}
		rm.WorkingHours = append(rm.WorkingHours, readmodel.WorkingHoursRM{
			Weekday: readmodel.WeekdayName(d),
			Start:   wh.Start.String(),
			End:     wh.End.String(),
		})
	}
	for _, svc := range services {
		rm.Services = append(rm.Services, readmodel.ServiceRM{
			ID:              svc.ID(),
			Name:            svc.Name(),
			DurationMinutes: svc.Duration().Minutes(),
			Duration:        svc.Duration().String(),
			Price:           svc.Price().String(),
		})
	}
	for _, pro := range professionals {
		rm.Professionals = append(rm.Professionals, readmodel.ProfessionalRM{
			ID:         pro.ID(),
			Name:       pro.Name(),
			ServiceIDs: pro.ServiceIDs(),
		})
	}
	return shared.Ok(rm), nil
}
