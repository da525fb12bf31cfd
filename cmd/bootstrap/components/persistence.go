package components

import (
	"salon-scheduler/internal/infra/calendar"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/infra/repository"
	"salon-scheduler/internal/infra/scheduler"
	"salon-scheduler/internal/infra/uow"
	"salon-scheduler/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
	NewTxBeginner,
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			repository.NewSalonRepository,
			fx.As(new(shared.SalonRepository)),
		),
		fx.Annotate(
			repository.NewServiceRepository,
			fx.As(new(shared.ServiceRepository)),
		),
		fx.Annotate(
			repository.NewProfessionalRepository,
			fx.As(new(shared.ProfessionalRepository)),
		),
		fx.Annotate(
			repository.NewCustomerRepository,
			fx.As(new(shared.CustomerRepository)),
		),
		fx.Annotate(
			repository.NewAppointmentRepository,
			fx.As(new(shared.AppointmentRepository)),
		),
		fx.Annotate(
			repository.NewAvailabilityRepository,
			fx.As(new(shared.AvailabilityRepository)),
		),
		// Integration settings back both provider adapters
		fx.Annotate(
			repository.NewIntegrationRepository,
			fx.As(new(calendar.SettingsSource)),
			fx.As(new(scheduler.SettingsSource)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewTxBeginner(pool *pgxpool.Pool) uow.TxBeginner {
	return pool
}
