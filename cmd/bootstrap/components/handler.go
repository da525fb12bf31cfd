package components

import (
	"salon-scheduler/internal/handler"
	"salon-scheduler/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSalonHandler,
		api.NewAvailabilityHandler,
		api.NewAppointmentHandler,
		api.NewLeadHandler,
		api.NewScheduleHandler,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	salon *api.SalonHandler,
	availability *api.AvailabilityHandler,
	appointment *api.AppointmentHandler,
	lead *api.LeadHandler,
	schedule *api.ScheduleHandler,
) handler.Handlers {
	return handler.Handlers{
		Salon:        salon,
		Availability: availability,
		Appointment:  appointment,
		Lead:         lead,
		Schedule:     schedule,
	}
}
