package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"salon-scheduler/internal/handler/api"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	Salon        *api.SalonHandler
	Availability *api.AvailabilityHandler
	Appointment  *api.AppointmentHandler
	Lead         *api.LeadHandler
	Schedule     *api.ScheduleHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, gatherer prometheus.Gatherer, h Handlers) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, gatherer, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, gatherer prometheus.Gatherer, h Handlers) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		salons := apiGroup.Group("/salons/:salonId")
		{
			addRoutes(salons, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Salon.GetDetails},
				{Method: http.MethodGet, Path: "/availability", Handler: h.Availability.Check},
				{Method: http.MethodGet, Path: "/available-slots", Handler: h.Availability.AvailableSlots},
				{Method: http.MethodPost, Path: "/appointments", Handler: h.Appointment.Create},
				{Method: http.MethodGet, Path: "/customers/:phone/appointments", Handler: h.Appointment.ListUpcoming},
				{Method: http.MethodPost, Path: "/leads", Handler: h.Lead.Qualify},
				{Method: http.MethodPost, Path: "/professionals/:professionalId/rules", Handler: h.Schedule.AddRule},
				{Method: http.MethodDelete, Path: "/professionals/:professionalId/rules/:ruleId", Handler: h.Schedule.RemoveRule},
				{Method: http.MethodPost, Path: "/overrides", Handler: h.Schedule.AddOverride},
				{Method: http.MethodDelete, Path: "/overrides/:overrideId", Handler: h.Schedule.RemoveOverride},
			})
		}

		appointments := apiGroup.Group("/appointments")
		{
			addRoutes(appointments, []route{
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Appointment.Update},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Appointment.Cancel},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}
