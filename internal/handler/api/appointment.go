package api

import (
	"errors"
	"net/http"

	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errEmptyUpdate = errors.New("no fields to update")

type AppointmentHandler struct {
	cmds commands.AppointmentCommands
	q    queries.AppointmentQueries
}

func NewAppointmentHandler(cmds commands.AppointmentCommands, q queries.AppointmentQueries) *AppointmentHandler {
	return &AppointmentHandler{cmds: cmds, q: q}
}

// @Summary Create appointment
// @Description Book a service with a professional; overlapping bookings are rejected
// @Tags appointments
// @Accept json
// @Produce json
// @Param salonId path string true "Salon ID"
// @Param request body reqdto.CreateAppointmentRequest true "Create appointment request"
// @Success 201 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/salons/{salonId}/appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	salonID, ok := pathUUID(c, "salonId")
	if !ok {
		return
	}
	var req reqdto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	res, err := h.cmds.CreateAppointment(c.Request.Context(), req.ToCommand(salonID))
	render[resdto.AppointmentResponse](c, http.StatusCreated, res, err, "Create appointment failed")
}

// @Summary Update appointment
// @Description Reschedule, reassign or edit notes; omitted fields are kept
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body reqdto.UpdateAppointmentRequest true "Update appointment request"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/appointments/{id} [patch]
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if req.IsEmpty() {
		httperr.AbortWithError(c, http.StatusBadRequest, errEmptyUpdate, "Nothing to update", nil)
		return
	}
	res, err := h.cmds.UpdateAppointment(c.Request.Context(), req.ToCommand(id))
	render[resdto.AppointmentResponse](c, http.StatusOK, res, err, "Update appointment failed")
}

// @Summary Cancel appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	res, err := h.cmds.CancelAppointment(c.Request.Context(), id)
	render[resdto.AppointmentResponse](c, http.StatusOK, res, err, "Cancel appointment failed")
}

// @Summary Upcoming appointments by phone
// @Description Non-cancelled future appointments of the customer owning the phone number
// @Tags appointments
// @Produce json
// @Param salonId path string true "Salon ID"
// @Param phone path string true "Customer phone"
// @Success 200 {object} resdto.UpcomingAppointmentsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/salons/{salonId}/customers/{phone}/appointments [get]
func (h *AppointmentHandler) ListUpcoming(c *gin.Context) {
	salonID, ok := pathUUID(c, "salonId")
	if !ok {
		return
	}
	res, err := h.q.GetUpcomingAppointments(c.Request.Context(), salonID, c.Param("phone"))
	if err != nil {
		abortFault(c, err, "Failed to load appointments")
		return
	}
	rms, failure := res.Get()
	if failure != nil {
		httperr.AbortWithFailure(c, failure)
		return
	}
	items := make([]resdto.AppointmentResponse, 0, len(rms))
	for _, rm := range rms {
		item, err := resdto.From[resdto.AppointmentResponse](rm)
		if err != nil {
			abortFault(c, err, "Failed to load appointments")
			return
		}
		items = append(items, item)
	}
	c.JSON(http.StatusOK, resdto.UpcomingAppointmentsResponse{Appointments: items, Total: len(items)})
}
