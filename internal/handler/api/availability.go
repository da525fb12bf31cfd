package api

import (
	"net/http"

	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Check availability
// @Description Every slot of the day with its availability, optionally answering whether one start time is bookable
// @Tags availability
// @Produce json
// @Param salonId path string true "Salon ID"
// @Param date query string true "Salon-local date (YYYY-MM-DD)"
// @Param professionalId query string false "Professional ID"
// @Param serviceId query string false "Service ID"
// @Param duration query int false "Duration in minutes, overrides the service duration"
// @Param time query string false "Requested start (HH:mm)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/salons/{salonId}/availability [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	req, ok := bindAvailability(c)
	if !ok {
		return
	}
	res, err := h.q.CheckAvailability(c.Request.Context(), req)
	render[resdto.AvailabilityResponse](c, http.StatusOK, res, err, "Failed to check availability")
}

// @Summary Available slots
// @Description Only the bookable slots of the day
// @Tags availability
// @Produce json
// @Param salonId path string true "Salon ID"
// @Param date query string true "Salon-local date (YYYY-MM-DD)"
// @Param professionalId query string false "Professional ID"
// @Param serviceId query string false "Service ID"
// @Param duration query int false "Duration in minutes, overrides the service duration"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/salons/{salonId}/available-slots [get]
func (h *AvailabilityHandler) AvailableSlots(c *gin.Context) {
	req, ok := bindAvailability(c)
	if !ok {
		return
	}
	res, err := h.q.GetAvailableSlots(c.Request.Context(), req)
	render[resdto.AvailabilityResponse](c, http.StatusOK, res, err, "Failed to list available slots")
}

func bindAvailability(c *gin.Context) (queries.AvailabilityRequest, bool) {
	salonID, ok := pathUUID(c, "salonId")
	if !ok {
		return queries.AvailabilityRequest{}, false
	}
	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return queries.AvailabilityRequest{}, false
	}
	return q.ToQuery(salonID), true
}
