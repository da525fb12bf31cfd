package api

import (
	"net/http"

	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SalonHandler struct {
	q queries.SalonQueries
}

func NewSalonHandler(q queries.SalonQueries) *SalonHandler {
	return &SalonHandler{q: q}
}

// @Summary Get salon details
// @Description Salon profile with working hours, active services and active professionals
// @Tags salons
// @Produce json
// @Param salonId path string true "Salon ID"
// @Success 200 {object} resdto.SalonDetailsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/salons/{salonId} [get]
func (h *SalonHandler) GetDetails(c *gin.Context) {
	salonID, ok := pathUUID(c, "salonId")
	if !ok {
		return
	}
	res, err := h.q.GetSalonDetails(c.Request.Context(), salonID)
	render[resdto.SalonDetailsResponse](c, http.StatusOK, res, err, "Failed to load salon")
}
