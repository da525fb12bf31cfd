package api

import (
	"net/http"

	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	cmds commands.LeadCommands
}

func NewLeadHandler(cmds commands.LeadCommands) *LeadHandler {
	return &LeadHandler{cmds: cmds}
}

// @Summary Qualify lead
// @Description Upsert the customer by phone and record the lead temperature
// @Tags leads
// @Accept json
// @Produce json
// @Param salonId path string true "Salon ID"
// @Param request body reqdto.QualifyLeadRequest true "Qualify lead request"
// @Success 200 {object} resdto.LeadResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/salons/{salonId}/leads [post]
func (h *LeadHandler) Qualify(c *gin.Context) {
	salonID, ok := pathUUID(c, "salonId")
	if !ok {
		return
	}
	var req reqdto.QualifyLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	res, err := h.cmds.QualifyLead(c.Request.Context(), req.ToCommand(salonID))
	render[resdto.LeadResponse](c, http.StatusOK, res, err, "Qualify lead failed")
}
