package api

import (
	"net/http"

	reqdto "salon-scheduler/internal/handler/dto/request"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	cmds commands.ScheduleCommands
}

func NewScheduleHandler(cmds commands.ScheduleCommands) *ScheduleHandler {
	return &ScheduleHandler{cmds: cmds}
}

// @Summary Add availability rule
// @Description Weekly work or break interval for a professional
// @Tags schedule
// @Accept json
// @Produce json
// @Param salonId path string true "Salon ID"
// @Param professionalId path string true "Professional ID"
// @Param request body reqdto.AddAvailabilityRuleRequest true "Availability rule"
// @Success 201 {object} resdto.AvailabilityRuleResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/salons/{salonId}/professionals/{professionalId}/rules [post]
func (h *ScheduleHandler) AddRule(c *gin.Context) {
	salonID, ok := pathUUID(c, "salonId")
	if !ok {
		return
	}
	professionalID, ok := pathUUID(c, "professionalId")
	if !ok {
		return
	}
	var req reqdto.AddAvailabilityRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	res, err := h.cmds.AddAvailabilityRule(c.Request.Context(), req.ToCommand(salonID, professionalID))
	render[resdto.AvailabilityRuleResponse](c, http.StatusCreated, res, err, "Add availability rule failed")
}

// @Summary Remove availability rule
// @Tags schedule
// @Param salonId path string true "Salon ID"
// @Param professionalId path string true "Professional ID"
// @Param ruleId path string true "Rule ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/salons/{salonId}/professionals/{professionalId}/rules/{ruleId} [delete]
func (h *ScheduleHandler) RemoveRule(c *gin.Context) {
	salonID, ok := pathUUID(c, "salonId")
	if !ok {
		return
	}
	professionalID, ok := pathUUID(c, "professionalId")
	if !ok {
		return
	}
	ruleID, ok := pathUUID(c, "ruleId")
	if !ok {
		return
	}
	res, err := h.cmds.RemoveAvailabilityRule(c.Request.Context(), salonID, professionalID, ruleID)
	renderNoContent(c, res, err, "Remove availability rule failed")
}

// @Summary Add schedule override
// @Description Block a range for one professional, or for the whole salon when professionalId is omitted
// @Tags schedule
// @Accept json
// @Produce json
// @Param salonId path string true "Salon ID"
// @Param request body reqdto.AddScheduleOverrideRequest true "Schedule override"
// @Success 201 {object} resdto.ScheduleOverrideResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/salons/{salonId}/overrides [post]
func (h *ScheduleHandler) AddOverride(c *gin.Context) {
	salonID, ok := pathUUID(c, "salonId")
	if !ok {
		return
	}
	var req reqdto.AddScheduleOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	res, err := h.cmds.AddScheduleOverride(c.Request.Context(), req.ToCommand(salonID))
	render[resdto.ScheduleOverrideResponse](c, http.StatusCreated, res, err, "Add schedule override failed")
}

// @Summary Remove schedule override
// @Tags schedule
// @Param salonId path string true "Salon ID"
// @Param overrideId path string true "Override ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/salons/{salonId}/overrides/{overrideId} [delete]
func (h *ScheduleHandler) RemoveOverride(c *gin.Context) {
	salonID, ok := pathUUID(c, "salonId")
	if !ok {
		return
	}
	overrideID, ok := pathUUID(c, "overrideId")
	if !ok {
		return
	}
	res, err := h.cmds.RemoveScheduleOverride(c.Request.Context(), salonID, overrideID)
	renderNoContent(c, res, err, "Remove schedule override failed")
}
