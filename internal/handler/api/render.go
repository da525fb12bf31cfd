package api

import (
	"net/http"

	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// render writes the Result value mapped to DTO, the failure with its mapped status, or a 500 for a fault.
func render[DTO, RM any](c *gin.Context, status int, res shared.Result[RM], err error, faultMsg string) {
	if err != nil {
		abortFault(c, err, faultMsg)
		return
	}
	rm, failure := res.Get()
	if failure != nil {
		httperr.AbortWithFailure(c, failure)
		return
	}
	body, err := resdto.From[DTO](rm)
	if err != nil {
		abortFault(c, err, faultMsg)
		return
	}
	c.JSON(status, body)
}

// renderNoContent is render for operations whose success has no body.
func renderNoContent[RM any](c *gin.Context, res shared.Result[RM], err error, faultMsg string) {
	if err != nil {
		abortFault(c, err, faultMsg)
		return
	}
	if failure := res.Failure(); failure != nil {
		httperr.AbortWithFailure(c, failure)
		return
	}
	c.Status(http.StatusNoContent)
}

func abortFault(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, gin.H{"requestId": middleware.GetRequestID(c)})
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
