package httperr

import (
	"net/http"

	"salon-scheduler/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	abort(c, err, resp)
}

// AbortWithFailure renders an expected use-case failure with the status its code maps to.
func AbortWithFailure(c *gin.Context, de *shared.DomainError) {
	if de == nil {
		panic("AbortWithFailure: failure cannot be nil")
	}

	status := StatusFor(de.Code)
	resp := Response{Status: status}
	resp.Error.Code = string(de.Code)
	resp.Error.Message = de.Message
	if resp.Error.Message == "" {
		resp.Error.Message = http.StatusText(status)
	}

	abort(c, de, resp)
}

func StatusFor(code shared.ErrorCode) int {
	switch code {
	case shared.CodeNotFound:
		return http.StatusNotFound
	case shared.CodeConflict:
		return http.StatusConflict
	case shared.CodeInvalidState:
		return http.StatusUnprocessableEntity
	case shared.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, err error, resp Response) {
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
