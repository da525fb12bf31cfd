//go:build unit

package httperr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code shared.ErrorCode
		want int
	}{
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeConflict, http.StatusConflict},
		{shared.CodeInvalidState, http.StatusUnprocessableEntity},
		{shared.CodeValidation, http.StatusBadRequest},
		{shared.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, httperr.StatusFor(tt.code))
		})
	}
}

func TestAbortWithFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	de := shared.Conflict("professional already booked at %s", "10:00")
	httperr.AbortWithFailure(c, de)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusConflict, w.Code)
	require.Len(t, c.Errors, 1)
	assert.True(t, errors.Is(c.Errors[0].Err, shared.ErrConflict))

	var body httperr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "CONFLICT", body.Error.Code)
	assert.Equal(t, "professional already booked at 10:00", body.Error.Message)
}

func TestAbortWithError_PanicsOnNil(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Panics(t, func() {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "Invalid request", nil)
	})
}
