//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"salon-scheduler/internal/handler/api"
	resdto "salon-scheduler/internal/handler/dto/response"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/commands/commandsmock"
	"salon-scheduler/internal/usecase/readmodel"
	"salon-scheduler/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newScheduleRouter(t *testing.T) (*gin.Engine, *commandsmock.MockScheduleCommands) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cmds := commandsmock.NewMockScheduleCommands(gomock.NewController(t))
	h := api.NewScheduleHandler(cmds)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/salons/:salonId/professionals/:professionalId/rules", h.AddRule)
	r.DELETE("/salons/:salonId/professionals/:professionalId/rules/:ruleId", h.RemoveRule)
	r.POST("/salons/:salonId/overrides", h.AddOverride)
	r.DELETE("/salons/:salonId/overrides/:overrideId", h.RemoveOverride)
	return r, cmds
}

func TestScheduleHandler_AddRule(t *testing.T) {
	salonID, proID := uuid.New(), uuid.New()
	path := "/salons/" + salonID.String() + "/professionals/" + proID.String() + "/rules"

	t.Run("sunday is a valid weekday", func(t *testing.T) {
		router, cmds := newScheduleRouter(t)
		cmds.EXPECT().
			AddAvailabilityRule(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req commands.AddAvailabilityRuleRequest) (shared.Result[readmodel.AvailabilityRuleRM], error) {
				assert.Equal(t, salonID, req.SalonID)
				assert.Equal(t, proID, req.ProfessionalID)
				assert.Equal(t, 0, req.Weekday)
				assert.True(t, req.IsBreak)
				return shared.Ok(readmodel.AvailabilityRuleRM{
					ID: uuid.New(), ProfessionalID: proID, Weekday: 0, Start: "12:00", End: "13:00", IsBreak: true,
				}), nil
			})

		w := performRequest(t, router, http.MethodPost, path, map[string]any{
			"weekday": 0, "start": "12:00", "end": "13:00", "isBreak": true,
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		got := decode[resdto.AvailabilityRuleResponse](t, w)
		assert.Equal(t, "12:00", got.Start)
		assert.True(t, got.IsBreak)
	})

	t.Run("weekday out of range", func(t *testing.T) {
		router, _ := newScheduleRouter(t)
		w := performRequest(t, router, http.MethodPost, path, map[string]any{"weekday": 7, "start": "09:00", "end": "18:00"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("weekday missing", func(t *testing.T) {
		router, _ := newScheduleRouter(t)
		w := performRequest(t, router, http.MethodPost, path, map[string]any{"start": "09:00", "end": "18:00"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("professional from another salon", func(t *testing.T) {
		router, cmds := newScheduleRouter(t)
		cmds.EXPECT().
			AddAvailabilityRule(gomock.Any(), gomock.Any()).
			Return(shared.Fail[readmodel.AvailabilityRuleRM](shared.NotFound("professional")), nil)

		w := performRequest(t, router, http.MethodPost, path, map[string]any{"weekday": 1, "start": "09:00", "end": "18:00"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestScheduleHandler_Remove(t *testing.T) {
	salonID, proID, id := uuid.New(), uuid.New(), uuid.New()

	t.Run("rule removed", func(t *testing.T) {
		router, cmds := newScheduleRouter(t)
		cmds.EXPECT().RemoveAvailabilityRule(gomock.Any(), salonID, proID, id).Return(shared.Ok(id), nil)

		w := performRequest(t, router, http.MethodDelete,
			"/salons/"+salonID.String()+"/professionals/"+proID.String()+"/rules/"+id.String(), nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("override of another salon", func(t *testing.T) {
		router, cmds := newScheduleRouter(t)
		cmds.EXPECT().
			RemoveScheduleOverride(gomock.Any(), salonID, id).
			Return(shared.Fail[uuid.UUID](shared.NotFound("schedule override")), nil)

		w := performRequest(t, router, http.MethodDelete, "/salons/"+salonID.String()+"/overrides/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestScheduleHandler_AddOverride(t *testing.T) {
	router, cmds := newScheduleRouter(t)
	salonID := uuid.New()
	reason := "feriado"

	cmds.EXPECT().
		AddScheduleOverride(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req commands.AddScheduleOverrideRequest) (shared.Result[readmodel.ScheduleOverrideRM], error) {
			assert.Nil(t, req.ProfessionalID)
			assert.Equal(t, "feriado", req.Reason)
			return shared.Ok(readmodel.ScheduleOverrideRM{
				ID:          uuid.New(),
				SalonID:     salonID,
				StartsAtISO: "2026-04-21T03:00:00Z",
				EndsAtISO:   "2026-04-22T03:00:00Z",
				Reason:      &reason,
			}), nil
		})

	w := performRequest(t, router, http.MethodPost, "/salons/"+salonID.String()+"/overrides", map[string]any{
		"startsAt": "2026-04-21T00:00:00-03:00",
		"endsAt":   "2026-04-22T00:00:00-03:00",
		"reason":   "feriado",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decode[resdto.ScheduleOverrideResponse](t, w)
	assert.Nil(t, got.ProfessionalID)
	require.NotNil(t, got.Reason)
	assert.Equal(t, "feriado", *got.Reason)
}
