//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

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

func TestLeadHandler_Qualify(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	cmds := commandsmock.NewMockLeadCommands(ctrl)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.POST("/salons/:salonId/leads", api.NewLeadHandler(cmds).Qualify)

	salonID := uuid.New()
	path := "/salons/" + salonID.String() + "/leads"

	t.Run("success", func(t *testing.T) {
		qualifiedAt := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)
		cmds.EXPECT().
			QualifyLead(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req commands.QualifyLeadRequest) (shared.Result[readmodel.LeadRM], error) {
				assert.Equal(t, salonID, req.SalonID)
				assert.Equal(t, "hot", req.Temperature)
				return shared.Ok(readmodel.LeadRM{
					CustomerID:  uuid.New(),
					Name:        "Joana",
					Phone:       "+5511987654321",
					Temperature: "hot",
					Interest:    "mechas",
					QualifiedAt: qualifiedAt,
					Created:     true,
				}), nil
			})

		w := performRequest(t, router, http.MethodPost, path, map[string]any{
			"phone":       "(11) 98765-4321",
			"name":        "Joana",
			"interest":    "mechas",
			"temperature": "hot",
		})

		require.Equal(t, http.StatusOK, w.Code)
		got := decode[resdto.LeadResponse](t, w)
		assert.True(t, got.Created)
		assert.Equal(t, "+5511987654321", got.Phone)
		assert.True(t, got.QualifiedAt.Equal(qualifiedAt))
	})

	t.Run("missing temperature", func(t *testing.T) {
		w := performRequest(t, router, http.MethodPost, path, map[string]any{"phone": "11987654321"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid temperature", func(t *testing.T) {
		cmds.EXPECT().
			QualifyLead(gomock.Any(), gomock.Any()).
			Return(shared.Fail[readmodel.LeadRM](shared.Validation("temperature must be cold, warm or hot", nil)), nil)

		w := performRequest(t, router, http.MethodPost, path, map[string]any{"phone": "11987654321", "temperature": "boiling"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION", errorCode(t, w))
	})
}
