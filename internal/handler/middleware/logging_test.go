//go:build unit

package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"salon-scheduler/internal/handler/httperr"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedEngine(t *testing.T) (*gin.Engine, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	engine := gin.New()
	engine.Use(middleware.LoggingMiddleware(logger, config.NewTestConfig().Log))
	return engine, &buf
}

func completedLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	require.Equal(t, "Request completed", entry["msg"])
	return entry
}

func TestLoggingMiddleware_RouteIDs(t *testing.T) {
	engine, buf := newLoggedEngine(t)
	engine.POST("/api/salons/:salonId/professionals/:professionalId/rules", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/salons/s-1/professionals/p-1/rules", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	entry := completedLine(t, buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "s-1", entry["salon_id"])
	assert.Equal(t, "p-1", entry["professional_id"])
	assert.Equal(t, "/api/salons/:salonId/professionals/:professionalId/rules", entry["route"])
	assert.NotContains(t, entry, "stack")
}

func TestLoggingMiddleware_ErrorDetail(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
		wantStack bool
	}{
		{"client error", http.StatusConflict, "WARN", false},
		{"server fault", http.StatusInternalServerError, "ERROR", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, buf := newLoggedEngine(t)
			engine.PATCH("/api/appointments/:id", func(c *gin.Context) {
				err := errs.Wrap(errors.New("connection reset"), "find appointment")
				httperr.AbortWithError(c, tt.status, err, "failed", nil)
			})

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/appointments/a-1", nil))

			entry := completedLine(t, buf)
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "a-1", entry["appointment_id"])
			assert.Contains(t, entry["errors"], "find appointment")
			if !tt.wantStack {
				assert.NotContains(t, entry, "stack")
				return
			}
			stack, ok := entry["stack"].([]any)
			require.True(t, ok)
			require.NotEmpty(t, stack)
			assert.Contains(t, stack[0], "find appointment")
		})
	}
}

func TestLoggingMiddleware_GeneratesRequestID(t *testing.T) {
	engine, buf := newLoggedEngine(t)
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	id := w.Header().Get("X-Request-ID")
	assert.Regexp(t, `^\d{14}-[0-9a-f]{8}$`, id)
	assert.Equal(t, id, completedLine(t, buf)["request_id"])
}
