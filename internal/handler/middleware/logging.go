package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/pkg/tz"

	"github.com/gin-gonic/gin"
)

const (
	requestIDHeader = "X-Request-ID"
	maxStackLines   = 12
)

// Path parameters logged under the name the rest of the service logs them with.
var pathParamAttrs = []struct {
	param string
	key   string
}{
	{"salonId", "salon_id"},
	{"professionalId", "professional_id"},
	{"id", "appointment_id"},
	{"ruleId", "rule_id"},
	{"overrideId", "override_id"},
}

type Logger struct {
	logger   *slog.Logger
	cfg      config.LogConfig
	timezone *time.Location
}

func (l *Logger) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = l.generateRequestID()
		}

		c.Set("request_id", requestID)
		c.Header(requestIDHeader, requestID)

		logAttrs := append(requestAttrs(c, requestID), scheduleAttrs(c)...)
		l.logger.LogAttrs(c.Request.Context(), slog.LevelDebug, "Request started", logAttrs...)

		c.Next()

		statusCode := c.Writer.Status()
		responseAttrs := append(logAttrs,
			slog.Int("status_code", statusCode),
			slog.Duration("duration", time.Since(startTime)),
		)
		if responseSize := c.Writer.Size(); responseSize > 0 {
			responseAttrs = append(responseAttrs, slog.Int("response_size", responseSize))
		}
		responseAttrs = append(responseAttrs, errorAttrs(c, statusCode)...)

		l.logger.LogAttrs(c.Request.Context(), levelFor(statusCode), "Request completed", responseAttrs...)
	}
}

func requestAttrs(c *gin.Context, requestID string) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("request_id", requestID),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("client_ip", c.ClientIP()),
	}
	if route := c.FullPath(); route != "" {
		attrs = append(attrs, slog.String("route", route))
	}
	return attrs
}

// scheduleAttrs carries the ids named in the route so request lines join with use-case logs.
func scheduleAttrs(c *gin.Context) []slog.Attr {
	var attrs []slog.Attr
	for _, p := range pathParamAttrs {
		if v := c.Param(p.param); v != "" {
			attrs = append(attrs, slog.String(p.key, v))
		}
	}
	if date := c.Query("date"); date != "" {
		attrs = append(attrs, slog.String("date", date))
	}
	return attrs
}

// errorAttrs summarizes recorded errors; server faults also get the head of the last error's stack.
func errorAttrs(c *gin.Context, statusCode int) []slog.Attr {
	if len(c.Errors) == 0 {
		return nil
	}
	attrs := []slog.Attr{slog.String("errors", c.Errors.String())}
	if statusCode >= 500 {
		if last := c.Errors.Last(); last != nil {
			attrs = append(attrs, slog.Any("stack", errs.ExtractStackLines(last.Err, maxStackLines)))
		}
	}
	return attrs
}

func levelFor(statusCode int) slog.Level {
	switch {
	case statusCode >= 500:
		return slog.LevelError
	case statusCode >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewLogger(cfg config.LogConfig) *Logger {
	timezone := tz.Location(cfg.TimeZone)

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.In(timezone).Format(cfg.TimeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return &Logger{
		logger:   logger,
		cfg:      cfg,
		timezone: timezone,
	}
}

func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// LoggingMiddleware reuses logger when given, otherwise builds one from cfg.
func LoggingMiddleware(logger *slog.Logger, cfg config.LogConfig) gin.HandlerFunc {
	if logger == nil {
		return NewLogger(cfg).LoggingMiddleware()
	}
	l := &Logger{logger: logger, cfg: cfg, timezone: tz.Location(cfg.TimeZone)}
	return l.LoggingMiddleware()
}

// Request ids sort by salon-local time: yyyymmddhhmmss-<8 hex>.
func (l *Logger) generateRequestID() string {
	timestamp := time.Now().In(l.timezone).Format("20060102150405")

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("%s-fallback-%d", timestamp, time.Now().UnixNano()%100000000)
	}
	return timestamp + "-" + hex.EncodeToString(randomBytes)
}
