package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/infra/repository"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const appointmentIDProperty = "salon_scheduler_appointment_id"

var errNotConfigured = errors.New("calendar: google calendar is not configured for salon")

// SettingsSource yields the per-salon credentials stored in salon_integrations.
type SettingsSource interface {
	FindSettings(ctx context.Context, salonID uuid.UUID, provider string) (*repository.IntegrationSettings, error)
}

type googleSettings struct {
	RefreshToken string `json:"refresh_token"`
	// Used when a professional has no calendar of their own.
	CalendarID string `json:"calendar_id"`
}

// GoogleCalendar talks to Google Calendar on behalf of each salon using the salon's refresh token.
type GoogleCalendar struct {
	settings SettingsSource
	oauth    *oauth2.Config
	enabled  bool
	timeout  time.Duration
	endpoint string
	logger   *slog.Logger
}

func NewGoogleCalendar(settings SettingsSource, cfg config.GoogleConfig, timeout time.Duration, logger *slog.Logger) *GoogleCalendar {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoogleCalendar{
		settings: settings,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gcal.CalendarScope},
		},
		enabled: cfg.Enabled,
		timeout: timeout,
		logger:  logger,
	}
}

func (c *GoogleCalendar) loadSettings(ctx context.Context, salonID uuid.UUID) (googleSettings, error) {
	var gs googleSettings
	if !c.enabled {
		return gs, errNotConfigured
	}
	s, err := c.settings.FindSettings(ctx, salonID, repository.ProviderCalendar)
	if err != nil {
		return gs, fmt.Errorf("calendar: load settings: %w", err)
	}
	if s == nil || !s.Enabled {
		return gs, errNotConfigured
	}
	if err := json.Unmarshal(s.Config, &gs); err != nil {
		return gs, fmt.Errorf("calendar: decode settings: %w", err)
	}
	if strings.TrimSpace(gs.RefreshToken) == "" {
		return gs, errNotConfigured
	}
	return gs, nil
}

func (c *GoogleCalendar) IsConfigured(ctx context.Context, salonID uuid.UUID) bool {
	_, err := c.loadSettings(ctx, salonID)
	if err != nil && !errors.Is(err, errNotConfigured) {
		c.logger.Warn("calendar settings lookup failed", "salon_id", salonID, "error", err.Error())
	}
	return err == nil
}

func (c *GoogleCalendar) service(ctx context.Context, salonID uuid.UUID) (*gcal.Service, googleSettings, error) {
	gs, err := c.loadSettings(ctx, salonID)
	if err != nil {
		return nil, gs, err
	}
	base := &http.Client{Timeout: c.timeout}
	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, base)
	httpClient := oauth2.NewClient(tokenCtx, c.oauth.TokenSource(tokenCtx, &oauth2.Token{RefreshToken: gs.RefreshToken}))

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, gs, fmt.Errorf("calendar: create service: %w", err)
	}
	return svc, gs, nil
}

func resolveRef(ref string, gs googleSettings) string {
	if ref = strings.TrimSpace(ref); ref != "" {
		return ref
	}
	if gs.CalendarID != "" {
		return gs.CalendarID
	}
	return "primary"
}

func (c *GoogleCalendar) FreeBusy(ctx context.Context, salonID uuid.UUID, calendarRef string, start, end time.Time) ([]vo.DateRange, error) {
	svc, gs, err := c.service(ctx, salonID)
	if err != nil {
		return nil, err
	}
	ref := resolveRef(calendarRef, gs)

	resp, err := svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: start.UTC().Format(time.RFC3339),
		TimeMax: end.UTC().Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: ref}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: freebusy: %w", err)
	}

	cal, ok := resp.Calendars[ref]
	if !ok {
		return nil, nil
	}
	if len(cal.Errors) > 0 {
		return nil, fmt.Errorf("calendar: freebusy %s: %s", ref, cal.Errors[0].Reason)
	}

	busy := make([]vo.DateRange, 0, len(cal.Busy))
	for _, p := range cal.Busy {
		from, err1 := time.Parse(time.RFC3339, p.Start)
		to, err2 := time.Parse(time.RFC3339, p.End)
		if err1 != nil || err2 != nil {
			c.logger.Warn("skipping unparsable busy period", "salon_id", salonID, "start", p.Start, "end", p.End)
			continue
		}
		r, err := vo.NewDateRange(from.UTC(), to.UTC())
		if err != nil {
			continue
		}
		busy = append(busy, r)
	}
	return busy, nil
}

func toEvent(ev shared.ExternalEvent) *gcal.Event {
	return &gcal.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Start:       &gcal.EventDateTime{DateTime: ev.Start.Format(time.RFC3339), TimeZone: ev.TimeZone},
		End:         &gcal.EventDateTime{DateTime: ev.End.Format(time.RFC3339), TimeZone: ev.TimeZone},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{appointmentIDProperty: ev.AppointmentID.String()},
		},
	}
}

func (c *GoogleCalendar) CreateEvent(ctx context.Context, salonID uuid.UUID, calendarRef string, ev shared.ExternalEvent) (string, error) {
	svc, gs, err := c.service(ctx, salonID)
	if err != nil {
		return "", err
	}
	created, err := svc.Events.Insert(resolveRef(calendarRef, gs), toEvent(ev)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar: insert event: %w", err)
	}
	return created.Id, nil
}

func (c *GoogleCalendar) UpdateEvent(ctx context.Context, salonID uuid.UUID, calendarRef, eventID string, ev shared.ExternalEvent) error {
	svc, gs, err := c.service(ctx, salonID)
	if err != nil {
		return err
	}
	_, err = svc.Events.Patch(resolveRef(calendarRef, gs), eventID, toEvent(ev)).Context(ctx).Do()
	return mapEventErr("patch", err)
}

func (c *GoogleCalendar) DeleteEvent(ctx context.Context, salonID uuid.UUID, calendarRef, eventID string) error {
	svc, gs, err := c.service(ctx, salonID)
	if err != nil {
		return err
	}
	err = svc.Events.Delete(resolveRef(calendarRef, gs), eventID).Context(ctx).Do()
	return mapEventErr("delete", err)
}

// mapEventErr turns 404 and 410 into shared.ErrExternalEventNotFound; Google answers 410 for already deleted events.
func mapEventErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && (gerr.Code == http.StatusNotFound || gerr.Code == http.StatusGone) {
		return fmt.Errorf("calendar: %s event: %w", op, shared.ErrExternalEventNotFound)
	}
	wrapped := fmt.Errorf("calendar: %s event: %w", op, err)
	if errors.As(err, &gerr) && (gerr.Code >= http.StatusInternalServerError || gerr.Code == http.StatusTooManyRequests) {
		return errs.Mark(wrapped, errs.ErrProviderUnavailable)
	}
	return wrapped
}
