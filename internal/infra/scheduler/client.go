package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/infra/repository"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

const defaultTimeout = 20 * time.Second

var (
	errNotConfigured       = errors.New("scheduler: external scheduler is not configured for salon")
	errUnknownProfessional = errors.New("scheduler: professional has no external mapping")
)

type SettingsSource interface {
	FindSettings(ctx context.Context, salonID uuid.UUID, provider string) (*repository.IntegrationSettings, error)
}

type settings struct {
	APIKey          string `json:"api_key"`
	EstablishmentID string `json:"establishment_id"`
	// Professionals maps our professional ids to the platform's ids.
	Professionals map[string]string `json:"professionals"`
	Services      map[string]string `json:"services"`
}

func (s settings) professional(id uuid.UUID) (string, bool) {
	ext, ok := s.Professionals[id.String()]
	return ext, ok && ext != ""
}

// Client is a REST client for a Trinks-style booking platform.
type Client struct {
	baseURL    string
	httpClient *http.Client
	settings   SettingsSource
	enabled    bool
	logger     *slog.Logger
}

func NewClient(src SettingsSource, cfg config.ExternalSchedulerConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		settings:   src,
		enabled:    cfg.Enabled,
		logger:     logger,
	}
}

func (c *Client) load(ctx context.Context, salonID uuid.UUID) (settings, error) {
	var s settings
	if !c.enabled {
		return s, errNotConfigured
	}
	row, err := c.settings.FindSettings(ctx, salonID, repository.ProviderScheduler)
	if err != nil {
		return s, fmt.Errorf("scheduler: load settings: %w", err)
	}
	if row == nil || !row.Enabled {
		return s, errNotConfigured
	}
	if err := json.Unmarshal(row.Config, &s); err != nil {
		return s, fmt.Errorf("scheduler: decode settings: %w", err)
	}
	if strings.TrimSpace(s.APIKey) == "" || strings.TrimSpace(s.EstablishmentID) == "" {
		return s, errNotConfigured
	}
	return s, nil
}

func (c *Client) IsConfigured(ctx context.Context, salonID uuid.UUID) bool {
	_, err := c.load(ctx, salonID)
	if err != nil && !errors.Is(err, errNotConfigured) {
		c.logger.Warn("scheduler settings lookup failed", "salon_id", salonID, "error", err.Error())
	}
	return err == nil
}

// BusySlots returns the platform's non-cancelled bookings of the professional in [start, end).
// A professional without a mapping has nothing booked on the platform.
func (c *Client) BusySlots(ctx context.Context, salonID, professionalID uuid.UUID, start, end time.Time) ([]vo.DateRange, error) {
	s, err := c.load(ctx, salonID)
	if err != nil {
		return nil, err
	}
	extPro, ok := s.professional(professionalID)
	if !ok {
		return nil, nil
	}

	q := url.Values{}
	q.Set("profissionalId", extPro)
	q.Set("dataInicio", start.UTC().Format(time.RFC3339))
	q.Set("dataFim", end.UTC().Format(time.RFC3339))

	var out listResponse
	if err := c.do(ctx, s, http.MethodGet, "/agendamentos?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}

	busy := make([]vo.DateRange, 0, len(out.Data))
	for _, b := range out.Data {
		if b.isCancelled() {
			continue
		}
		from, err := time.Parse(time.RFC3339, b.StartsAt)
		if err != nil || b.DurationMinutes <= 0 {
			c.logger.Warn("skipping malformed external booking", "salon_id", salonID, "external_id", b.ID)
			continue
		}
		r, err := vo.NewDateRange(from.UTC(), from.UTC().Add(time.Duration(b.DurationMinutes)*time.Minute))
		if err != nil {
			continue
		}
		busy = append(busy, r)
	}
	return busy, nil
}

func (c *Client) CreateAppointment(ctx context.Context, salonID uuid.UUID, ev shared.ExternalEvent) (string, error) {
	s, err := c.load(ctx, salonID)
	if err != nil {
		return "", err
	}
	body, err := toBooking(s, ev)
	if err != nil {
		return "", err
	}
	var out bookingResponse
	if err := c.do(ctx, s, http.MethodPost, "/agendamentos", body, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errors.New("scheduler: create returned no id")
	}
	return out.ID, nil
}

func (c *Client) UpdateAppointment(ctx context.Context, salonID uuid.UUID, externalID string, ev shared.ExternalEvent) error {
	s, err := c.load(ctx, salonID)
	if err != nil {
		return err
	}
	body, err := toBooking(s, ev)
	if err != nil {
		return err
	}
	return c.do(ctx, s, http.MethodPut, "/agendamentos/"+url.PathEscape(externalID), body, nil)
}

func (c *Client) DeleteAppointment(ctx context.Context, salonID uuid.UUID, externalID string) error {
	s, err := c.load(ctx, salonID)
	if err != nil {
		return err
	}
	return c.do(ctx, s, http.MethodDelete, "/agendamentos/"+url.PathEscape(externalID), nil, nil)
}

func toBooking(s settings, ev shared.ExternalEvent) (*bookingRequest, error) {
	extPro, ok := s.professional(ev.ProfessionalID)
	if !ok {
		return nil, errUnknownProfessional
	}
	return &bookingRequest{
		ProfessionalID:  extPro,
		ServiceID:       s.Services[ev.ServiceID.String()],
		CustomerName:    ev.CustomerName,
		CustomerPhone:   ev.CustomerPhone,
		StartsAt:        ev.Start.UTC().Format(time.RFC3339),
		DurationMinutes: int(ev.End.Sub(ev.Start) / time.Minute),
		Notes:           ev.Description,
		ExternalRef:     ev.AppointmentID.String(),
	}, nil
}

func (c *Client) do(ctx context.Context, s settings, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("scheduler: marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("scheduler: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Api-Key", s.APIKey)
	req.Header.Set("estabelecimentoId", s.EstablishmentID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Mark(fmt.Errorf("scheduler: http request: %w", err), errs.ErrProviderUnavailable)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("scheduler: read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound && method != http.MethodGet {
		return fmt.Errorf("scheduler: %s %s: %w", method, path, shared.ErrExternalEventNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(respBody)
		if len(msg) > 300 {
			msg = msg[:300]
		}
		err := fmt.Errorf("scheduler: status %d: %s", resp.StatusCode, msg)
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return errs.Mark(err, errs.ErrProviderUnavailable)
		}
		return err
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("scheduler: unmarshal response: %w", err)
	}
	return nil
}
