package provider

//go:generate go run go.uber.org/mock/mockgen -source=./client.go -destination=./mocks/client_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agenda/config"
	"agenda/infras/otel"
	"agenda/shared/constant"

	"github.com/rs/zerolog/log"
)

// SlotQuery addresses one (service, staff, date) tuple on the provider side.
type SlotQuery struct {
	ServiceID string
	StaffID   string
	Date      time.Time
}

type CustomerDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// AppointmentRequest is the provider's appointment-creation payload.
type AppointmentRequest struct {
	ServiceID        string            `json:"service_id"`
	StaffID          string            `json:"staff_id"`
	From             time.Time         `json:"-"`
	To               time.Time         `json:"-"`
	Timezone         string            `json:"timezone"`
	Customer         CustomerDetails   `json:"customer"`
	AdditionalFields map[string]string `json:"custom_fields,omitempty"`
	Notes            string            `json:"notes,omitempty"`
}

// Client executes authenticated calls against the scheduling provider. It
// never retries; retry policy belongs to callers because availability reads
// are safe to repeat and appointment creation is not.
type Client interface {
	GetSlots(ctx context.Context, query SlotQuery) ([]string, error)
	CreateAppointment(ctx context.Context, req AppointmentRequest) (string, error)
}

type clientImpl struct {
	cfg    *config.Config
	tokens TokenSource
	client *http.Client
	otel   otel.Otel
}

func NewClient(cfg *config.Config, tokens TokenSource, ot otel.Otel) Client {
	return &clientImpl{
		cfg:    cfg,
		tokens: tokens,
		client: &http.Client{
			Timeout: time.Duration(cfg.Provider.RequestTimeoutSeconds) * time.Second,
		},
		otel: ot,
	}
}

type slotsResponse struct {
	Times []string `json:"times"`
}

func (c *clientImpl) GetSlots(ctx context.Context, query SlotQuery) ([]string, error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".GetSlots")
	defer scope.End()

	params := url.Values{}
	params.Set("service_id", query.ServiceID)
	params.Set("staff_id", query.StaffID)
	params.Set("date", query.Date.Format(constant.DayFormat))

	var parsed slotsResponse
	if err := c.do(ctx, http.MethodGet, "/bookable_slots?"+params.Encode(), nil, &parsed); err != nil {
		scope.TraceError(err)

		return nil, err
	}

	return parsed.Times, nil
}

type appointmentPayload struct {
	AppointmentRequest
	From string `json:"from"`
	To   string `json:"to"`
}

type appointmentResponse struct {
	ID string `json:"id"`
}

func (c *clientImpl) CreateAppointment(ctx context.Context, req AppointmentRequest) (string, error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".CreateAppointment")
	defer scope.End()

	payload := appointmentPayload{
		AppointmentRequest: req,
		From:               req.From.Format(time.RFC3339),
		To:                 req.To.Format(time.RFC3339),
	}

	var parsed appointmentResponse
	if err := c.do(ctx, http.MethodPost, "/appointments", payload, &parsed); err != nil {
		scope.TraceError(err)

		return "", err
	}

	if parsed.ID == "" {
		return "", &APIError{StatusCode: http.StatusBadGateway, Body: "provider returned no booking id"}
	}

	return parsed.ID, nil
}

func (c *clientImpl) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode provider request: %w", err)
		}

		reader = bytes.NewReader(encoded)
	}

	endpoint := strings.TrimSuffix(c.cfg.Provider.APIBaseURL, "/") + path

	request, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build provider request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	request.Header.Set("Accept", constant.ContentTypeJSON)

	if body != nil {
		request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	response, err := c.client.Do(request)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read provider response: %w", err)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: response.StatusCode, Body: string(raw)}
		log.Error().Int("status", response.StatusCode).Str("path", path).Msg("provider api error")

		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode provider response: %w", err)
		}
	}

	return nil
}
