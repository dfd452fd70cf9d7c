package provider_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/otel/mocks"
	"agenda/infras/provider"
	providerMocks "agenda/infras/provider/mocks"
)

func clientConfig(apiURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Provider.APIBaseURL = apiURL
	cfg.Provider.RequestTimeoutSeconds = 5

	return cfg
}

func TestClient_GetSlots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookable_slots", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "svc-1", r.URL.Query().Get("service_id"))
		assert.Equal(t, "staff-1", r.URL.Query().Get("staff_id"))
		assert.Equal(t, "2026-09-01", r.URL.Query().Get("date"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"times":["09:00","09:30","10:00"]}`))
	}))
	defer server.Close()

	tokens := providerMocks.NewMockTokenSource(ctrl)
	tokens.EXPECT().AccessToken(gomock.Any()).Return("test-token", nil)

	client := provider.NewClient(clientConfig(server.URL), tokens, mocks.NewOtel())

	slots, err := client.GetSlots(context.Background(), provider.SlotQuery{
		ServiceID: "svc-1",
		StaffID:   "staff-1",
		Date:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slots)
}

func TestClient_GetSlots_RateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	tokens := providerMocks.NewMockTokenSource(ctrl)
	tokens.EXPECT().AccessToken(gomock.Any()).Return("test-token", nil)

	client := provider.NewClient(clientConfig(server.URL), tokens, mocks.NewOtel())

	_, err := client.GetSlots(context.Background(), provider.SlotQuery{
		ServiceID: "svc-1",
		StaffID:   "staff-1",
		Date:      time.Now(),
	})

	require.Error(t, err)
	assert.True(t, provider.IsRateLimited(err))
}

func TestClient_CreateAppointment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/appointments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"apt-42"}`))
	}))
	defer server.Close()

	tokens := providerMocks.NewMockTokenSource(ctrl)
	tokens.EXPECT().AccessToken(gomock.Any()).Return("test-token", nil)

	client := provider.NewClient(clientConfig(server.URL), tokens, mocks.NewOtel())

	id, err := client.CreateAppointment(context.Background(), provider.AppointmentRequest{
		ServiceID: "svc-1",
		StaffID:   "staff-1",
		From:      time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		To:        time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
		Timezone:  "UTC",
		Customer: provider.CustomerDetails{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "apt-42", id)
}

func TestClient_CreateAppointment_EmptyBookingID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	tokens := providerMocks.NewMockTokenSource(ctrl)
	tokens.EXPECT().AccessToken(gomock.Any()).Return("test-token", nil)

	client := provider.NewClient(clientConfig(server.URL), tokens, mocks.NewOtel())

	_, err := client.CreateAppointment(context.Background(), provider.AppointmentRequest{})

	require.Error(t, err)

	var apiErr *provider.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}
