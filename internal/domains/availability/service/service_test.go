package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/otel/mocks"
	"agenda/infras/provider"
	providerMocks "agenda/infras/provider/mocks"
	"agenda/internal/domains/availability/model"
	"agenda/internal/domains/availability/model/dto"
	repoMocks "agenda/internal/domains/availability/repository/mocks"
	"agenda/internal/domains/availability/service"
	catalogMocks "agenda/internal/domains/catalog/mocks"
	catalogModel "agenda/internal/domains/catalog/model"
	"agenda/shared/cache"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/timezone"
)

func testService() catalogModel.ServiceConfig {
	return catalogModel.ServiceConfig{
		Type:              "consult",
		Location:          "onsite",
		ProviderServiceID: "svc-100",
		StaffIDs:          []string{"staff-a", "staff-b"},
		PreferredStaffID:  "staff-a",
		DurationMinutes:   30,
	}
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Sync.WindowDays = 1
	cfg.Sync.RangeDays = 3
	cfg.Sync.CallDelayMillis = 0

	return cfg
}

func TestAvailabilityService_SyncAll(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(client *providerMocks.MockClient, repo *repoMocks.MockAvailabilityRepository)
		check     func(t *testing.T, results []dto.ServiceSyncResult)
	}{
		{
			name: "imports valid slots and discards malformed times",
			setupMock: func(client *providerMocks.MockClient, repo *repoMocks.MockAvailabilityRepository) {
				client.EXPECT().
					GetSlots(gomock.Any(), gomock.Any()).
					Return([]string{"10:00", "9am", "25:00", "14:30", "14:30"}, nil)
				client.EXPECT().
					GetSlots(gomock.Any(), gomock.Any()).
					Return([]string{}, nil)

				repo.EXPECT().CreateSyncLog(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().
					UpsertSlotRecord(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, record model.SlotRecord) error {
						if record.StaffID == "staff-a" {
							assert.Equal(t, model.SlotTimes{"10:00", "14:30"}, record.Slots)
							assert.Equal(t, model.SyncStatusSuccess, record.SyncStatus)
						}
						return nil
					}).
					Times(2)
				repo.EXPECT().
					ResolveSlotRecords(gomock.Any(), "consult_onsite", gomock.Any()).
					Return([]model.SlotRecord{
						{StaffID: "staff-a", SyncStatus: model.SyncStatusSuccess, Slots: model.SlotTimes{"10:00", "14:30"}},
						{StaffID: "staff-b", SyncStatus: model.SyncStatusSuccess, Slots: model.SlotTimes{}},
					}, nil)
				repo.EXPECT().
					UpsertDayAvailability(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, day model.DayAvailability) error {
						assert.True(t, day.HasAvailability)
						return nil
					})
				repo.EXPECT().DeletePast(gomock.Any(), "consult_onsite", gomock.Any()).Return(nil)
				repo.EXPECT().UpdateSyncLog(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, results []dto.ServiceSyncResult) {
				require.Len(t, results, 1)
				assert.True(t, results[0].Success)
				assert.Equal(t, 2, results[0].APICallsMade)
				assert.Equal(t, 2, results[0].TotalSlotsImported)
				assert.Equal(t, 0, results[0].APIErrorsCount)
			},
		},
		{
			name: "provider failures are stored as error rows and counted",
			setupMock: func(client *providerMocks.MockClient, repo *repoMocks.MockAvailabilityRepository) {
				client.EXPECT().
					GetSlots(gomock.Any(), gomock.Any()).
					Return(nil, &provider.APIError{StatusCode: 429, Body: "slow down"})
				client.EXPECT().
					GetSlots(gomock.Any(), gomock.Any()).
					Return(nil, &provider.APIError{StatusCode: 500, Body: "boom"})

				repo.EXPECT().CreateSyncLog(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().
					UpsertSlotRecord(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, record model.SlotRecord) error {
						assert.Equal(t, model.SyncStatusError, record.SyncStatus)
						assert.Empty(t, record.Slots)
						assert.NotEmpty(t, record.ErrorDetail)
						return nil
					}).
					Times(2)
				repo.EXPECT().
					ResolveSlotRecords(gomock.Any(), "consult_onsite", gomock.Any()).
					Return([]model.SlotRecord{
						{StaffID: "staff-a", SyncStatus: model.SyncStatusError},
						{StaffID: "staff-b", SyncStatus: model.SyncStatusError},
					}, nil)
				repo.EXPECT().
					UpsertDayAvailability(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, day model.DayAvailability) error {
						assert.False(t, day.HasAvailability)
						return nil
					})
				repo.EXPECT().DeletePast(gomock.Any(), "consult_onsite", gomock.Any()).Return(nil)
				repo.EXPECT().UpdateSyncLog(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, results []dto.ServiceSyncResult) {
				require.Len(t, results, 1)
				assert.True(t, results[0].Success)
				assert.Equal(t, 1, results[0].RateLimitErrorsCount)
				assert.Equal(t, 1, results[0].APIErrorsCount)
				assert.Equal(t, 0, results[0].TotalSlotsImported)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := repoMocks.NewMockAvailabilityRepository(ctrl)
			mockClient := providerMocks.NewMockClient(ctrl)
			mockRegistry := catalogMocks.NewMockRegistry(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockOtel := mocks.NewOtel()

			mockRegistry.EXPECT().All().Return([]catalogModel.ServiceConfig{testService()})
			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			tt.setupMock(mockClient, mockRepo)

			svc := service.New(mockRepo, mockRegistry, mockClient, testConfig(), mockCache, mockOtel)
			results := svc.SyncAll(context.Background())

			tt.check(t, results)
		})
	}
}

func TestAvailabilityService_SyncAll_ServiceIsolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repoMocks.NewMockAvailabilityRepository(ctrl)
	mockClient := providerMocks.NewMockClient(ctrl)
	mockRegistry := catalogMocks.NewMockRegistry(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	first := testService()
	second := catalogModel.ServiceConfig{
		Type:              "prp",
		Location:          "online",
		ProviderServiceID: "svc-200",
		StaffIDs:          []string{"staff-c"},
	}

	mockRegistry.EXPECT().All().Return([]catalogModel.ServiceConfig{first, second})
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	// First service: the slot upsert itself fails, marking the run failed.
	mockClient.EXPECT().GetSlots(gomock.Any(), gomock.Any()).Return([]string{"10:00"}, nil).Times(2)
	mockRepo.EXPECT().CreateSyncLog(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	mockRepo.EXPECT().
		UpsertSlotRecord(gomock.Any(), gomock.Any()).
		Return(errors.New("write failed")).
		Times(2)
	mockRepo.EXPECT().
		ResolveSlotRecords(gomock.Any(), first.Key(), gomock.Any()).
		Return(nil, nil)
	mockRepo.EXPECT().UpsertDayAvailability(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	mockRepo.EXPECT().DeletePast(gomock.Any(), first.Key(), gomock.Any()).Return(nil)
	mockRepo.EXPECT().UpdateSyncLog(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	// Second service still syncs cleanly.
	mockClient.EXPECT().GetSlots(gomock.Any(), gomock.Any()).Return([]string{"09:00"}, nil)
	mockRepo.EXPECT().UpsertSlotRecord(gomock.Any(), gomock.Any()).Return(nil)
	mockRepo.EXPECT().
		ResolveSlotRecords(gomock.Any(), second.Key(), gomock.Any()).
		Return([]model.SlotRecord{{StaffID: "staff-c", SyncStatus: model.SyncStatusSuccess, Slots: model.SlotTimes{"09:00"}}}, nil)
	mockRepo.EXPECT().DeletePast(gomock.Any(), second.Key(), gomock.Any()).Return(nil)

	svc := service.New(mockRepo, mockRegistry, mockClient, testConfig(), mockCache, mockOtel)
	results := svc.SyncAll(context.Background())

	require.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.Equal(t, 1, results[1].TotalSlotsImported)
}

func TestAvailabilityService_VerifySlot(t *testing.T) {
	tests := []struct {
		name          string
		reqTime       string
		staffID       string
		setupMock     func(client *providerMocks.MockClient, repo *repoMocks.MockAvailabilityRepository)
		wantAvailable bool
		wantErr       bool
	}{
		{
			name:    "slot still available",
			reqTime: "10:00",
			staffID: "staff-a",
			setupMock: func(client *providerMocks.MockClient, repo *repoMocks.MockAvailabilityRepository) {
				client.EXPECT().
					GetSlots(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, query provider.SlotQuery) ([]string, error) {
						if query.StaffID == "staff-a" {
							return []string{"10:00", "11:00"}, nil
						}
						return []string{"12:00"}, nil
					}).
					Times(2)
				repo.EXPECT().UpsertSlotRecord(gomock.Any(), gomock.Any()).Return(nil).Times(2)
				repo.EXPECT().ResolveSlotRecords(gomock.Any(), "consult_onsite", gomock.Any()).Return(nil, nil)
				repo.EXPECT().UpsertDayAvailability(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantAvailable: true,
		},
		{
			name:    "slot taken in the meantime",
			reqTime: "10:00",
			staffID: "staff-a",
			setupMock: func(client *providerMocks.MockClient, repo *repoMocks.MockAvailabilityRepository) {
				client.EXPECT().
					GetSlots(gomock.Any(), gomock.Any()).
					Return([]string{"11:00"}, nil).
					Times(2)
				repo.EXPECT().UpsertSlotRecord(gomock.Any(), gomock.Any()).Return(nil).Times(2)
				repo.EXPECT().ResolveSlotRecords(gomock.Any(), "consult_onsite", gomock.Any()).Return(nil, nil)
				repo.EXPECT().UpsertDayAvailability(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantAvailable: false,
		},
		{
			name:    "provider unreachable reports available",
			reqTime: "10:00",
			staffID: "staff-a",
			setupMock: func(client *providerMocks.MockClient, repo *repoMocks.MockAvailabilityRepository) {
				client.EXPECT().
					GetSlots(gomock.Any(), gomock.Any()).
					Return(nil, &provider.APIError{StatusCode: 500, Body: "boom"}).
					Times(2)
				repo.EXPECT().UpsertSlotRecord(gomock.Any(), gomock.Any()).Return(nil).Times(2)
				repo.EXPECT().ResolveSlotRecords(gomock.Any(), "consult_onsite", gomock.Any()).Return(nil, nil)
				repo.EXPECT().UpsertDayAvailability(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantAvailable: true,
		},
		{
			name:      "staff not configured for service",
			reqTime:   "10:00",
			staffID:   "staff-z",
			setupMock: func(client *providerMocks.MockClient, repo *repoMocks.MockAvailabilityRepository) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := repoMocks.NewMockAvailabilityRepository(ctrl)
			mockClient := providerMocks.NewMockClient(ctrl)
			mockRegistry := catalogMocks.NewMockRegistry(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			mockOtel := mocks.NewOtel()

			mockRegistry.EXPECT().Resolve("consult", "onsite").Return(testService(), nil)
			mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			tt.setupMock(mockClient, mockRepo)

			svc := service.New(mockRepo, mockRegistry, mockClient, testConfig(), mockCache, mockOtel)

			result, err := svc.VerifySlot(context.Background(), dto.VerifySlotRequest{
				ServiceType: "consult",
				Location:    "onsite",
				Date:        time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
				Time:        tt.reqTime,
				StaffID:     tt.staffID,
			})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, result.Success)
			assert.Equal(t, tt.wantAvailable, result.SlotStillAvailable)
			assert.NotEmpty(t, result.RefreshedAt)
		})
	}
}

func TestAvailabilityService_GetDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repoMocks.NewMockAvailabilityRepository(ctrl)
	mockClient := providerMocks.NewMockClient(ctrl)
	mockRegistry := catalogMocks.NewMockRegistry(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockRegistry.EXPECT().Resolve("consult", "onsite").Return(testService(), nil)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	mockRepo.EXPECT().
		ResolveSlotRecords(gomock.Any(), "consult_onsite", gomock.Any()).
		Return([]model.SlotRecord{
			{StaffID: "staff-a", SyncStatus: model.SyncStatusSuccess, Slots: model.SlotTimes{"14:30", "10:00"}},
			{StaffID: "staff-b", SyncStatus: model.SyncStatusError, Slots: model.SlotTimes{"09:00"}},
		}, nil)

	svc := service.New(mockRepo, mockRegistry, mockClient, testConfig(), mockCache, mockOtel)

	result, err := svc.GetDay(context.Background(), dto.DayAvailabilityRequest{
		ServiceType: "consult",
		Location:    "onsite",
		Date:        "2026-09-07",
	})

	require.NoError(t, err)
	// Error rows contribute nothing even when they carry leftover slots.
	assert.Equal(t, []string{"10:00", "14:30"}, result.AvailableSlots)
	assert.Equal(t, "consult", result.Service.Type)
	assert.Equal(t, 30, result.Service.DurationMinutes)
}

func TestAvailabilityService_GetRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repoMocks.NewMockAvailabilityRepository(ctrl)
	mockClient := providerMocks.NewMockClient(ctrl)
	mockRegistry := catalogMocks.NewMockRegistry(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockRegistry.EXPECT().Resolve("consult", "onsite").Return(testService(), nil)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tomorrow := timezone.Now().AddDate(0, 0, 1)

	mockRepo.EXPECT().
		ResolveDayRange(gomock.Any(), "consult_onsite", gomock.Any(), gomock.Any()).
		Return([]model.DayAvailability{
			{ServiceKey: "consult_onsite", SlotDate: tomorrow, HasAvailability: true},
		}, nil)

	svc := service.New(mockRepo, mockRegistry, mockClient, testConfig(), mockCache, mockOtel)

	result, err := svc.GetRange(context.Background(), dto.RangeAvailabilityRequest{
		ServiceType: "consult",
		Location:    "onsite",
	})

	require.NoError(t, err)
	// Every date in the window is present, defaulting to unavailable.
	assert.Len(t, result.Days, 4)
	assert.False(t, result.Days[0].HasAvailability)
	assert.True(t, result.Days[1].HasAvailability)
}

func TestBusinessDays(t *testing.T) {
	friday := time.Date(2026, 9, 4, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		from     time.Time
		count    int
		expected []time.Time
	}{
		{
			name:  "window across a weekend skips saturday and sunday",
			from:  friday,
			count: 5,
			expected: []time.Time{
				time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "saturday start rolls to monday",
			from:  time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC),
			count: 2,
			expected: []time.Time{
				time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:     "zero count yields no days",
			from:     friday,
			count:    0,
			expected: []time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := service.BusinessDays(tt.from, tt.count)

			assert.Equal(t, tt.expected, days)

			for _, day := range days {
				assert.NotEqual(t, time.Saturday, day.Weekday())
				assert.NotEqual(t, time.Sunday, day.Weekday())
				assert.Equal(t, 0, day.Hour())
			}
		})
	}
}
