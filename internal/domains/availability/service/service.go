package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"time"

	"agenda/config"
	"agenda/infras/otel"
	"agenda/infras/provider"
	"agenda/internal/domains/availability/model"
	"agenda/internal/domains/availability/model/dto"
	"agenda/internal/domains/availability/repository"
	catalogModel "agenda/internal/domains/catalog/model"
	catalogService "agenda/internal/domains/catalog/service"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cachePrefixAvailability = "availability"
	cacheDayAvailability    = "availability:day"
	cacheRangeAvailability  = "availability:range"
)

type Availability interface {
	SyncAll(ctx context.Context) []dto.ServiceSyncResult
	VerifySlot(ctx context.Context, req dto.VerifySlotRequest) (dto.VerifySlotResponse, error)
	GetDay(ctx context.Context, req dto.DayAvailabilityRequest) (dto.DayAvailabilityResponse, error)
	GetRange(ctx context.Context, req dto.RangeAvailabilityRequest) (dto.RangeAvailabilityResponse, error)
}

type serviceImpl struct {
	repo     repository.AvailabilityRepository
	registry catalogService.Registry
	client   provider.Client
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.AvailabilityRepository,
	registry catalogService.Registry,
	client provider.Client,
	cfg *config.Config,
	redisCache cache.RedisCache,
	otelSdk otel.Otel,
) Availability {
	return &serviceImpl{
		repo:     repo,
		registry: registry,
		client:   client,
		cfg:      cfg,
		cache:    redisCache,
		otel:     otelSdk,
	}
}

func (s *serviceImpl) GetDay(ctx context.Context, req dto.DayAvailabilityRequest) (result dto.DayAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDay")
	defer scope.End()
	defer scope.TraceIfError(err)

	svc, err := s.registry.Resolve(req.ServiceType, req.Location)
	if err != nil {
		return result, err //nolint:wrapcheck
	}

	date, err := timezone.Parse(constant.DayFormat, req.Date)
	if err != nil {
		return result, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheDayAvailability, svc.Key(), req.Date)
	if cacheErr := s.cache.Get(ctx, cacheKey, &result); cacheErr == nil {
		return result, nil
	}

	records, err := s.repo.ResolveSlotRecords(ctx, svc.Key(), date)
	if err != nil {
		log.Error().Err(err).Str("service", svc.Key()).Msg("failed to resolve slot records")

		return result, fmt.Errorf("failed to resolve slot records: %w", err)
	}

	result = dto.DayAvailabilityResponse{
		Date:           req.Date,
		AvailableSlots: mergeSlots(records),
		Service: dto.ServiceInfo{
			Type:            string(svc.Type),
			Location:        string(svc.Location),
			DurationMinutes: svc.DurationMinutes,
		},
	}

	go func(response dto.DayAvailabilityResponse) {
		bgCtx := context.WithoutCancel(ctx)
		if cacheErr := s.cache.Save(bgCtx, cacheKey, response, s.cfg.Cache.TTL); cacheErr != nil {
			log.Warn().Err(cacheErr).Str("key", cacheKey).Msg("failed to save day availability cache")
		}
	}(result)

	return result, nil
}

func (s *serviceImpl) GetRange(ctx context.Context, req dto.RangeAvailabilityRequest) (result dto.RangeAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRange")
	defer scope.End()
	defer scope.TraceIfError(err)

	svc, err := s.registry.Resolve(req.ServiceType, req.Location)
	if err != nil {
		return result, err //nolint:wrapcheck
	}

	today := dayStart(timezone.Now())
	until := today.AddDate(0, 0, s.cfg.Sync.RangeDays)

	cacheKey := shared.BuildCacheKey(cacheRangeAvailability, svc.Key(), today.Format(constant.DayFormat))
	if cacheErr := s.cache.Get(ctx, cacheKey, &result); cacheErr == nil {
		return result, nil
	}

	days, err := s.repo.ResolveDayRange(ctx, svc.Key(), today, until)
	if err != nil {
		log.Error().Err(err).Str("service", svc.Key()).Msg("failed to resolve day availability range")

		return result, fmt.Errorf("failed to resolve day availability range: %w", err)
	}

	known := map[string]bool{}
	for _, day := range days {
		known[day.SlotDate.Format(constant.DayFormat)] = day.HasAvailability
	}

	result.Days = make([]dto.DayFlag, 0, s.cfg.Sync.RangeDays)

	for date := today; !date.After(until); date = date.AddDate(0, 0, 1) {
		key := date.Format(constant.DayFormat)
		result.Days = append(result.Days, dto.DayFlag{
			Date:            key,
			HasAvailability: known[key],
		})
	}

	go func(response dto.RangeAvailabilityResponse) {
		bgCtx := context.WithoutCancel(ctx)
		if cacheErr := s.cache.Save(bgCtx, cacheKey, response, s.cfg.Cache.TTL); cacheErr != nil {
			log.Warn().Err(cacheErr).Str("key", cacheKey).Msg("failed to save range availability cache")
		}
	}(result)

	return result, nil
}

// mergeSlots unions the successful per-staff slot lists for one day into a
// single sorted, de-duplicated list. Error rows contribute nothing.
func mergeSlots(records []model.SlotRecord) []string {
	seen := map[string]struct{}{}

	for _, record := range records {
		if record.SyncStatus != model.SyncStatusSuccess {
			continue
		}

		for _, slot := range record.Slots {
			seen[slot] = struct{}{}
		}
	}

	merged := make([]string, 0, len(seen))
	for slot := range seen {
		merged = append(merged, slot)
	}

	slices.Sort(merged)

	return merged
}

func hasAnySlot(records []model.SlotRecord) bool {
	for _, record := range records {
		if record.SyncStatus == model.SyncStatusSuccess && len(record.Slots) > 0 {
			return true
		}
	}

	return false
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// recomputeDay rebuilds the aggregated day flag from the slot rows currently
// stored for the day. The flag is derived state and never edited directly.
func (s *serviceImpl) recomputeDay(ctx context.Context, svc catalogModel.ServiceConfig, date time.Time) error {
	records, err := s.repo.ResolveSlotRecords(ctx, svc.Key(), date)
	if err != nil {
		return fmt.Errorf("failed to resolve slot records: %w", err)
	}

	day := model.DayAvailability{
		ServiceKey:      svc.Key(),
		SlotDate:        date,
		HasAvailability: hasAnySlot(records),
		SyncedAt:        timezone.Now(),
	}

	if err := s.repo.UpsertDayAvailability(ctx, day); err != nil {
		return fmt.Errorf("failed to upsert day availability: %w", err)
	}

	return nil
}

func (s *serviceImpl) invalidateCaches(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cachePrefixAvailability)
}
