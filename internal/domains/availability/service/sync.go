package service

import (
	"context"
	"slices"
	"time"

	"agenda/infras/provider"
	"agenda/internal/domains/availability/model"
	"agenda/internal/domains/availability/model/dto"
	catalogModel "agenda/internal/domains/catalog/model"
	"agenda/shared/constant"
	"agenda/shared/timezone"
	"agenda/shared/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SyncAll refreshes the slot cache for every configured service over the
// forward booking window. Services are synced independently: a failure in
// one never aborts the others.
func (s *serviceImpl) SyncAll(ctx context.Context) []dto.ServiceSyncResult {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SyncAll")
	defer scope.End()

	days := BusinessDays(timezone.Now(), s.cfg.Sync.WindowDays)
	services := s.registry.All()
	results := make([]dto.ServiceSyncResult, 0, len(services))

	for _, svc := range services {
		results = append(results, s.syncService(ctx, svc, days))
	}

	go s.invalidateCaches(context.WithoutCancel(ctx))

	return results
}

func (s *serviceImpl) syncService(ctx context.Context, svc catalogModel.ServiceConfig, days []time.Time) dto.ServiceSyncResult {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".syncService")
	defer scope.End()

	result := dto.ServiceSyncResult{Service: svc.Key(), Success: true}

	syncLog := model.SyncLog{
		ID:          uuid.NewString(),
		ServiceKey:  svc.Key(),
		Status:      model.SyncRunStatusRunning,
		DaysChecked: len(days),
		StartedAt:   timezone.Now(),
	}

	if err := s.repo.CreateSyncLog(ctx, syncLog); err != nil {
		log.Warn().Err(err).Str("service", svc.Key()).Msg("failed to open sync log")
	}

	for _, day := range days {
		if ctx.Err() != nil {
			result.Success = false
			result.Error = ctx.Err().Error()

			break
		}

		for _, staffID := range svc.StaffIDs {
			imported := s.fetchAndStore(ctx, svc, staffID, day, &result)
			result.TotalSlotsImported += imported
			result.APICallsMade++

			s.pause(ctx)
		}

		if err := s.recomputeDay(ctx, svc, day); err != nil {
			log.Error().Err(err).Str("service", svc.Key()).Str("date", day.Format(constant.DayFormat)).Msg("failed to recompute day availability")

			result.Success = false
			result.Error = err.Error()
		}
	}

	if err := s.repo.DeletePast(ctx, svc.Key(), dayStart(timezone.Now()).AddDate(0, 0, -1)); err != nil {
		log.Error().Err(err).Str("service", svc.Key()).Msg("failed to delete past availability rows")

		result.Success = false
		result.Error = err.Error()
	}

	syncLog.Status = model.SyncRunStatusCompleted
	if !result.Success {
		syncLog.Status = model.SyncRunStatusFailed
		syncLog.ErrorMessage = result.Error
	}

	finishedAt := timezone.Now()
	syncLog.FinishedAt = &finishedAt
	syncLog.APICalls = result.APICallsMade
	syncLog.SlotsImported = result.TotalSlotsImported
	syncLog.APIErrors = result.APIErrorsCount
	syncLog.RateLimitErrors = result.RateLimitErrorsCount

	if err := s.repo.UpdateSyncLog(ctx, syncLog); err != nil {
		log.Warn().Err(err).Str("service", svc.Key()).Msg("failed to close sync log")
	}

	return result
}

// fetchAndStore pulls one (staff, day) slot list from the provider and
// stores the outcome. Failed fetches produce an explicit error row with an
// empty slot set, so stale slots from a previous run cannot survive an
// outage. Returns the number of slots imported.
func (s *serviceImpl) fetchAndStore(ctx context.Context, svc catalogModel.ServiceConfig, staffID string, day time.Time, result *dto.ServiceSyncResult) int {
	record := model.SlotRecord{
		ServiceKey: svc.Key(),
		StaffID:    staffID,
		SlotDate:   day,
		Slots:      model.SlotTimes{},
		SyncStatus: model.SyncStatusSuccess,
		SyncedAt:   timezone.Now(),
	}

	times, err := s.client.GetSlots(ctx, provider.SlotQuery{
		ServiceID: svc.ProviderServiceID,
		StaffID:   staffID,
		Date:      day,
	})
	if err != nil {
		record.SyncStatus = model.SyncStatusError
		record.ErrorDetail = err.Error()

		if provider.IsRateLimited(err) {
			result.RateLimitErrorsCount++
		} else {
			result.APIErrorsCount++
		}

		log.Warn().Err(err).
			Str("service", svc.Key()).
			Str("staff", staffID).
			Str("date", day.Format(constant.DayFormat)).
			Msg("failed to fetch provider slots")
	} else {
		record.Slots = validSlotTimes(times, svc.Key(), staffID)
	}

	if err := s.repo.UpsertSlotRecord(ctx, record); err != nil {
		log.Error().Err(err).Str("service", svc.Key()).Str("staff", staffID).Msg("failed to upsert slot record")

		result.Success = false
		result.Error = err.Error()

		return 0
	}

	return len(record.Slots)
}

// pause waits the configured inter-call delay, honoring cancellation.
func (s *serviceImpl) pause(ctx context.Context) {
	delay := time.Duration(s.cfg.Sync.CallDelayMillis) * time.Millisecond
	if delay <= 0 {
		return
	}

	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
}

// validSlotTimes keeps only well-formed "HH:MM" values, sorted and
// de-duplicated. Anything else coming back from the provider is discarded
// with a log line rather than persisted.
func validSlotTimes(times []string, serviceKey, staffID string) model.SlotTimes {
	valid := model.SlotTimes{}

	for _, value := range times {
		if !validator.IsSlotTime(value) {
			log.Warn().
				Str("service", serviceKey).
				Str("staff", staffID).
				Str("value", value).
				Msg("discarding malformed slot time from provider")

			continue
		}

		if !slices.Contains(valid, value) {
			valid = append(valid, value)
		}
	}

	slices.Sort(valid)

	return valid
}

// BusinessDays lists the next count weekdays starting from (and including)
// the given day. Weekends are never checked against the provider.
func BusinessDays(from time.Time, count int) []time.Time {
	days := make([]time.Time, 0, count)

	for day := dayStart(from); len(days) < count; day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}

		days = append(days, day)
	}

	return days
}
