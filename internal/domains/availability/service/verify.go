package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"agenda/infras/provider"
	"agenda/internal/domains/availability/model"
	"agenda/internal/domains/availability/model/dto"
	catalogModel "agenda/internal/domains/catalog/model"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/shared/timezone"

	"github.com/rs/zerolog/log"
)

type staffFetch struct {
	staffID string
	slots   model.SlotTimes
	err     error
}

// VerifySlot re-checks one slot against the provider just before checkout.
// It refreshes every staff member of the service in parallel and writes the
// fresh results through to the cache, so a verification doubles as an eager
// refresh of the whole day.
//
// When the provider cannot be reached for the requested staff member the
// slot is reported available: the booking creation call remains the final
// gate, and refusing to sell on a transient read failure loses real
// bookings.
func (s *serviceImpl) VerifySlot(ctx context.Context, req dto.VerifySlotRequest) (result dto.VerifySlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifySlot")
	defer scope.End()
	defer scope.TraceIfError(err)

	svc, err := s.registry.Resolve(req.ServiceType, req.Location)
	if err != nil {
		return result, err //nolint:wrapcheck
	}

	if !slices.Contains(svc.StaffIDs, req.StaffID) {
		return result, failure.BadRequestFromString(fmt.Sprintf("staff %s is not configured for service %s", req.StaffID, svc.Key())) //nolint:wrapcheck
	}

	date, err := timezone.Parse(constant.DayFormat, req.Date)
	if err != nil {
		return result, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	fetches := s.refreshDay(ctx, svc, date)

	if err := s.recomputeDay(ctx, svc, date); err != nil {
		log.Error().Err(err).Str("service", svc.Key()).Msg("failed to recompute day availability after verification")
	}

	go s.invalidateCaches(context.WithoutCancel(ctx))

	available := true

	for _, fetch := range fetches {
		if fetch.staffID != req.StaffID {
			continue
		}

		if fetch.err != nil {
			log.Warn().Err(fetch.err).
				Str("service", svc.Key()).
				Str("staff", req.StaffID).
				Msg("slot verification fetch failed, reporting slot as available")

			break
		}

		available = slices.Contains(fetch.slots, req.Time)
	}

	return dto.VerifySlotResponse{
		Success:            true,
		SlotStillAvailable: available,
		RefreshedAt:        timezone.Format(timezone.Now(), constant.DateFormat),
	}, nil
}

// refreshDay fetches the day's slots for every staff member of the service
// concurrently and writes each outcome through to the slot cache. A failed
// fetch for one staff member never blocks the others.
func (s *serviceImpl) refreshDay(ctx context.Context, svc catalogModel.ServiceConfig, date time.Time) []staffFetch {
	fetches := make([]staffFetch, len(svc.StaffIDs))

	var wg sync.WaitGroup

	for idx, staffID := range svc.StaffIDs {
		wg.Add(1)

		go func(idx int, staffID string) {
			defer wg.Done()

			slots, err := s.client.GetSlots(ctx, provider.SlotQuery{
				ServiceID: svc.ProviderServiceID,
				StaffID:   staffID,
				Date:      date,
			})

			fetch := staffFetch{staffID: staffID, err: err}
			if err == nil {
				fetch.slots = validSlotTimes(slots, svc.Key(), staffID)
			}

			fetches[idx] = fetch

			record := model.SlotRecord{
				ServiceKey: svc.Key(),
				StaffID:    staffID,
				SlotDate:   date,
				Slots:      model.SlotTimes{},
				SyncStatus: model.SyncStatusSuccess,
				SyncedAt:   timezone.Now(),
			}

			if err != nil {
				record.SyncStatus = model.SyncStatusError
				record.ErrorDetail = err.Error()
			} else {
				record.Slots = fetch.slots
			}

			if upsertErr := s.repo.UpsertSlotRecord(ctx, record); upsertErr != nil {
				log.Error().Err(upsertErr).
					Str("service", svc.Key()).
					Str("staff", staffID).
					Msg("failed to write verified slot record")
			}
		}(idx, staffID)
	}

	wg.Wait()

	return fetches
}
