package scheduler

import (
	"context"
	"fmt"

	"agenda/config"
	"agenda/infras/otel"
	availabilityService "agenda/internal/domains/availability/service"
	bookingService "agenda/internal/domains/booking/service"
	"agenda/shared/constant"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler owns the recurring jobs: the nightly availability sync and the
// sweep that times out abandoned booking intents.
type Scheduler struct {
	cron         *cron.Cron
	availability availabilityService.Availability
	booking      bookingService.Booking
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	availability availabilityService.Availability,
	booking bookingService.Booking,
	cfg *config.Config,
	otelSdk otel.Otel,
) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		availability: availability,
		booking:      booking,
		cfg:          cfg,
		otel:         otelSdk,
	}
}

func (s *Scheduler) Start() error {
	if s.cfg.Sync.Enable {
		if _, err := s.cron.AddFunc(s.cfg.Sync.Schedule, s.runSync); err != nil {
			return fmt.Errorf("failed to schedule availability sync: %w", err)
		}

		log.Info().Str("schedule", s.cfg.Sync.Schedule).Msg("Availability sync scheduled")
	}

	if _, err := s.cron.AddFunc(s.cfg.Booking.ExpirySchedule, s.runExpiry); err != nil {
		return fmt.Errorf("failed to schedule booking expiry sweep: %w", err)
	}

	log.Info().Str("schedule", s.cfg.Booking.ExpirySchedule).Msg("Booking expiry sweep scheduled")

	s.cron.Start()

	return nil
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runSync() {
	ctx, scope := s.otel.NewScope(context.Background(), constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".runSync")
	defer scope.End()

	log.Info().Msg("Starting scheduled availability sync")

	results := s.availability.SyncAll(ctx)

	for _, result := range results {
		event := log.Info()
		if !result.Success {
			event = log.Error()
		}

		event.
			Str("service", result.Service).
			Bool("success", result.Success).
			Int("slots_imported", result.TotalSlotsImported).
			Int("api_calls", result.APICallsMade).
			Int("api_errors", result.APIErrorsCount).
			Int("rate_limit_errors", result.RateLimitErrorsCount).
			Msg("Availability sync finished for service")
	}
}

func (s *Scheduler) runExpiry() {
	ctx, scope := s.otel.NewScope(context.Background(), constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".runExpiry")
	defer scope.End()

	if _, err := s.booking.ExpireStale(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("Booking expiry sweep failed")
	}
}
