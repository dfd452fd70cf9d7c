package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"time"

	"agenda/config"
	"agenda/infras/otel"
	"agenda/infras/payment"
	"agenda/infras/provider"
	availabilityDto "agenda/internal/domains/availability/model/dto"
	availabilityRepo "agenda/internal/domains/availability/repository"
	availabilityService "agenda/internal/domains/availability/service"
	"agenda/internal/domains/booking/model"
	"agenda/internal/domains/booking/model/dto"
	"agenda/internal/domains/booking/repository"
	catalogService "agenda/internal/domains/catalog/service"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheVerifyResult       = "booking:verify"
	cachePrefixAvailability = "availability"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	ProcessBySession(ctx context.Context, sessionID string) (dto.ProcessBookingResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	ExpireStale(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo         repository.Booking
	availRepo    availabilityRepo.AvailabilityRepository
	availability availabilityService.Availability
	payment      payment.Client
	client       provider.Client
	registry     catalogService.Registry
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	availRepo availabilityRepo.AvailabilityRepository,
	availability availabilityService.Availability,
	paymentClient payment.Client,
	providerClient provider.Client,
	registry catalogService.Registry,
	cfg *config.Config,
	redisCache cache.RedisCache,
	otelSdk otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		availRepo:    availRepo,
		availability: availability,
		payment:      paymentClient,
		client:       providerClient,
		registry:     registry,
		cfg:          cfg,
		cache:        redisCache,
		otel:         otelSdk,
	}
}

// Create stores a pending intent for a selected slot and kicks off a
// background re-verification of that slot. The verification result is
// cached and consulted when payment completes; an unresolved verification
// never blocks the checkout.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (result dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	svc, err := s.registry.Resolve(req.ServiceType, req.Location)
	if err != nil {
		return result, err //nolint:wrapcheck
	}

	if req.StaffID != "" && !slices.Contains(svc.StaffIDs, req.StaffID) {
		return result, failure.BadRequestFromString(fmt.Sprintf("staff %s is not configured for service %s", req.StaffID, svc.Key())) //nolint:wrapcheck
	}

	intent, err := req.ToModel(svc)
	if err != nil {
		return result, failure.BadRequestFromString(err.Error()) //nolint:wrapcheck
	}

	exists, err := s.repo.SessionExists(ctx, intent.PaymentSessionID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check for existing booking intent")

		return result, fmt.Errorf("failed to check for existing booking intent: %w", err)
	}

	if exists {
		return result, failure.Conflict("a booking intent already exists for this payment session") //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, intent); err != nil {
		log.Error().Err(err).Msg("failed to insert booking intent")

		return result, fmt.Errorf("failed to insert booking intent: %w", err)
	}

	go s.verifyInBackground(context.WithoutCancel(ctx), intent, req)

	return dto.NewBookingResponse(intent, s.registry.StaffName(intent.StaffID)), nil
}

func (s *serviceImpl) verifyInBackground(ctx context.Context, intent model.BookingIntent, req dto.CreateBookingRequest) {
	verification, err := s.availability.VerifySlot(ctx, availabilityDto.VerifySlotRequest{
		ServiceType: intent.ServiceType,
		Location:    intent.Location,
		Date:        req.Date,
		Time:        req.Time,
		StaffID:     intent.StaffID,
	})
	if err != nil {
		log.Warn().Err(err).Str("intent", intent.ID).Msg("background slot verification failed")

		return
	}

	if !verification.SlotStillAvailable {
		log.Warn().Str("intent", intent.ID).Msg("slot no longer available at intent creation")
	}

	key := shared.BuildCacheKey(cacheVerifyResult, intent.ID)
	if err := s.cache.Save(ctx, key, verification, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache verification result")
	}
}

// ProcessBySession drives an intent to its confirmed appointment. Safe to
// call any number of times for the same session: every step is guarded by
// the current status, and an already confirmed intent returns immediately
// without touching the payment or scheduling provider.
func (s *serviceImpl) ProcessBySession(ctx context.Context, sessionID string) (result dto.ProcessBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ProcessBySession")
	defer scope.End()
	defer scope.TraceIfError(err)

	intent, err := s.repo.ResolveBySessionID(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve booking intent by session")

		return result, fmt.Errorf("failed to resolve booking intent: %w", err)
	}

	if intent.ID == "" {
		return result, failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	switch intent.Status {
	case model.StatusConfirmed:
		return s.respond(intent, true), nil
	case model.StatusExpired:
		return s.respond(intent, false), failure.Conflict("booking intent has expired") //nolint:wrapcheck
	case model.StatusPending:
		intent, err = s.settlePayment(ctx, intent)
		if err != nil {
			return s.respond(intent, false), err
		}

		if intent.Status == model.StatusConfirmed {
			return s.respond(intent, true), nil
		}
	}

	return s.confirm(ctx, intent)
}

// settlePayment checks the payment session and moves a pending intent to
// paid. The intent is never mutated when the session is not actually paid.
func (s *serviceImpl) settlePayment(ctx context.Context, intent model.BookingIntent) (model.BookingIntent, error) {
	session, err := s.payment.GetCheckoutSession(ctx, intent.PaymentSessionID)
	if err != nil {
		log.Error().Err(err).Str("session", intent.PaymentSessionID).Msg("failed to retrieve checkout session")

		return intent, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	if !session.Paid {
		return intent, failure.Conflict("payment has not completed for this session") //nolint:wrapcheck
	}

	moved, err := s.repo.Transition(ctx, intent.ID, model.StatusPending, model.StatusPaid, map[string]any{
		model.FieldPaymentTransactionID: session.TransactionID,
	})
	if err != nil {
		return intent, fmt.Errorf("failed to mark intent paid: %w", err)
	}

	if !moved {
		// Someone else advanced the intent concurrently, reload it.
		return s.repo.ResolveByID(ctx, intent.ID) //nolint:wrapcheck
	}

	intent.Status = model.StatusPaid
	intent.PaymentTransactionID = session.TransactionID

	return intent, nil
}

// confirm creates the provider appointment for a paid intent. A creation
// failure leaves the intent paid with the error recorded, so a later retry
// skips straight past the payment step and the customer is never charged
// twice.
func (s *serviceImpl) confirm(ctx context.Context, intent model.BookingIntent) (dto.ProcessBookingResponse, error) {
	if intent.Status != model.StatusPaid {
		return s.respond(intent, false), failure.Conflict(fmt.Sprintf("booking intent is %s, expected %s", intent.Status, model.StatusPaid)) //nolint:wrapcheck
	}

	var verification availabilityDto.VerifySlotResponse

	verifyKey := shared.BuildCacheKey(cacheVerifyResult, intent.ID)
	if cacheErr := s.cache.Get(ctx, verifyKey, &verification); cacheErr == nil && !verification.SlotStillAvailable {
		log.Warn().Str("intent", intent.ID).Msg("slot reported unavailable at verification, attempting creation anyway")
	}

	providerBookingID, err := s.client.CreateAppointment(ctx, provider.AppointmentRequest{
		ServiceID: intent.ProviderServiceID,
		StaffID:   intent.StaffID,
		From:      intent.StartAt,
		To:        intent.EndAt,
		Timezone:  intent.Timezone,
		Customer: provider.CustomerDetails{
			FirstName: intent.CustomerFirstName,
			LastName:  intent.CustomerLastName,
			Email:     intent.CustomerEmail,
			Phone:     intent.CustomerPhone,
		},
		Notes: intent.Notes,
	})
	if err != nil {
		log.Error().Err(err).Str("intent", intent.ID).Msg("failed to create provider appointment")

		intent.ErrorMessage = err.Error()

		if _, updateErr := s.repo.Transition(ctx, intent.ID, model.StatusPaid, model.StatusPaid, map[string]any{
			model.FieldErrorMessage: intent.ErrorMessage,
		}); updateErr != nil {
			log.Error().Err(updateErr).Str("intent", intent.ID).Msg("failed to record booking creation error")
		}

		return s.respond(intent, false), failure.InternalError(fmt.Errorf("failed to create appointment: %w", err)) //nolint:wrapcheck
	}

	moved, err := s.repo.Transition(ctx, intent.ID, model.StatusPaid, model.StatusConfirmed, map[string]any{
		model.FieldProviderBookingID: providerBookingID,
		model.FieldErrorMessage:      constant.Empty,
	})
	if err != nil {
		return s.respond(intent, false), fmt.Errorf("failed to confirm booking intent: %w", err)
	}

	if moved {
		s.invalidateSlotCaches(ctx, intent)
	}

	intent.Status = model.StatusConfirmed
	intent.ProviderBookingID = providerBookingID
	intent.ErrorMessage = constant.Empty

	return s.respond(intent, true), nil
}

// invalidateSlotCaches drops the cached availability for the booked day so
// the consumed slot cannot be offered again before the next refresh.
func (s *serviceImpl) invalidateSlotCaches(ctx context.Context, intent model.BookingIntent) {
	if err := s.availRepo.DeleteDay(ctx, intent.ServiceKey(), intent.SlotDate); err != nil {
		log.Warn().Err(err).Str("intent", intent.ID).Msg("failed to invalidate slot cache rows")
	}

	go func() {
		bgCtx := context.WithoutCancel(ctx)
		shared.InvalidateCaches(bgCtx, s.cache, cachePrefixAvailability)

		if err := s.cache.Delete(bgCtx, shared.BuildCacheKey(cacheVerifyResult, intent.ID)); err != nil {
			log.Warn().Err(err).Str("intent", intent.ID).Msg("failed to drop verification cache entry")
		}
	}()
}

// HandleWebhook processes a payment provider callback. Events other than a
// completed checkout are acknowledged and ignored.
func (s *serviceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleWebhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := s.payment.ParseWebhookEvent(payload, signature)
	if err != nil {
		log.Warn().Err(err).Msg("rejected webhook with invalid signature")

		return failure.BadRequestFromString("invalid webhook signature") //nolint:wrapcheck
	}

	if event.Type != payment.EventCheckoutCompleted {
		return nil
	}

	intent, err := s.resolveFromSession(ctx, event.Session)
	if err != nil {
		return err
	}

	if intent.ID == "" {
		log.Warn().Str("session", event.Session.ID).Msg("webhook for unknown booking intent")

		return failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	switch intent.Status {
	case model.StatusConfirmed:
		return nil
	case model.StatusExpired:
		log.Error().Str("intent", intent.ID).Msg("payment completed for an expired booking intent")

		return nil
	case model.StatusPending:
		if !event.Session.Paid {
			// Stripe keeps retrying events that are not acked with a 2xx.
			// The intent stays pending and settles through ProcessBySession.
			log.Warn().Str("intent", intent.ID).Msg("checkout completed event without paid status")

			return nil
		}

		moved, transitionErr := s.repo.Transition(ctx, intent.ID, model.StatusPending, model.StatusPaid, map[string]any{
			model.FieldPaymentTransactionID: event.Session.TransactionID,
		})
		if transitionErr != nil {
			return fmt.Errorf("failed to mark intent paid: %w", transitionErr)
		}

		if !moved {
			intent, err = s.repo.ResolveByID(ctx, intent.ID)
			if err != nil {
				return fmt.Errorf("failed to reload booking intent: %w", err)
			}

			if intent.Status == model.StatusConfirmed {
				return nil
			}
		} else {
			intent.Status = model.StatusPaid
			intent.PaymentTransactionID = event.Session.TransactionID
		}
	}

	_, err = s.confirm(ctx, intent)

	return err
}

func (s *serviceImpl) resolveFromSession(ctx context.Context, session payment.CheckoutSession) (model.BookingIntent, error) {
	if session.BookingIntentID != "" {
		intent, err := s.repo.ResolveByID(ctx, session.BookingIntentID)
		if err != nil {
			return intent, fmt.Errorf("failed to resolve booking intent: %w", err)
		}

		return intent, nil
	}

	intent, err := s.repo.ResolveBySessionID(ctx, session.ID)
	if err != nil {
		return intent, fmt.Errorf("failed to resolve booking intent: %w", err)
	}

	return intent, nil
}

// ExpireStale times out pending intents older than the configured TTL.
func (s *serviceImpl) ExpireStale(ctx context.Context) (expired int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExpireStale")
	defer scope.End()
	defer scope.TraceIfError(err)

	cutoff := timezone.Now().Add(-time.Duration(s.cfg.Booking.PendingTTLMinutes) * time.Minute)

	expired, err = s.repo.ExpirePending(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("failed to expire stale booking intents")

		return 0, fmt.Errorf("failed to expire stale booking intents: %w", err)
	}

	if expired > 0 {
		log.Info().Int("count", expired).Msg("expired stale booking intents")
	}

	return expired, nil
}

func (s *serviceImpl) respond(intent model.BookingIntent, success bool) dto.ProcessBookingResponse {
	return dto.ProcessBookingResponse{
		Success: success,
		Booking: dto.NewBookingResponse(intent, s.registry.StaffName(intent.StaffID)),
	}
}
