package booking

import (
	"io"
	"net/http"

	"agenda/infras/otel"
	"agenda/internal/domains/booking/model/dto"
	"agenda/internal/domains/booking/service"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/shared/validator"
	"agenda/transport/http/response"

	"github.com/rs/zerolog/log"
)

// Webhook payloads are small; anything bigger than this is not ours.
const maxWebhookBodyBytes = 1 << 16

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// CreateBooking stores a booking intent for a selected slot.
// @Summary Create a booking intent
// @Description Store a pending booking intent and start background slot verification.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking intent created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	result, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking intent")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking intent created " + result.ID)

	response.WithJSON(writer, http.StatusCreated, result)
}

// ProcessBooking confirms a paid booking intent.
// @Summary Process a booking by payment session
// @Description Verify payment for a session and create the provider appointment. Idempotent.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.ProcessBookingRequest true "Process Booking Request"
// @Success 200 {object} dto.ProcessBookingResponse "Booking confirmed"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} dto.ProcessBookingResponse "Payment incomplete or intent expired"
// @Failure 500 {object} dto.ProcessBookingResponse "Appointment creation failed"
// @Router /v1/process-booking [post]
func (handler *Handler) ProcessBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ProcessBooking")
	defer scope.End()

	req := dto.ProcessBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	result, err := handler.service.ProcessBySession(ctx, req.PaymentSessionID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("session", req.PaymentSessionID).Msg("failed to process booking")

		// When the intent was found its current state rides along with
		// the error, so the caller can tell how far processing got.
		if result.Booking.ID != "" {
			response.WithJSON(writer, failure.GetCode(err), result)

			return
		}

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, result)
}

// PaymentWebhook ingests payment provider callbacks.
// @Summary Payment provider webhook
// @Description Handle checkout completion events pushed by the payment provider.
// @Tags Booking
// @Accept json
// @Produce json
// @Success 200 {object} response.Message "Event processed"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/webhooks/payment [post]
func (handler *Handler) PaymentWebhook(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PaymentWebhook")
	defer scope.End()

	payload, err := io.ReadAll(io.LimitReader(request.Body, maxWebhookBodyBytes))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read webhook payload")

		response.WithError(writer, failure.BadRequestFromString("unreadable webhook payload"))

		return
	}

	signature := request.Header.Get(constant.RequestHeaderStripeSignature)

	if err := handler.service.HandleWebhook(ctx, payload, signature); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle payment webhook")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Event processed")
}
