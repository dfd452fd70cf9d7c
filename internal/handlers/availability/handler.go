package availability

import (
	"net/http"

	"agenda/infras/otel"
	"agenda/internal/domains/availability/model/dto"
	"agenda/internal/domains/availability/service"
	"agenda/shared/constant"
	"agenda/shared/validator"
	"agenda/transport/http/response"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Sync refreshes the slot cache for all services.
// @Summary Run an availability sync
// @Description Pull fresh slots from the scheduling provider for every configured service.
// @Tags Availability
// @Produce json
// @Success 200 {object} dto.SyncResponse "Per-service sync results"
// @Failure 401 {object} response.Error
// @Router /v1/sync [post]
// @Security ApiKeyAuth
func (handler *Handler) Sync(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Sync")
	defer scope.End()

	results := handler.service.SyncAll(ctx)

	response.WithJSON(writer, http.StatusOK, dto.NewSyncResponse(results))
}

// VerifySlot re-checks one slot against the provider.
// @Summary Verify a slot is still bookable
// @Description Refresh the slot cache for the requested day and report whether the slot survived.
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.VerifySlotRequest true "Verify Slot Request"
// @Success 200 {object} dto.VerifySlotResponse "Verification result"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/verify-slot [post]
func (handler *Handler) VerifySlot(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifySlot")
	defer scope.End()

	req := dto.VerifySlotRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	result, err := handler.service.VerifySlot(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify slot")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, result)
}

// Day lists the merged open slots for one service day.
// @Summary Get day availability
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.DayAvailabilityRequest true "Day Availability Request"
// @Success 200 {object} dto.DayAvailabilityResponse "Open slots for the day"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/availability/day [post]
func (handler *Handler) Day(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Day")
	defer scope.End()

	req := dto.DayAvailabilityRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	result, err := handler.service.GetDay(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get day availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, result)
}

// Range lists per-day availability flags over the forward booking window.
// @Summary Get range availability
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.RangeAvailabilityRequest true "Range Availability Request"
// @Success 200 {object} dto.RangeAvailabilityResponse "Availability flags per day"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/availability/range [post]
func (handler *Handler) Range(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Range")
	defer scope.End()

	req := dto.RangeAvailabilityRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	result, err := handler.service.GetRange(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get range availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, result)
}
