//go:build wireinject
// +build wireinject

package di

import (
	"agenda/config"
	"agenda/infras/otel"
	"agenda/infras/payment"
	"agenda/infras/postgres"
	"agenda/infras/provider"
	"agenda/infras/redis"
	"agenda/scheduler"
	"agenda/shared/cache"
	"agenda/transport/http"
	"agenda/transport/http/middleware"
	"agenda/transport/http/router"

	availabilityRepository "agenda/internal/domains/availability/repository"
	availabilityService "agenda/internal/domains/availability/service"
	bookingRepository "agenda/internal/domains/booking/repository"
	bookingService "agenda/internal/domains/booking/service"
	catalogService "agenda/internal/domains/catalog/service"
	availabilityHandler "agenda/internal/handlers/availability"
	bookingHandler "agenda/internal/handlers/booking"
	healthHandler "agenda/internal/handlers/health"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	provider.NewTokenStore,
	provider.NewTokenSource,
	provider.NewClient,
	payment.NewClient,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var catalogDomain = wire.NewSet(
	catalogService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityRepository.NewAvailabilityRepository,
	availabilityService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	catalogDomain,
	availabilityDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	availabilityHandler.New,
	bookingHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeScheduler() *scheduler.Scheduler {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		domains,
		scheduler.New,
	)

	return &scheduler.Scheduler{}
}
