package router

import (
	"agenda/internal/handlers/availability"
	"agenda/internal/handlers/booking"
	"agenda/internal/handlers/health"
	"agenda/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Availability availability.Handler
	Booking      booking.Handler
	Health       health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Middleware     middleware.AppMiddleware
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Get("/health", r.DomainHandlers.Health.Health)

		routerGroup.Group(func(guarded chi.Router) {
			guarded.Use(r.Middleware.APIKey)

			guarded.Post("/sync", r.DomainHandlers.Availability.Sync)
		})

		routerGroup.Group(func(public chi.Router) {
			public.Use(r.Middleware.RateLimit())

			public.Post("/verify-slot", r.DomainHandlers.Availability.VerifySlot)
			public.Post("/availability/day", r.DomainHandlers.Availability.Day)
			public.Post("/availability/range", r.DomainHandlers.Availability.Range)
			public.Post("/bookings", r.DomainHandlers.Booking.CreateBooking)
			public.Post("/process-booking", r.DomainHandlers.Booking.ProcessBooking)
		})

		// Webhooks authenticate with their own signature, never rate limit
		// or key-guard them.
		routerGroup.Post("/webhooks/payment", r.DomainHandlers.Booking.PaymentWebhook)
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middleware:     appMiddleware,
	}
}
