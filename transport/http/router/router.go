package router

import (
	"courtbook/internal/handlers/block"
	"courtbook/internal/handlers/health"
	"courtbook/internal/handlers/reason"
	"courtbook/internal/handlers/reservation"
	"courtbook/shared/failure"
	"courtbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Health      health.Handler
	Reservation reservation.Handler
	Block       block.Handler
	Reason      reason.Handler
}

// versioned handlers mount under /v1.
type versioned interface {
	Router(chi.Router)
}

type Router struct {
	DomainHandlers DomainHandlers
}

func New(domainHandlers DomainHandlers) Router {
	return Router{DomainHandlers: domainHandlers}
}

// SetupRoutes mounts health at the root and the booking API under /v1. Unknown
// routes answer in the same JSON shape as every other error.
func (r *Router) SetupRoutes(mux chi.Router) {
	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WithError(w, failure.NotFound("route not found"))
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.WithError(w, failure.New(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed)))
	})

	r.DomainHandlers.Health.Router(mux)

	mux.Route("/v1", func(v1 chi.Router) {
		for _, handler := range []versioned{
			&r.DomainHandlers.Reservation,
			&r.DomainHandlers.Block,
			&r.DomainHandlers.Reason,
		} {
			handler.Router(v1)
		}
	})
}
