package request

import (
	"context"
	"courtbook/internal/schedule"
	"courtbook/shared/failure"
	"courtbook/shared/timezone"
	"net/http"
	"time"
)

// ParamAt names the query parameter that evaluates a request at an explicit instant.
const ParamAt = "at"

// Actor returns the authenticated member of the request.
func Actor(ctx context.Context) (schedule.Actor, error) {
	actor, ok := schedule.ActorFromContext(ctx)
	if !ok {
		return actor, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	return actor, nil
}

// Now resolves the evaluation time. Administrators may pin it with an RFC 3339 "at"
// parameter; everyone else is evaluated at the wall clock.
func Now(r *http.Request, clock *timezone.Clock, actor schedule.Actor) (timezone.Civil, error) {
	at := r.URL.Query().Get(ParamAt)
	if at == "" || !actor.Admin {
		return clock.Now(), nil
	}

	instant, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return timezone.Civil{}, failure.BadRequest(err) // nolint:wrapcheck
	}

	civil, err := clock.At(instant)
	if err != nil {
		return timezone.Civil{}, failure.BadRequest(err) // nolint:wrapcheck
	}

	return civil, nil
}
