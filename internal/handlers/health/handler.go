package health

import (
	"context"
	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	"courtbook/shared/constant"
	"courtbook/transport/http/response"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 2 * time.Second

// Status reports the reachability of each backing store.
type Status struct {
	Status   string `json:"status"`
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
}

type Handler struct {
	db    *postgres.Connection
	redis *goRedis.Client
	otel  otel.Otel
}

func New(db *postgres.Connection, redis *goRedis.Client, otel otel.Otel) Handler {
	return Handler{
		db:    db,
		redis: redis,
		otel:  otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get(constant.PathHealth, handler.Health)
}

// Health pings postgres and redis.
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} response.Data[Status] "Every store is reachable"
// @Failure 503 {object} response.Data[Status] "A store is unreachable"
// @Router /health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := Status{Status: "ok", Postgres: "ok", Redis: "ok"}

	if err := handler.db.Write.PingContext(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("postgres is unreachable")

		status.Status, status.Postgres = "unhealthy", err.Error()
	}

	if err := handler.redis.Ping(ctx).Err(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("redis is unreachable")

		status.Status, status.Redis = "unhealthy", err.Error()
	}

	if status.Status != "ok" {
		response.WithJSON(w, http.StatusServiceUnavailable, status)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}
