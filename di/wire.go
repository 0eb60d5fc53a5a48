//go:build wireinject
// +build wireinject

package di

import (
	"courtbook/config"
	"courtbook/infras/jwt"
	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	"courtbook/infras/redis"
	"courtbook/internal/schedule"
	"courtbook/permissions"
	"courtbook/shared/cache"
	"courtbook/shared/timezone"
	"courtbook/transport/http"
	"courtbook/transport/http/middleware"
	"courtbook/transport/http/router"

	availabilityService "courtbook/internal/domains/availability/service"
	blockRepository "courtbook/internal/domains/block/repository"
	blockService "courtbook/internal/domains/block/service"
	memberRepository "courtbook/internal/domains/member/repository"
	notificationPublisher "courtbook/internal/domains/notification/publisher"
	notificationService "courtbook/internal/domains/notification/service"
	reasonRepository "courtbook/internal/domains/reason/repository"
	reasonService "courtbook/internal/domains/reason/service"
	reservationRepository "courtbook/internal/domains/reservation/repository"
	reservationService "courtbook/internal/domains/reservation/service"
	blockHandler "courtbook/internal/handlers/block"
	healthHandler "courtbook/internal/handlers/health"
	reasonHandler "courtbook/internal/handlers/reason"
	reservationHandler "courtbook/internal/handlers/reservation"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
	schedule.NewPolicy,
	timezone.NewClock,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var notificationDomain = wire.NewSet(
	notificationPublisher.New,
	notificationService.New,
)

var bookingDomain = wire.NewSet(
	memberRepository.New,
	reservationRepository.New,
	blockRepository.New,
	reasonRepository.New,
	availabilityService.New,
	reservationService.New,
	blockService.New,
	reasonService.New,
)

var domains = wire.NewSet(
	notificationDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	reservationHandler.New,
	blockHandler.New,
	reasonHandler.New,
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
