package http

import (
	"context"
	"courtbook/config"
	notificationPublisher "courtbook/internal/domains/notification/publisher"
	notificationService "courtbook/internal/domains/notification/service"
	"courtbook/shared"
	"courtbook/shared/constant"
	_ "courtbook/docs" //nolint:revive
	"courtbook/transport/http/middleware"
	"courtbook/transport/http/response"
	"courtbook/transport/http/router"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	AuthRole   middleware.AuthRole
	Notifier   notificationService.Notifier
	Publisher  notificationPublisher.Publisher
	state      atomic.Int32
	mux        *chi.Mux
	server     *http.Server
}

func New(
	cfg *config.Config,
	r router.Router,
	app middleware.AppMiddleware,
	authRole middleware.AuthRole,
	notifier notificationService.Notifier,
	publisher notificationPublisher.Publisher,
) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: app,
		AuthRole:   authRole,
		Notifier:   notifier,
		Publisher:  publisher,
	}
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) Serve() {
	h.setup()

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

// Adaptor returns the routed handler without listening, for serverless entrypoints.
func (h *HTTP) Adaptor() http.Handler {
	h.setup()

	return h.mux
}

func (h *HTTP) setup() {
	h.setupRoutes()
	h.setupGracefulShutdown()
	h.state.Store(int32(ServerStateReady))
}

func (h *HTTP) setupRoutes() {
	mux := chi.NewRouter()

	mux.Use(chiMiddleware.RequestID)
	mux.Use(chiMiddleware.Recoverer)

	if corsConfig := h.Config.App.CORS; corsConfig.Enable {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsConfig.AllowedOrigins,
			AllowedMethods:   corsConfig.AllowedMethods,
			AllowedHeaders:   corsConfig.AllowedHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAgeSeconds,
		}))
	}

	mux.Use(h.Middleware.Tracing)
	mux.Use(h.Middleware.Metrics)
	mux.Use(h.Middleware.RateLimit())
	mux.Use(h.shutdownGuard)
	mux.Use(h.AuthRole.APIKey)
	mux.Use(h.AuthRole.Auth)
	mux.Use(h.AuthRole.RBAC)

	mux.Handle("/metrics", promhttp.Handler())
	mux.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	h.Router.SetupRoutes(mux)

	h.mux = mux
}

// shutdownGuard fails health checks during the grace period so load balancers drain the
// instance, and refuses all traffic once cleanup has started.
func (h *HTTP) shutdownGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch h.State() {
		case ServerStateInCleanupPeriod:
			response.WithPreparingShutdown(w)

			return
		case ServerStateInGracePeriod:
			if r.URL.Path == constant.PathHealth {
				response.WithPreparingShutdown(w)

				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	h.shutdown()

	os.Exit(0)
}

func (h *HTTP) shutdown() {
	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")
		h.drain()

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.state.Store(int32(ServerStateInGracePeriod))

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.state.Store(int32(ServerStateInCleanupPeriod))

	time.Sleep(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

	if h.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to shut down HTTP server")
		}
	}

	h.drain()

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

// drain waits for background work once the server has stopped taking requests. Pending
// notifications are delivered before the publisher closes.
func (h *HTTP) drain() {
	shared.WaitDetached()

	if h.Notifier != nil {
		h.Notifier.Wait()
	}

	if h.Publisher == nil {
		return
	}

	if err := h.Publisher.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close notification publisher")
	}
}
