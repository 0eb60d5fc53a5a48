package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"sync"
	"time"

	"courtbook/infras/otel"
	blockModel "courtbook/internal/domains/block/model"
	"courtbook/internal/domains/notification/model"
	"courtbook/internal/domains/notification/publisher"
	resModel "courtbook/internal/domains/reservation/model"
	"courtbook/shared/constant"
	"courtbook/shared/metrics"

	"github.com/rs/zerolog/log"
)

const publishTimeout = 10 * time.Second

// Notifier tells the parties of a reservation what happened to it. Delivery is best
// effort: calls return immediately and failures never reach the caller.
type Notifier interface {
	NotifyCreated(ctx context.Context, reservation resModel.Reservation)
	NotifyModified(ctx context.Context, previous resModel.Reservation, current resModel.Reservation)
	NotifyCancelled(ctx context.Context, reservation resModel.Reservation, reason string)
	NotifySuspended(ctx context.Context, reservation resModel.Reservation, block blockModel.Block, reason string)
	NotifyRestored(ctx context.Context, reservation resModel.Reservation)
	Wait()
}

type serviceImpl struct {
	publisher publisher.Publisher
	otel      otel.Otel
	inflight  sync.WaitGroup
}

func New(publisher publisher.Publisher, otel otel.Otel) Notifier {
	return &serviceImpl{
		publisher: publisher,
		otel:      otel,
	}
}

func (s *serviceImpl) NotifyCreated(ctx context.Context, reservation resModel.Reservation) {
	s.dispatch(ctx, model.NewEvent(model.EventCreated, reservation))
}

func (s *serviceImpl) NotifyModified(ctx context.Context, previous resModel.Reservation, current resModel.Reservation) {
	event := model.NewEvent(model.EventModified, current)
	snapshot := model.NewReservationSnapshot(previous)
	event.Previous = &snapshot

	s.dispatch(ctx, event)
}

func (s *serviceImpl) NotifyCancelled(ctx context.Context, reservation resModel.Reservation, reason string) {
	event := model.NewEvent(model.EventCancelled, reservation)
	event.Reason = reason

	s.dispatch(ctx, event)
}

func (s *serviceImpl) NotifySuspended(ctx context.Context, reservation resModel.Reservation, block blockModel.Block, reason string) {
	event := model.NewEvent(model.EventSuspended, reservation)
	event.Block = model.NewBlockSnapshot(block)
	event.Reason = reason

	s.dispatch(ctx, event)
}

func (s *serviceImpl) NotifyRestored(ctx context.Context, reservation resModel.Reservation) {
	s.dispatch(ctx, model.NewEvent(model.EventRestored, reservation))
}

// Wait blocks until every dispatched event has been handed to the publisher.
func (s *serviceImpl) Wait() {
	s.inflight.Wait()
}

func (s *serviceImpl) dispatch(ctx context.Context, event model.Event) {
	s.inflight.Add(1)

	go func() {
		defer s.inflight.Done()

		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		c, scope := s.otel.NewScope(c, constant.OtelPublisherScope, constant.OtelPublisherScope+"."+event.Type)
		defer scope.End()

		if err := s.publisher.Publish(c, event.Type, event.Reservation.ID, event); err != nil {
			scope.TraceError(err)
			metrics.RecordNotificationFailure(event.Type)

			log.Error().Err(err).
				Str("event", event.Type).
				Str("reservation", event.Reservation.ID).
				Msg("failed to publish notification")

			return
		}

		log.Debug().Str("event", event.Type).Str("reservation", event.Reservation.ID).Msg("notification published")
	}()
}
