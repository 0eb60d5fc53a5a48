package publisher

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"
	"courtbook/config"
	"courtbook/infras/kafka"
	"courtbook/infras/rabbitmq"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	DriverKafka = "kafka"
	DriverAMQP  = "amqp"
	DriverLog   = "log"
)

// Publisher delivers one event to whatever transport fans it out to members.
type Publisher interface {
	Publish(ctx context.Context, routingKey, messageKey string, value any) error
	Close() error
}

// New selects the transport named by the notification driver. An unknown driver logs
// events instead of dropping them silently.
func New(cfg *config.Config) Publisher {
	switch cfg.Notification.Driver {
	case DriverKafka:
		return kafka.New(cfg)
	case DriverAMQP:
		publisher, err := rabbitmq.New(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize RabbitMQ publisher")
		}

		return publisher
	case DriverLog:
		return NewLog()
	default:
		log.Warn().Str("driver", cfg.Notification.Driver).Msg("Unknown notification driver, events will be logged")

		return NewLog()
	}
}

type logPublisher struct{}

func NewLog() Publisher {
	return &logPublisher{}
}

func (l *logPublisher) Publish(_ context.Context, routingKey, messageKey string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	log.Info().Str("routingKey", routingKey).Str("key", messageKey).RawJSON("event", body).Msg("notification event")

	return nil
}

func (l *logPublisher) Close() error {
	return nil
}
