package kafka

import (
	"context"
	"courtbook/config"
	"courtbook/shared/constant"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	HeaderEventType   = "type"
	HeaderContentType = "content-type"

	writeTimeout = 10 * time.Second
)

// Event is one notification before it is put on the wire.
type Event[T any] struct {
	Key   string
	Type  string
	Value T
}

// Encode renders e as a JSON record. The key decides the partition, so events
// for one reservation stay ordered.
func Encode[T any](e Event[T]) (kafkaGo.Message, error) {
	body, err := json.Marshal(e.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal %s event: %w", e.Type, err)
	}

	headers := []kafkaGo.Header{{Key: HeaderContentType, Value: []byte(constant.ContentTypeJSON)}}
	if e.Type != "" {
		headers = append(headers, kafkaGo.Header{Key: HeaderEventType, Value: []byte(e.Type)})
	}

	return kafkaGo.Message{Key: []byte(e.Key), Value: body, Headers: headers}, nil
}

// Decode is the consumer side of Encode.
func Decode[T any](msg kafkaGo.Message) (Event[T], error) {
	event := Event[T]{Key: string(msg.Key)}

	if err := json.Unmarshal(msg.Value, &event.Value); err != nil {
		return Event[T]{}, fmt.Errorf("failed to unmarshal event %s: %w", event.Key, err)
	}

	for _, header := range msg.Headers {
		if header.Key == HeaderEventType {
			event.Type = string(header.Value)
		}
	}

	return event, nil
}

// writer is the part of *kafkaGo.Writer the producer needs.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkaGo.Message) error
	Close() error
}

type Producer struct {
	writer writer
	topic  string
}

// New builds a producer for the configured notification topic.
func New(cfg *config.Config) *Producer {
	transport := &kafkaGo.Transport{}
	if cfg.Kafka.SASL.Username != "" {
		transport.SASL = plain.Mechanism{Username: cfg.Kafka.SASL.Username, Password: cfg.Kafka.SASL.Password}
	}

	topic := cfg.Notification.Topic

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", topic).Msg("Kafka producer initialized")

	return NewWithWriter(&kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
		Topic:                  topic,
		Transport:              transport,
		Balancer:               &kafkaGo.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafkaGo.RequireOne,
		WriteTimeout:           writeTimeout,
	}, topic)
}

func NewWithWriter(w writer, topic string) *Producer {
	return &Producer{writer: w, topic: topic}
}

// Publish writes one event of type routingKey keyed by messageKey.
func (p *Producer) Publish(ctx context.Context, routingKey, messageKey string, value any) error {
	msg, err := Encode(Event[any]{Key: messageKey, Type: routingKey, Value: value})
	if err != nil {
		return err
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		log.Error().Err(err).Str("topic", p.topic).Str("type", routingKey).Msg("Failed to write event to Kafka.")

		return fmt.Errorf("failed to write event to kafka: %w", err)
	}

	log.Debug().Str("topic", p.topic).Str("type", routingKey).Str("key", messageKey).Msg("Event written to Kafka.")

	return nil
}

func (p *Producer) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}

	return nil
}
