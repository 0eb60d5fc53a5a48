package rabbitmq

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	exchange  string
	key       string
	published amqp.Publishing
	err       error
	closed    bool
}

func (c *recordingChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange = exchange
	c.key = key
	c.published = msg

	return c.err
}

func (c *recordingChannel) Close() error {
	c.closed = true

	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &recordingChannel{}
	publisher := NewWithChannel(ch, "reservation.events")

	err := publisher.Publish(context.Background(), "reservation.suspended", "r-1", map[string]any{"reservation_id": "r-1"})

	require.NoError(t, err)
	assert.Equal(t, "reservation.events", ch.exchange)
	assert.Equal(t, "reservation.suspended", ch.key)
	assert.Equal(t, "application/json", ch.published.ContentType)
	assert.Equal(t, amqp.Persistent, ch.published.DeliveryMode)
	assert.Equal(t, "r-1", ch.published.MessageId)
	assert.JSONEq(t, `{"reservation_id":"r-1"}`, string(ch.published.Body))
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &recordingChannel{err: errors.New("channel closed")}
	publisher := NewWithChannel(ch, "reservation.events")

	err := publisher.Publish(context.Background(), "reservation.created", "r-1", map[string]any{})

	assert.Error(t, err)
	assert.NoError(t, publisher.Close())
	assert.True(t, ch.closed)
}
