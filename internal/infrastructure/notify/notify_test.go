package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/pkg/logger"
)

func sampleEvent() entity.AlertEvent {
	return entity.AlertEvent{
		ItemID:         "item-1",
		SKU:            "MED-AMOX-500",
		Name:           "Amoxicilina 500mg",
		PreviousStatus: "normal",
		Status:         "low_stock",
		Quantity:       3,
		Threshold:      5,
		MovementID:     "mov-1",
		OccurredAt:     time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

// ── RabbitMQ ──────────────────────────────────────────────────────────────────

type fakeChannel struct {
	key string
	msg amqp.Publishing
	err error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.key = key
	f.msg = msg
	return f.err
}

func (f *fakeChannel) Close() error { return nil }

func TestRabbitMQPublisher_PublicaJSONPersistente(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitMQPublisher{ch: ch, queue: "inventory.alerts"}

	require.NoError(t, p.Notify(context.Background(), sampleEvent()))
	assert.Equal(t, "inventory.alerts", ch.key)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "application/json", ch.msg.ContentType)

	var env envelope
	require.NoError(t, json.Unmarshal(ch.msg.Body, &env))
	assert.Equal(t, alertEventType, env.Type)
	assert.Equal(t, "low_stock", env.Payload.Status)
	assert.Equal(t, 3, env.Payload.Quantity)
}

func TestRabbitMQPublisher_PropagaError(t *testing.T) {
	p := &RabbitMQPublisher{ch: &fakeChannel{err: errors.New("canal cerrado")}, queue: "q"}
	err := p.Notify(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canal cerrado")
}

// ── Redis ─────────────────────────────────────────────────────────────────────

type fakeRedis struct {
	channel string
	body    []byte
	err     error
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.body, _ = message.([]byte)
	return redis.NewIntResult(0, f.err)
}

func (f *fakeRedis) Close() error { return nil }

func TestRedisPublisher_PublicaEnCanal(t *testing.T) {
	rdb := &fakeRedis{}
	p := &RedisPublisher{client: rdb, channel: "inventory:alerts"}

	require.NoError(t, p.Notify(context.Background(), sampleEvent()))
	assert.Equal(t, "inventory:alerts", rdb.channel)

	var env envelope
	require.NoError(t, json.Unmarshal(rdb.body, &env))
	assert.Equal(t, "MED-AMOX-500", env.Payload.SKU)
}

func TestRedisPublisher_PropagaError(t *testing.T) {
	p := &RedisPublisher{client: &fakeRedis{err: errors.New("conexión rechazada")}, channel: "c"}
	assert.Error(t, p.Notify(context.Background(), sampleEvent()))
}

// ── Log ───────────────────────────────────────────────────────────────────────

func TestLogNotifier_NuncaFalla(t *testing.T) {
	n := NewLogNotifier(logger.Nop())
	assert.Equal(t, "log", n.Name())
	assert.NoError(t, n.Notify(context.Background(), sampleEvent()))
}
