package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
)

var _ appinv.AlertSubscriber = (*RedisPublisher)(nil)

// redisPublisher subconjunto de *redis.Client.
type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

// RedisPublisher hace PUBLISH de cada alerta en un canal pub/sub.
type RedisPublisher struct {
	client  redisPublisher
	channel string
}

// RedisOptions datos de conexión.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// NewRedisPublisher conecta y verifica con PING.
func NewRedisPublisher(ctx context.Context, opts RedisOptions) (*RedisPublisher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opts.Addr, err)
	}
	return &RedisPublisher{client: rdb, channel: opts.Channel}, nil
}

func (p *RedisPublisher) Name() string { return "redis" }

// Notify publica el evento; cero suscriptores conectados no es error.
func (p *RedisPublisher) Notify(ctx context.Context, e entity.AlertEvent) error {
	body, err := json.Marshal(envelope{Type: alertEventType, Timestamp: time.Now().UTC(), Payload: e})
	if err != nil {
		return fmt.Errorf("redis: serializar alerta: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		return fmt.Errorf("redis: publish en %s: %w", p.channel, err)
	}
	return nil
}

// Close cierra el cliente.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
