package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
)

var _ appinv.AlertSubscriber = (*RabbitMQPublisher)(nil)

const publishTimeout = 3 * time.Second

// amqpChannel subconjunto de *amqp.Channel usado para publicar.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher publica cada alerta como JSON en una cola durable (exchange por defecto).
type RabbitMQPublisher struct {
	conn  *amqp.Connection
	ch    amqpChannel
	queue string
}

// NewRabbitMQPublisher conecta y declara la cola durable.
func NewRabbitMQPublisher(url, queue string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: declarar cola %s: %w", queue, err)
	}
	return &RabbitMQPublisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *RabbitMQPublisher) Name() string { return "rabbitmq" }

// Notify publica el evento con entrega persistente.
func (p *RabbitMQPublisher) Notify(ctx context.Context, e entity.AlertEvent) error {
	body, err := json.Marshal(envelope{Type: alertEventType, Timestamp: time.Now().UTC(), Payload: e})
	if err != nil {
		return fmt.Errorf("rabbitmq: serializar alerta: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.MovementID,
		Timestamp:    e.OccurredAt,
		Type:         alertEventType,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq: publicar en %s: %w", p.queue, err)
	}
	return nil
}

// Close cierra canal y conexión.
func (p *RabbitMQPublisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
