package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/escala-acompanhantes/backend/internal/domain"
)

// Publisher hands mail messages to the mail worker.
type Publisher interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

// AMQPPublisher publishes JSON messages on a durable queue through the default exchange.
type AMQPPublisher struct {
	ch    *amqp.Channel
	queue string
}

func NewAMQPPublisher(ch *amqp.Channel, queue string) (*AMQPPublisher, error) {
	if _, err := DeclareQueue(ch, queue); err != nil {
		return nil, err
	}
	return &AMQPPublisher{ch: ch, queue: queue}, nil
}

// DeclareQueue declares the durable notification queue shared by publisher and worker.
func DeclareQueue(ch *amqp.Channel, queue string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		queue,
		true,  // durable
		false, // keep the queue while no consumer is attached
		false,
		false,
		nil,
	)
}

func (p *AMQPPublisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// NopPublisher drops every message. It is used when RabbitMQ is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	slog.Debug("notificação descartada, RabbitMQ desativado", slog.String("type", msg.Type))
	return nil
}

// RecordingPublisher keeps every published message in memory.
type RecordingPublisher struct {
	mu       sync.Mutex
	messages []domain.MailMessage
	Err      error
}

func (p *RecordingPublisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func (p *RecordingPublisher) Messages() []domain.MailMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.MailMessage(nil), p.messages...)
}
