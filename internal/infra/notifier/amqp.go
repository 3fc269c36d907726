package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"slot-booking/internal/infra"
	"slot-booking/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPNotifier publishes each event to a topic exchange, routed by event kind,
// for the email/SMS workers to pick up.
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       amqpChannel
	exchange string
	logger   *slog.Logger
}

func NewAMQPNotifier(url, exchange string, logger *slog.Logger) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPNotifier{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

func newAMQPNotifierWithChannel(ch amqpChannel, exchange string, logger *slog.Logger) *AMQPNotifier {
	return &AMQPNotifier{ch: ch, exchange: exchange, logger: logger}
}

func (n *AMQPNotifier) Notify(ctx context.Context, event commands.Event) error {
	msg, err := BuildPublishing(event)
	if err != nil {
		return err
	}
	if err := n.ch.PublishWithContext(ctx, n.exchange, RoutingKey(event), false, false, msg); err != nil {
		return infra.WrapError(n.logger, infra.KindPublishFailed, "publish "+string(event.Kind), err)
	}
	return nil
}

func (n *AMQPNotifier) Close() error {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

// RoutingKey is "<kind>.<slot>", e.g. "reservation.expired.u9-1700".
func RoutingKey(event commands.Event) string {
	return string(event.Kind) + "." + event.SlotID
}

func BuildPublishing(event commands.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ReservationID.String() + ":" + string(event.Kind),
		Timestamp:    event.OccurredAt,
		Type:         string(event.Kind),
		Body:         body,
	}, nil
}
