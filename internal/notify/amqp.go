package notify

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// AMQPNotifier publishes events to a durable fanout exchange instead
// of POSTing them, for deployments where the chat bridge consumes from
// RabbitMQ. The routing key carries the event type; fanout consumers
// that do not care simply ignore it.
type AMQPNotifier struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *logrus.Entry
}

func NewAMQPNotifier(url, exchange string, log *logrus.Entry) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	log.WithField("exchange", exchange).Info("connected to RabbitMQ")
	return &AMQPNotifier{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		log:      log,
	}, nil
}

func (n *AMQPNotifier) NotifyOrderUpdate(ctx context.Context, ev OrderUpdate) error {
	ev.Type = TypeOrderUpdate
	return n.publish(ctx, TypeOrderUpdate, ev)
}

func (n *AMQPNotifier) NotifyBillUpdate(ctx context.Context, ev BillUpdate) error {
	ev.Type = TypeBillUpdate
	return n.publish(ctx, TypeBillUpdate, ev)
}

func (n *AMQPNotifier) publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return n.channel.PublishWithContext(ctx,
		n.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
}

func (n *AMQPNotifier) Close() {
	if n.channel != nil {
		n.channel.Close()
	}
	if n.conn != nil {
		n.conn.Close()
	}
}
