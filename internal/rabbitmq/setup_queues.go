package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Exchange через который проходят все уведомления портала.
const Exchange = "notifications"

// Маршрутные ключи событий.
const (
	RoutingKeyCreated  = "created"  // заявка создана
	RoutingKeyStatus   = "status"   // статус заявки изменён администратором
	RoutingKeyUpcoming = "upcoming" // обучение начинается завтра
)

// QueueConfig связывает очередь с маршрутным ключом.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди почтовых уведомлений портала.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.created", RoutingKey: RoutingKeyCreated},
		{QueueName: "notification.status", RoutingKey: RoutingKeyStatus},
		{QueueName: "notification.upcoming", RoutingKey: RoutingKeyUpcoming},
	}
}

// SetupChannel открывает канал, объявляет exchange и привязывает очереди.
func SetupChannel(conn *amqp.Connection, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("%s: failed to set QoS: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}

		err = ch.QueueBind(
			q.QueueName,
			q.RoutingKey,
			Exchange,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
