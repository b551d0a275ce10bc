// Package rabbitmq содержит подключение к брокеру уведомлений,
// объявление очередей, публикацию и потребление сообщений.
//
// Уведомления портала — fire-and-forget: ошибка публикации логируется,
// но никогда не прерывает обработку пользовательского запроса.
package rabbitmq

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Connect подключается к RabbitMQ с повторами.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"
	var conn *amqp.Connection
	var err error

	for range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}
