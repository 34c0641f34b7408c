// Package rabbitmq содержит подключение к брокеру, настройку обменника рассылки
// и публикацию JSON-сообщений.
package rabbitmq

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Connect подключается к RabbitMQ с повторами: брокер может подниматься дольше сервиса.
func Connect(url string, maxRetries int, retryDelay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"

	var conn *amqp.Connection
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("%s: %w", op, err)
}
