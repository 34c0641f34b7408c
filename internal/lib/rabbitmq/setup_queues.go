package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// OutreachExchange — обменник заявок на массовую рассылку питчей.
const OutreachExchange = "outreach"

// QueueConfig описывает очередь и ключ маршрутизации для привязки к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetOutreachQueues возвращает очереди воркеров рассылки.
func GetOutreachQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "outreach.bulk", RoutingKey: "bulk"},
	}
}

// SetupChannel открывает канал, объявляет обменник и привязывает очереди.
func SetupChannel(conn *amqp.Connection, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := ch.ExchangeDeclare(OutreachExchange, "direct", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := ch.QueueBind(q.QueueName, q.RoutingKey, OutreachExchange, false, nil); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return ch, nil
}
