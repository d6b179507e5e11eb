package core

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
)

// BindingKey matches every order event routing key.
const BindingKey = "order.#"

var ErrMalformedEvent = errors.New("malformed order event")

type IConsumer interface {
	Consume(ctx context.Context) (<-chan amqp.Delivery, error)
	Close() error
}
