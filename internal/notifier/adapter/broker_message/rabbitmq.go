package brokermessage

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"food-delivery/internal/notifier/app/core"
	"food-delivery/internal/xpkg/config"
	xerrors "food-delivery/internal/xpkg/errors"
	"food-delivery/internal/xpkg/logger"
)

// channel is the part of *amqp.Channel the consumer uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Qos(prefetchCount, prefetchSize int, global bool) error
	ConsumeWithContext(ctx context.Context, queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	IsClosed() bool
	Close() error
}

type connection interface {
	IsClosed() bool
	Close() error
}

type dialer func(url string) (connection, channel, error)

func dialAMQP(url string) (connection, channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// Consumer reads order events from a durable queue bound to the orders exchange.
type Consumer struct {
	cfg   config.RabbitMQ
	mylog logger.Logger

	mu   sync.Mutex
	conn connection
	ch   channel
}

func New(cfg config.RabbitMQ, mylog logger.Logger) (*Consumer, error) {
	return newConsumer(cfg, mylog, dialAMQP)
}

func newConsumer(cfg config.RabbitMQ, mylog logger.Logger, dial dialer) (*Consumer, error) {
	conn, ch, err := dial(cfg.Addr())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrRMQConn, err)
	}
	c := &Consumer{cfg: cfg, mylog: mylog, conn: conn, ch: ch}
	if err := c.setup(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Consumer) setup() error {
	if err := c.ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", c.cfg.Exchange, err)
	}
	if _, err := c.ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", c.cfg.Queue, err)
	}
	if err := c.ch.QueueBind(c.cfg.Queue, core.BindingKey, c.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", c.cfg.Queue, err)
	}
	if err := c.ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("set prefetch: %w", err)
	}
	return nil
}

func (c *Consumer) Consume(ctx context.Context) (<-chan amqp.Delivery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ch == nil || c.ch.IsClosed() {
		return nil, xerrors.ErrMBCh
	}
	return c.ch.ConsumeWithContext(ctx, c.cfg.Queue, "", false, false, false, false, nil)
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ch != nil && !c.ch.IsClosed() {
		if err := c.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %v", err)
		}
	}
	if c.conn != nil && !c.conn.IsClosed() {
		if err := c.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %v", err)
		}
	}
	return nil
}

var _ core.IConsumer = (*Consumer)(nil)
