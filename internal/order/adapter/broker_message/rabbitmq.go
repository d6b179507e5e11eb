package brokermessage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"food-delivery/internal/order/app/core"
	"food-delivery/internal/order/domain/dto"
	"food-delivery/internal/xpkg/config"
	xerrors "food-delivery/internal/xpkg/errors"
	"food-delivery/internal/xpkg/logger"
)

const reconnectInterval = 5 * time.Second

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type connection interface {
	IsClosed() bool
	Close() error
}

// dialer opens a connection and a channel on it.
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

type RabbitMQ struct {
	ctx          context.Context
	url          string
	exchange     string
	dial         dialer
	conn         connection
	ch           channel
	mylog        logger.Logger
	reconnecting bool
	mu           sync.Mutex
}

// New connects to the broker and declares the orders topic exchange.
func New(ctx context.Context, cfg config.RabbitMQ, mylog logger.Logger) (*RabbitMQ, error) {
	return newRabbitMQ(ctx, cfg, mylog, dialAMQP)
}

func newRabbitMQ(ctx context.Context, cfg config.RabbitMQ, mylog logger.Logger, dial dialer) (*RabbitMQ, error) {
	r := &RabbitMQ{
		ctx:      ctx,
		url:      cfg.Addr(),
		exchange: cfg.Exchange,
		dial:     dial,
		mylog:    mylog,
	}
	if err := r.connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrRMQConn, err)
	}
	return r, nil
}

func (r *RabbitMQ) connect() error {
	conn, ch, err := r.dial(r.url)
	if err != nil {
		return err
	}
	if err := ch.ExchangeDeclare(r.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange %s: %w", r.exchange, err)
	}

	r.mu.Lock()
	r.conn = conn
	r.ch = ch
	r.mu.Unlock()
	return nil
}

func (r *RabbitMQ) IsAlive() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil || r.conn.IsClosed() {
		return xerrors.ErrRMQConn
	}
	if r.ch == nil || r.ch.IsClosed() {
		return xerrors.ErrMBCh
	}
	return nil
}

// Publish sends event with its name as the routing key. A dead connection starts a
// background reconnect and the event is dropped.
func (r *RabbitMQ) Publish(ctx context.Context, event dto.OrderEvent) error {
	if err := r.IsAlive(); err != nil {
		go r.reconnect(r.ctx)
		return fmt.Errorf("rabbitmq: connection lost: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	r.mu.Lock()
	ch := r.ch
	r.mu.Unlock()

	return ch.PublishWithContext(ctx, r.exchange, event.Event, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
}

func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ch != nil && !r.ch.IsClosed() {
		if err := r.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %v", err)
		}
	}
	if r.conn != nil && !r.conn.IsClosed() {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %v", err)
		}
	}
	return nil
}

func (r *RabbitMQ) reconnect(ctx context.Context) {
	r.mu.Lock()
	if r.reconnecting {
		r.mu.Unlock()
		return
	}
	r.reconnecting = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.reconnecting = false
		r.mu.Unlock()
	}()

	t := time.NewTicker(reconnectInterval)
	defer t.Stop()
	log := r.mylog.Action("rabbitmq_reconnecting")

	for {
		select {
		case <-t.C:
			if err := r.connect(); err != nil {
				log.Warn("rabbitmq failed to reconnect", "error", err.Error())
				continue
			}
			log.Info("rabbitmq reconnected")
			return
		case <-ctx.Done():
			return
		}
	}
}

// Noop drops every event; used when no broker is configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, event dto.OrderEvent) error { return nil }

func (Noop) Close() error { return nil }

var (
	_ core.IPublisher = (*RabbitMQ)(nil)
	_ core.IPublisher = Noop{}
)
