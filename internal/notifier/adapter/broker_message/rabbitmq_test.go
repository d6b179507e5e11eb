package brokermessage

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/internal/xpkg/config"
	xerrors "food-delivery/internal/xpkg/errors"
	"food-delivery/internal/xpkg/logger"
)

type fakeChannel struct {
	calls    []string
	closed   bool
	bindErr  error
	prefetch int
}

func (c *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	c.calls = append(c.calls, "exchange "+name+" "+kind)
	return nil
}

func (c *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	c.calls = append(c.calls, "queue "+name)
	return amqp.Queue{Name: name}, nil
}

func (c *fakeChannel) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	c.calls = append(c.calls, "bind "+name+" "+key+" "+exchange)
	return c.bindErr
}

func (c *fakeChannel) Qos(prefetchCount, prefetchSize int, global bool) error {
	c.prefetch = prefetchCount
	return nil
}

func (c *fakeChannel) ConsumeWithContext(ctx context.Context, queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	c.calls = append(c.calls, "consume "+queue)
	return make(chan amqp.Delivery), nil
}

func (c *fakeChannel) IsClosed() bool { return c.closed }

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

type fakeConn struct{ closed bool }

func (c *fakeConn) IsClosed() bool { return c.closed }

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

var testCfg = config.RabbitMQ{URL: "amqp://test", Exchange: "orders", Queue: "order_notifications", Prefetch: 4}

func TestConsumer_DeclaresAndBinds(t *testing.T) {
	ch, conn := &fakeChannel{}, &fakeConn{}
	c, err := newConsumer(testCfg, logger.Discard(), func(url string) (connection, channel, error) {
		assert.Equal(t, "amqp://test", url)
		return conn, ch, nil
	})
	require.NoError(t, err)

	_, err = c.Consume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"exchange orders topic",
		"queue order_notifications",
		"bind order_notifications order.# orders",
		"consume order_notifications",
	}, ch.calls)
	assert.Equal(t, 4, ch.prefetch)

	require.NoError(t, c.Close())
	assert.True(t, ch.closed)
	assert.True(t, conn.closed)

	_, err = c.Consume(context.Background())
	assert.ErrorIs(t, err, xerrors.ErrMBCh)
}

func TestConsumer_SetupFailureCloses(t *testing.T) {
	ch, conn := &fakeChannel{bindErr: errors.New("access refused")}, &fakeConn{}
	_, err := newConsumer(testCfg, logger.Discard(), func(string) (connection, channel, error) {
		return conn, ch, nil
	})
	require.Error(t, err)
	assert.True(t, ch.closed)
	assert.True(t, conn.closed)
}

func TestConsumer_DialFailure(t *testing.T) {
	_, err := newConsumer(testCfg, logger.Discard(), func(string) (connection, channel, error) {
		return nil, nil, errors.New("connection refused")
	})
	assert.ErrorIs(t, err, xerrors.ErrRMQConn)
}
