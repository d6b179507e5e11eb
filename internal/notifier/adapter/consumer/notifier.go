package consumer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"food-delivery/internal/notifier/app/core"
	"food-delivery/internal/notifier/app/services"
	xerrors "food-delivery/internal/xpkg/errors"
	"food-delivery/internal/xpkg/logger"
)

// Notifier consumes order events until stopped. It implements server.App.
type Notifier struct {
	ctx    context.Context
	cancel context.CancelFunc
	open   func() (core.IConsumer, error)
	svc    *services.NotifyService
	mylog  logger.Logger
	done   chan struct{}

	mu sync.Mutex
	mb core.IConsumer
	wg sync.WaitGroup
}

// NewNotifier connects lazily: open is called by Run.
func NewNotifier(ctx context.Context, open func() (core.IConsumer, error), svc *services.NotifyService, mylog logger.Logger) *Notifier {
	ctx, cancel := context.WithCancel(ctx)
	return &Notifier{
		ctx:    ctx,
		cancel: cancel,
		open:   open,
		svc:    svc,
		mylog:  mylog,
		done:   make(chan struct{}),
	}
}

func (n *Notifier) Run() error {
	defer close(n.done)

	mb, err := n.open()
	if err != nil {
		n.mylog.Action("mb_connection_failed").Error("Failed to connect to message broker", err)
		return err
	}
	n.mu.Lock()
	n.mb = mb
	n.mu.Unlock()
	n.mylog.Action("mb_connected").Info("Successful message broker connection")

	deliveries, err := mb.Consume(n.ctx)
	if err != nil {
		return fmt.Errorf("failed to consume order events: %w", err)
	}

	return n.work(deliveries)
}

func (n *Notifier) work(deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-n.ctx.Done():
			n.mylog.Action("work_shutdown").Info("Stopping message consumption")
			return nil
		case msg, ok := <-deliveries:
			if !ok {
				if n.ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("%w: delivery channel closed", xerrors.ErrRMQConn)
			}
			n.wg.Add(1)
			go func() {
				defer n.wg.Done()
				n.process(msg)
			}()
		}
	}
}

// process acks handled events. Malformed events are dropped, anything else is requeued.
func (n *Notifier) process(msg amqp.Delivery) {
	err := n.svc.Handle(msg.Body)
	if err == nil {
		if err := msg.Ack(false); err != nil {
			n.mylog.Action("ack_failed").Error("Failed to ack message", err)
		}
		return
	}

	requeue := !errors.Is(err, core.ErrMalformedEvent) && !msg.Redelivered
	n.mylog.Action("process_failed").Error("Failed to process order event", err, "requeue", requeue)
	if err := msg.Nack(false, requeue); err != nil {
		n.mylog.Action("nack_failed").Error("Failed to nack message", err)
	}
}

// Stop waits for Run to return and in-flight events to finish, then closes the broker.
func (n *Notifier) Stop(ctx context.Context) error {
	n.cancel()
	select {
	case <-n.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	n.wg.Wait()

	n.mu.Lock()
	mb := n.mb
	n.mb = nil
	n.mu.Unlock()

	if mb == nil {
		return nil
	}
	if err := mb.Close(); err != nil {
		n.mylog.Action("mb_close_failed").Error("Failed to close message broker", err)
		return fmt.Errorf("mb close: %w", err)
	}
	n.mylog.Action("mb_closed").Info("Message broker closed")
	return nil
}
