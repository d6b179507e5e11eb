package services

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"food-delivery/internal/notifier/app/core"
	"food-delivery/internal/notifier/domain/dto"
	"food-delivery/internal/xpkg/logger"
)

type NotifyService struct {
	mylog logger.Logger

	mu  sync.Mutex
	out io.Writer
}

func NewNotifyService(out io.Writer, mylog logger.Logger) *NotifyService {
	return &NotifyService{out: out, mylog: mylog}
}

// Handle decodes one event body and writes a notification line for it.
func (ns *NotifyService) Handle(body []byte) error {
	var event dto.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %v", core.ErrMalformedEvent, err)
	}
	if event.Event == "" || event.OrderID == "" {
		return fmt.Errorf("%w: event and order_id are required", core.ErrMalformedEvent)
	}

	ns.mylog.WithGroup("details").With("order_id", event.OrderID, "event", event.Event, "status", event.Status).
		Action("notification_received").Info("Received order event")

	ns.mu.Lock()
	defer ns.mu.Unlock()
	_, err := fmt.Fprintln(ns.out, message(event))
	return err
}

func message(e dto.OrderEvent) string {
	switch e.Event {
	case "order.created":
		return fmt.Sprintf("Order %s placed by user %s at restaurant %s.", e.OrderID, e.UserID, e.RestaurantID)
	case "order.shipper_assigned":
		shipper := "unknown"
		if e.ShipperID != nil {
			shipper = *e.ShipperID
		}
		return fmt.Sprintf("Order %s assigned to shipper %s, status '%s'.", e.OrderID, shipper, e.Status)
	default:
		return fmt.Sprintf("Order %s status changed to '%s'.", e.OrderID, e.Status)
	}
}
