// Package notifications fans order events out to contractors. Fan-out is
// at-least-once and fully detached from the order transaction that
// triggered it: delivery failures are logged and never retried into the
// order flow.
package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/ports"
)

// OrderNotifier tells the contractors of an order's region that a new order
// is available. For regions configured as city-scoped the fan-out narrows
// to the order's city.
type OrderNotifier struct {
	orderRepo         ports.OrderRepository
	contractorRepo    ports.ContractorRepository
	sink              ports.NotificationSink
	cityScopedRegions map[string]bool
	logger            *slog.Logger
}

// NewOrderNotifier creates the regional fan-out service.
func NewOrderNotifier(
	orderRepo ports.OrderRepository,
	contractorRepo ports.ContractorRepository,
	sink ports.NotificationSink,
	cityScopedRegions map[string]bool,
	logger *slog.Logger,
) *OrderNotifier {
	return &OrderNotifier{
		orderRepo:         orderRepo,
		contractorRepo:    contractorRepo,
		sink:              sink,
		cityScopedRegions: cityScopedRegions,
		logger:            logger,
	}
}

// NotifyNewOrder triggers the fan-out for one committed order and returns
// immediately. The caller's transaction is already closed; nothing here can
// affect it.
func (n *OrderNotifier) NotifyNewOrder(ctx context.Context, orderID kernel.UUID) {
	go func() {
		if err := n.Broadcast(ctx, orderID); err != nil {
			n.logger.Error("new order fan-out failed",
				"order_id", orderID.String(), "error", err)
		}
	}()
}

// Broadcast performs the fan-out synchronously. The stale-order rebroadcast
// job calls this directly. A single contractor delivery failure is logged
// and does not stop the remaining deliveries.
func (n *OrderNotifier) Broadcast(ctx context.Context, orderID kernel.UUID) error {
	aggregate, err := n.orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	address := aggregate.Address()
	city := ""
	if n.cityScopedRegions[address.Region()] {
		city = address.City()
	}

	contractors, err := n.contractorRepo.GetAllByRegion(ctx, address.Region(), city)
	if err != nil {
		return err
	}

	text := n.messageFor(aggregate.Number(), address.Region(), address.City())
	for _, contractor := range contractors {
		if contractor.TelegramChatID == 0 {
			continue
		}
		if sendErr := n.sink.Send(ctx, contractor.TelegramChatID, text); sendErr != nil {
			n.logger.Error("notification delivery failed",
				"order_id", orderID.String(),
				"contractor_id", contractor.ID.String(),
				"error", sendErr)
		}
	}

	return nil
}

func (n *OrderNotifier) messageFor(number, region, city string) string {
	place := region
	if city != "" {
		place = city + ", " + region
	}
	return fmt.Sprintf("New repair order %s is available in %s", number, place)
}
