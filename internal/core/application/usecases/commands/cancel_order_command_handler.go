package commands

import (
	"context"
	"time"

	"autoservice/internal/core/domain/services"
)

// CancelOrderCommandHandler executes the clone-then-reset cancellation:
// inside one transaction it inserts a cancelled snapshot of the order,
// appends the snapshot's history record and returns the original row to
// the open pool with the contractor's task proposals wiped.
type CancelOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	statusChanger services.StatusChanger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	statusChanger services.StatusChanger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:    uowFactory,
		statusChanger: statusChanger,
	}
}

// Handle processes the cancellation command. The order row lock taken by
// GetForUpdate makes cancellation and any concurrent status change on the
// same order mutually exclusive.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	clone, history, err := h.statusChanger.Cancel(aggregate, cmd.Role(), cmd.UserID(), time.Now())
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, clone); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = orderRepo.AddHistory(ctx, history); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
