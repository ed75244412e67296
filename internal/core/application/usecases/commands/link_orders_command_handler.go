package commands

import (
	"context"
)

// LinkOrdersCommandHandler attaches a registered customer to every
// anonymous order placed with their contact phone. Typically invoked once,
// right after registration.
type LinkOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewLinkOrdersCommandHandler creates a handler for order linking.
func NewLinkOrdersCommandHandler(uowFactory OrderUoWFactory) LinkOrdersCommandHandler {
	return LinkOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the linking command. Linking an order that gained an
// owner since the lookup is skipped rather than failed: the remaining
// matches still link.
func (h *LinkOrdersCommandHandler) Handle(ctx context.Context, cmd LinkOrdersCommand) error {
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
	orders, err := orderRepo.GetAllAnonymousByPhone(ctx, cmd.Phone())
	if err != nil {
		return err
	}

	for _, aggregate := range orders {
		if aggregate.HasCustomer() {
			continue
		}
		if err = aggregate.LinkCustomer(cmd.CustomerID()); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
