package commands

import (
	"context"
	"time"

	"autoservice/internal/core/domain/model/account"
	"autoservice/internal/core/domain/model/chat"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"
	"autoservice/internal/core/domain/services"
)

// SetStatusCommandHandler applies role-gated status transitions. The order
// row is locked for the whole transaction; an acceptance additionally locks
// the contractor's account, reserves the order cost and provisions the chat
// when the customer is known. Status, balance, chat and history commit as
// one atomic unit.
type SetStatusCommandHandler struct {
	uowFactory    AcceptUoWFactory
	statusChanger services.StatusChanger
}

// NewSetStatusCommandHandler creates a handler for status transitions.
func NewSetStatusCommandHandler(
	uowFactory AcceptUoWFactory,
	statusChanger services.StatusChanger,
) SetStatusCommandHandler {
	return SetStatusCommandHandler{
		uowFactory:    uowFactory,
		statusChanger: statusChanger,
	}
}

// Handle processes the status change command.
//
// The order is loaded FOR UPDATE first: the loser of a concurrent
// acceptance race blocks here until the winner commits, then observes the
// assigned contractor and fails with order.ErrOrderAlreadyInProgress. Any
// error rolls back every effect of the transition.
func (h *SetStatusCommandHandler) Handle(ctx context.Context, cmd SetStatusCommand) error {
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

	var acct *account.Account
	if cmd.Target() == order.InProgress {
		acct, err = uow.AccountRepository().GetByOwnerForUpdate(ctx, cmd.UserID())
		if err != nil {
			return err
		}
	}

	now := time.Now()
	result, err := h.statusChanger.ChangeStatus(aggregate, cmd.Target(), cmd.Role(), cmd.UserID(), acct, now)
	if err != nil {
		return err
	}

	if result.NeedChat {
		if err = h.provisionChat(ctx, uow, aggregate, now); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if acct != nil {
		if err = uow.AccountRepository().Update(ctx, acct); err != nil {
			return err
		}
	}
	if err = orderRepo.AddHistory(ctx, result.History); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *SetStatusCommandHandler) provisionChat(
	ctx context.Context,
	uow AcceptUoW,
	aggregate *order.Order,
	now time.Time,
) error {
	newChat, err := chat.NewChat(kernel.NewUUID(), *aggregate.CustomerID(), *aggregate.MasterID(), now)
	if err != nil {
		return err
	}
	if err = uow.ChatRepository().Add(ctx, newChat); err != nil {
		return err
	}

	return aggregate.AttachChat(newChat.ID())
}
