package queries

import (
	"context"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/ports"
)

// GetOrderQueryHandler loads one order and projects it for the viewer. The
// projection rules live on the aggregate; the handler only resolves the
// assigned contractor's balance on top.
type GetOrderQueryHandler struct {
	orderRepo   ports.OrderRepository
	accountRepo ports.AccountRepository
	unitPrice   int
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(
	orderRepo ports.OrderRepository,
	accountRepo ports.AccountRepository,
	unitPrice int,
) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		orderRepo:   orderRepo,
		accountRepo: accountRepo,
		unitPrice:   unitPrice,
	}
}

// Handle executes the query. Lock-free: concurrent mutations may win, the
// caller gets a consistent snapshot either way.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	aggregate, err := h.orderRepo.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	view, err := aggregate.Project(query.Role(), query.ViewerID(), h.unitPrice)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response := GetOrderQueryResponse{View: view}

	assigned := query.Role() == kernel.RoleContractor &&
		aggregate.MasterID() != nil &&
		aggregate.MasterID().IsEqual(query.ViewerID())
	if assigned {
		acct, acctErr := h.accountRepo.GetByOwner(ctx, query.ViewerID())
		if acctErr != nil {
			return GetOrderQueryResponse{}, acctErr
		}
		balance := acct.Balance()
		response.Balance = &balance
	}

	return response, nil
}
