package queries

import (
	"context"

	"autoservice/internal/core/domain/model/order"
	"autoservice/internal/core/ports"
)

// GetOrderAnonymousQueryHandler serves the public single-order read.
type GetOrderAnonymousQueryHandler struct {
	orderRepo ports.OrderRepository
	unitPrice int
}

// NewGetOrderAnonymousQueryHandler creates a handler for public order reads.
func NewGetOrderAnonymousQueryHandler(
	orderRepo ports.OrderRepository,
	unitPrice int,
) GetOrderAnonymousQueryHandler {
	return GetOrderAnonymousQueryHandler{
		orderRepo: orderRepo,
		unitPrice: unitPrice,
	}
}

// Handle executes the query. Orders that have left the open pool are not
// publicly visible and fail with order.ErrAccessDenied.
func (h GetOrderAnonymousQueryHandler) Handle(
	ctx context.Context,
	query GetOrderAnonymousQuery,
) (order.View, error) {
	if err := query.Validate(); err != nil {
		return order.View{}, err
	}

	aggregate, err := h.orderRepo.Get(ctx, query.OrderID())
	if err != nil {
		return order.View{}, err
	}

	return aggregate.ProjectAnonymous(h.unitPrice)
}
