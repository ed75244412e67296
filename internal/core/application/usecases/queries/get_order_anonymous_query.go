package queries

import (
	"errors"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/guard"
)

var ErrGetOrderAnonymousQueryIsNotConstructed = errors.New(
	"GetOrderAnonymousQuery must be created via NewGetOrderAnonymousQuery constructor",
)

// GetOrderAnonymousQuery is the public read used before any identity is
// known, e.g. by an anonymous customer tracking the order they just placed.
// Only open orders are visible and the view is always anonymized.
type GetOrderAnonymousQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderAnonymousQuery creates a public read query for one order.
func NewGetOrderAnonymousQuery(orderID kernel.UUID) (GetOrderAnonymousQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderAnonymousQuery{}, err
	}

	return GetOrderAnonymousQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderAnonymousQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderAnonymousQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderAnonymousQuery) OrderID() kernel.UUID { return q.orderID }
