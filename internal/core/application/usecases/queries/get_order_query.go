// Package queries contains read-only operations in the CQRS split. Query
// handlers never mutate state and never take row locks.
package queries

import (
	"errors"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"
	"autoservice/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order projected for a viewer. What the viewer
// sees depends on their role and relation to the order: owners and the
// assigned contractor get the full view, unassigned contractors get an
// anonymized one for open orders and nothing for engaged ones.
type GetOrderQuery struct {
	orderID  kernel.UUID
	viewerID kernel.UUID
	role     kernel.Role

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order on behalf of viewerID
// acting as role.
func NewGetOrderQuery(orderID, viewerID kernel.UUID, role kernel.Role) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), viewerID.Validate(), role.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:  orderID,
		viewerID: viewerID,
		role:     role,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// ViewerID returns the acting user.
func (q GetOrderQuery) ViewerID() kernel.UUID { return q.viewerID }

// Role returns the acting user's role.
func (q GetOrderQuery) Role() kernel.Role { return q.role }

// GetOrderQueryResponse carries the role-projected order view. Balance is
// populated only when the viewer is the contractor assigned to the order.
type GetOrderQueryResponse struct {
	View    order.View
	Balance *int
}
