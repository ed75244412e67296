package queries

import (
	"errors"
	"fmt"
	"time"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"
	"autoservice/internal/pkg/errs"
	"autoservice/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// maxPageSize caps one listing page.
const maxPageSize = 20

// ListOrdersQuery retrieves a page of order summaries for a viewer. A
// customer lists the orders they own; a contractor lists the orders
// assigned to them plus the open orders available in their working region.
type ListOrdersQuery struct {
	viewerID kernel.UUID
	role     kernel.Role
	offset   int
	limit    int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query. A non-positive limit defaults
// to the maximum page size; a larger one is rejected.
func NewListOrdersQuery(viewerID kernel.UUID, role kernel.Role, offset, limit int) (ListOrdersQuery, error) {
	if err := errors.Join(viewerID.Validate(), role.Validate()); err != nil {
		return ListOrdersQuery{}, err
	}
	if offset < 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"offset", fmt.Errorf("%d is negative", offset))
	}
	if limit > maxPageSize {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxPageSize)
	}
	if limit <= 0 {
		limit = maxPageSize
	}

	return ListOrdersQuery{
		viewerID: viewerID,
		role:     role,
		offset:   offset,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// ViewerID returns the acting user.
func (q ListOrdersQuery) ViewerID() kernel.UUID { return q.viewerID }

// Role returns the acting user's role.
func (q ListOrdersQuery) Role() kernel.Role { return q.role }

// Offset returns the page offset.
func (q ListOrdersQuery) Offset() int { return q.offset }

// Limit returns the page size.
func (q ListOrdersQuery) Limit() int { return q.limit }

// ListOrdersQueryResponse is one order summary row. Listings carry no
// contacts or composition; clients follow up with GetOrder for detail.
type ListOrdersQueryResponse struct {
	ID        kernel.UUID
	Number    string
	Status    order.Status
	Street    string
	City      string
	Region    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
