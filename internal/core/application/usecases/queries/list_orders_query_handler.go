package queries

import (
	"context"
	"fmt"
	"time"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"
	"autoservice/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves order summary pages straight from the
// database, newest activity first. Hidden rows (cancellation snapshots)
// never appear.
//
// For contractors the open-pool filter is region-scoped: the region comes
// from the contractor directory, and for regions configured as city-scoped
// the match narrows to the contractor's city.
type ListOrdersQueryHandler struct {
	db                *gorm.DB
	contractorRepo    ports.ContractorRepository
	cityScopedRegions map[string]bool
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(
	db *gorm.DB,
	contractorRepo ports.ContractorRepository,
	cityScopedRegions map[string]bool,
) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{
		db:                db,
		contractorRepo:    contractorRepo,
		cityScopedRegions: cityScopedRegions,
	}
}

// Handle executes the listing query for one page.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where, args, err := h.buildFilter(ctx, query)
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf(`
		SELECT
			orders.id,
			orders.status,
			addresses.street,
			addresses.city,
			addresses.region,
			orders.created_at,
			orders.updated_at
		FROM orders
		JOIN addresses ON addresses.id = orders.address_id
		WHERE orders.hidden = false AND (%s)
		ORDER BY orders.updated_at DESC
		LIMIT ? OFFSET ?
	`, where)
	args = append(args, query.Limit(), query.Offset())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]ListOrdersQueryResponse, 0, query.Limit())
	for rows.Next() {
		var (
			id        uuid.UUID
			status    int
			resp      ListOrdersQueryResponse
			createdAt time.Time
			updatedAt time.Time
		)
		if err = rows.Scan(&id, &status, &resp.Street, &resp.City, &resp.Region, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status)
		resp.Number = fmt.Sprintf("%s - %s", orderID.String()[:8], createdAt.Format("20060102"))
		resp.CreatedAt = createdAt
		resp.UpdatedAt = updatedAt
		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

func (h ListOrdersQueryHandler) buildFilter(ctx context.Context, query ListOrdersQuery) (string, []any, error) {
	switch query.Role() {
	case kernel.RoleCustomer:
		return "orders.customer_id = ?", []any{query.ViewerID().Bytes()}, nil

	case kernel.RoleContractor:
		contractor, err := h.contractorRepo.Get(ctx, query.ViewerID())
		if err != nil {
			return "", nil, err
		}

		open := "orders.status = ? AND orders.master_id IS NULL AND addresses.region = ?"
		args := []any{query.ViewerID().Bytes(), int(order.Created), contractor.Region}
		if h.cityScopedRegions[contractor.Region] {
			open += " AND addresses.city = ?"
			args = append(args, contractor.City)
		}

		return "orders.master_id = ? OR (" + open + ")", args, nil

	default:
		return "", nil, order.ErrAccessDenied
	}
}
