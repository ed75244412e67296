// Package ports defines repository and collaborator interfaces for the
// repair-order domain. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"
	"time"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their vehicle/job composition and the status history trail.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, replacing its
	// vehicle and job rows with the aggregate's current composition.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order while holding an exclusive row lock
	// for the rest of the transaction. Every mutating operation loads the
	// order this way so concurrent acceptance and cancellation serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AddHistory appends an immutable status-transition record.
	AddHistory(ctx context.Context, entry order.HistoryEntry) error

	// GetAllAnonymousByPhone retrieves anonymous orders whose requester
	// contact matches phone. Used to link orders to a registering customer.
	GetAllAnonymousByPhone(ctx context.Context, phone string) ([]*order.Order, error)

	// GetAllCreatedBefore retrieves open, unhidden orders created before the
	// given time. Used by the stale-order rebroadcast job.
	GetAllCreatedBefore(ctx context.Context, before time.Time) ([]*order.Order, error)
}
