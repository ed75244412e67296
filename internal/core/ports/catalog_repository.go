package ports

import (
	"context"

	"autoservice/internal/core/domain/model/catalog"
)

// CatalogRepository resolves reference entities by their natural keys.
// Every method is idempotent: it returns the existing row matching the
// natural key or persists and returns a new one, inside the caller's
// transaction. The aggregate therefore never accumulates duplicate
// reference rows.
type CatalogRepository interface {
	// GetOrCreateJobCategory resolves a job category by its external
	// numeric id.
	GetOrCreateJobCategory(ctx context.Context, categoryID int) (catalog.JobCategory, error)

	// GetOrCreateTask resolves a task by name.
	GetOrCreateTask(ctx context.Context, name string, agreed bool) (catalog.Task, error)

	// GetOrCreateVehicle resolves a vehicle by brand, model, type and
	// trailer type.
	GetOrCreateVehicle(
		ctx context.Context,
		brand, model string,
		vehicleType catalog.VehicleType,
		trailerType string,
	) (catalog.Vehicle, error)

	// GetOrCreateContact resolves a contact by phone number.
	GetOrCreateContact(ctx context.Context, name, phone string) (catalog.Contact, error)

	// GetOrCreateAddress resolves an address by street, city and region.
	GetOrCreateAddress(ctx context.Context, street, city, region string) (catalog.Address, error)
}
