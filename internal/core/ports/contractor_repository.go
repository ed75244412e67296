package ports

import (
	"context"

	"autoservice/internal/core/domain/model/kernel"
)

// Contractor is a directory entry for a service provider. Identity and
// credentials live with the auth collaborator; this read model carries only
// what order listing and notification fan-out need.
type Contractor struct {
	ID             kernel.UUID
	Name           string
	Phone          string
	Region         string
	City           string
	TelegramChatID int64
}

// ContractorRepository is the read-side contract for the contractor
// directory.
type ContractorRepository interface {
	// Get retrieves one directory entry.
	Get(ctx context.Context, id kernel.UUID) (*Contractor, error)

	// GetAllByRegion retrieves the contractors working a region. When city
	// is non-empty the match is narrowed to that city; this is how
	// city-scoped regions fan out notifications.
	GetAllByRegion(ctx context.Context, region, city string) ([]*Contractor, error)
}
