package ports

import (
	"context"

	"autoservice/internal/core/domain/model/account"
	"autoservice/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for contractor balance
// accounts.
type AccountRepository interface {
	// Add persists a new account.
	Add(ctx context.Context, aggregate *account.Account) error

	// Update persists the account's current balance.
	Update(ctx context.Context, aggregate *account.Account) error

	// GetByOwner retrieves the account owned by a contractor.
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (*account.Account, error)

	// GetByOwnerForUpdate retrieves the contractor's account while holding
	// an exclusive row lock for the rest of the transaction. Fund
	// reservations must load the account this way so concurrent spends of
	// the same balance serialize.
	GetByOwnerForUpdate(ctx context.Context, ownerID kernel.UUID) (*account.Account, error)
}
