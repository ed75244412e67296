// Package accountrepo persists contractor balance accounts.
package accountrepo

import (
	"autoservice/internal/core/domain/model/account"
	"autoservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO represents the database structure for contractor accounts.
// One account per contractor.
type AccountDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Balance int
}

// TableName specifies the database table name for accounts.
func (AccountDTO) TableName() string {
	return "accounts"
}

func fromDomain(aggregate *account.Account) AccountDTO {
	return AccountDTO{
		ID:      aggregate.ID().Bytes(),
		OwnerID: aggregate.OwnerID().Bytes(),
		Balance: aggregate.Balance(),
	}
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(id, ownerID, dto.Balance)
}
