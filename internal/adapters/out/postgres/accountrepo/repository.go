package accountrepo

import (
	"context"
	"errors"

	"autoservice/internal/core/domain/model/account"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAccountRepository implements AccountRepository using GORM.
type GormAccountRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAccountRepository creates a new GORM account repository.
func NewGormAccountRepository(db *gorm.DB, tracker aggregateTracker) *GormAccountRepository {
	return &GormAccountRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new account.
func (r *GormAccountRepository) Add(ctx context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the account's current balance.
func (r *GormAccountRepository) Update(ctx context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AccountDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByOwner retrieves the account owned by a contractor.
func (r *GormAccountRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*account.Account, error) {
	return r.getByOwner(ctx, ownerID, false)
}

// GetByOwnerForUpdate retrieves the contractor's account while taking a
// FOR UPDATE lock on its row, so concurrent reservations against the same
// balance serialize.
func (r *GormAccountRepository) GetByOwnerForUpdate(
	ctx context.Context,
	ownerID kernel.UUID,
) (*account.Account, error) {
	return r.getByOwner(ctx, ownerID, true)
}

func (r *GormAccountRepository) getByOwner(
	ctx context.Context,
	ownerID kernel.UUID,
	forUpdate bool,
) (*account.Account, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto AccountDTO
	if err := db.First(&dto, "owner_id = ?", ownerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("account owner", ownerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
