package orderrepo

import (
	"context"
	"errors"
	"time"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"
	"autoservice/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order aggregate with its full composition.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return err
	}
	if err := r.insertComposition(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. The vehicle and job rows are replaced
// wholesale with the aggregate's current composition, matching the
// destructive replace semantics of the domain.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Select("*") writes every column so released contractor and chat
	// references go back to NULL
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit(clause.Associations).
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.deleteComposition(ctx, dto); err != nil {
		return err
	}
	if err := r.insertComposition(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its full composition.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order while taking a FOR UPDATE lock on its row.
// The lock is held until the surrounding transaction ends, serializing
// concurrent acceptance, cancellation and status changes on the same order.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

// AddHistory appends an immutable status-transition record.
func (r *GormOrderRepository) AddHistory(ctx context.Context, entry order.HistoryEntry) error {
	dto := historyFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllAnonymousByPhone retrieves unhidden orders without an owner whose
// anonymous contact matches phone.
func (r *GormOrderRepository) GetAllAnonymousByPhone(
	ctx context.Context,
	phone string,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.preloaded(ctx).
		Joins("JOIN contacts ON contacts.id = orders.customer_contact_id").
		Where("orders.customer_id IS NULL AND orders.hidden = false AND contacts.phone = ?", phone).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetAllCreatedBefore retrieves open, unhidden, unassigned orders created
// before the given time. Feeds the stale-order rebroadcast job.
func (r *GormOrderRepository) GetAllCreatedBefore(
	ctx context.Context,
	before time.Time,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.preloaded(ctx).
		Where("status = ? AND hidden = false AND master_id IS NULL AND created_at < ?", order.Created, before).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.preloaded(ctx)
	if forUpdate {
		// the lock applies to the orders row; child rows are only ever
		// touched under this lock
		db = db.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "orders"}})
	}

	var dto OrderDTO
	if err := db.First(&dto, "orders.id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("CustomerContact").
		Preload("DriverContact").
		Preload("Address").
		Preload("Vehicles.Vehicle").
		Preload("Vehicles.Jobs.Category").
		Preload("Vehicles.Jobs.Task")
}

func (r *GormOrderRepository) insertComposition(ctx context.Context, dto OrderDTO) error {
	for _, vehicleDTO := range dto.Vehicles {
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&vehicleDTO).Error; err != nil {
			return err
		}
		for _, jobDTO := range vehicleDTO.Jobs {
			if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&jobDTO).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *GormOrderRepository) deleteComposition(ctx context.Context, dto OrderDTO) error {
	err := r.db.WithContext(ctx).Exec(`
		DELETE FROM order_jobs
		WHERE order_vehicle_id IN (SELECT id FROM order_vehicles WHERE order_id = ?)
	`, dto.ID).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Where("order_id = ?", dto.ID).Delete(&VehicleDTO{}).Error
}

func (r *GormOrderRepository) toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}
