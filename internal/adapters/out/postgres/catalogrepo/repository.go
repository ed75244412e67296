package catalogrepo

import (
	"context"

	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormCatalogRepository implements CatalogRepository using GORM.
// Each resolver is a FirstOrCreate on the entity's natural key, so repeated
// submissions of the same composition never accumulate duplicate rows.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// GetOrCreateJobCategory resolves a job category by its external numeric id.
func (r *GormCatalogRepository) GetOrCreateJobCategory(
	ctx context.Context,
	categoryID int,
) (catalog.JobCategory, error) {
	// validate through the domain constructor before touching the database
	if _, err := catalog.NewJobCategory(kernel.NewUUID(), categoryID); err != nil {
		return catalog.JobCategory{}, err
	}

	var dto JobCategoryDTO
	err := r.db.WithContext(ctx).
		Where(JobCategoryDTO{CategoryID: categoryID}).
		Attrs(JobCategoryDTO{ID: kernel.NewUUID().Bytes()}).
		FirstOrCreate(&dto).Error
	if err != nil {
		return catalog.JobCategory{}, err
	}

	return CategoryToDomain(dto)
}

// GetOrCreateTask resolves a task by name and agreement flag.
func (r *GormCatalogRepository) GetOrCreateTask(
	ctx context.Context,
	name string,
	agreed bool,
) (catalog.Task, error) {
	if _, err := catalog.NewTask(kernel.NewUUID(), name, agreed); err != nil {
		return catalog.Task{}, err
	}

	var dto TaskDTO
	err := r.db.WithContext(ctx).
		Where(map[string]any{"name": name, "agreed": agreed}).
		Attrs(TaskDTO{ID: kernel.NewUUID().Bytes()}).
		FirstOrCreate(&dto).Error
	if err != nil {
		return catalog.Task{}, err
	}

	return TaskToDomain(dto)
}

// GetOrCreateVehicle resolves a vehicle by brand, model, type and trailer type.
func (r *GormCatalogRepository) GetOrCreateVehicle(
	ctx context.Context,
	brand, model string,
	vehicleType catalog.VehicleType,
	trailerType string,
) (catalog.Vehicle, error) {
	if _, err := catalog.NewVehicle(kernel.NewUUID(), brand, model, vehicleType, trailerType); err != nil {
		return catalog.Vehicle{}, err
	}

	var dto VehicleDTO
	err := r.db.WithContext(ctx).
		Where(map[string]any{
			"brand":        brand,
			"model":        model,
			"vehicle_type": string(vehicleType),
			"trailer_type": trailerType,
		}).
		Attrs(VehicleDTO{ID: kernel.NewUUID().Bytes()}).
		FirstOrCreate(&dto).Error
	if err != nil {
		return catalog.Vehicle{}, err
	}

	return VehicleToDomain(dto)
}

// GetOrCreateContact resolves a contact by phone number. The stored display
// name is not overwritten when an existing contact is matched.
func (r *GormCatalogRepository) GetOrCreateContact(
	ctx context.Context,
	name, phone string,
) (catalog.Contact, error) {
	if _, err := catalog.NewContact(kernel.NewUUID(), name, phone); err != nil {
		return catalog.Contact{}, err
	}

	var dto ContactDTO
	err := r.db.WithContext(ctx).
		Where(ContactDTO{Phone: phone}).
		Attrs(ContactDTO{ID: kernel.NewUUID().Bytes(), Name: name}).
		FirstOrCreate(&dto).Error
	if err != nil {
		return catalog.Contact{}, err
	}

	return ContactToDomain(dto)
}

// GetOrCreateAddress resolves an address by street, city and region.
func (r *GormCatalogRepository) GetOrCreateAddress(
	ctx context.Context,
	street, city, region string,
) (catalog.Address, error) {
	if _, err := catalog.NewAddress(kernel.NewUUID(), street, city, region); err != nil {
		return catalog.Address{}, err
	}

	var dto AddressDTO
	err := r.db.WithContext(ctx).
		Where(map[string]any{"street": street, "city": city, "region": region}).
		Attrs(AddressDTO{ID: kernel.NewUUID().Bytes()}).
		FirstOrCreate(&dto).Error
	if err != nil {
		return catalog.Address{}, err
	}

	return AddressToDomain(dto)
}
