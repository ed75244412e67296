// Package catalogrepo persists the deduplicated reference entities orders
// are composed from. Every lookup is get-or-create by the entity's natural
// key, executed inside the caller's transaction.
package catalogrepo

import (
	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobCategoryDTO represents the database structure for job categories.
// The external numeric category id is the natural key.
type JobCategoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID int       `gorm:"uniqueIndex"`
}

// TableName specifies the database table name for job categories.
func (JobCategoryDTO) TableName() string {
	return "job_categories"
}

// TaskDTO represents the database structure for repair tasks. Agreed and
// proposed tasks of the same name are distinct rows.
type TaskDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"uniqueIndex:idx_tasks_name_agreed"`
	Agreed bool      `gorm:"uniqueIndex:idx_tasks_name_agreed"`
}

// TableName specifies the database table name for tasks.
func (TaskDTO) TableName() string {
	return "tasks"
}

// VehicleDTO represents the database structure for catalog vehicles.
// Natural key: brand + model + type + trailer type.
type VehicleDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Brand       string    `gorm:"uniqueIndex:idx_vehicles_key"`
	Model       string    `gorm:"uniqueIndex:idx_vehicles_key"`
	VehicleType string    `gorm:"uniqueIndex:idx_vehicles_key"`
	TrailerType string    `gorm:"uniqueIndex:idx_vehicles_key"`
}

// TableName specifies the database table name for catalog vehicles.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// ContactDTO represents the database structure for contacts.
// The phone number is the natural key.
type ContactDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Phone string `gorm:"uniqueIndex"`
}

// TableName specifies the database table name for contacts.
func (ContactDTO) TableName() string {
	return "contacts"
}

// AddressDTO represents the database structure for service addresses.
// Natural key: street + city + region.
type AddressDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Street string    `gorm:"uniqueIndex:idx_addresses_key"`
	City   string    `gorm:"uniqueIndex:idx_addresses_key"`
	Region string    `gorm:"uniqueIndex:idx_addresses_key;index"`
}

// TableName specifies the database table name for addresses.
func (AddressDTO) TableName() string {
	return "addresses"
}

// CategoryToDomain converts a job category row to its domain representation.
func CategoryToDomain(dto JobCategoryDTO) (catalog.JobCategory, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.JobCategory{}, err
	}
	return catalog.NewJobCategory(id, dto.CategoryID)
}

// TaskToDomain converts a task row to its domain representation.
func TaskToDomain(dto TaskDTO) (catalog.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Task{}, err
	}
	return catalog.NewTask(id, dto.Name, dto.Agreed)
}

// VehicleToDomain converts a catalog vehicle row to its domain representation.
func VehicleToDomain(dto VehicleDTO) (catalog.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Vehicle{}, err
	}
	return catalog.NewVehicle(id, dto.Brand, dto.Model, catalog.VehicleType(dto.VehicleType), dto.TrailerType)
}

// ContactToDomain converts a contact row to its domain representation.
func ContactToDomain(dto ContactDTO) (catalog.Contact, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Contact{}, err
	}
	return catalog.NewContact(id, dto.Name, dto.Phone)
}

// AddressToDomain converts an address row to its domain representation.
func AddressToDomain(dto AddressDTO) (catalog.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Address{}, err
	}
	return catalog.NewAddress(id, dto.Street, dto.City, dto.Region)
}
