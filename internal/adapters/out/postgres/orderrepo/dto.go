// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The aggregate spans three tables: the order row, its
// vehicle assignments and their job rows; catalog references are joined in
// on read so the aggregate restores without extra round trips.
package orderrepo

import (
	"time"

	"autoservice/internal/adapters/out/postgres/catalogrepo"
	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed for the hot lookups: by customer, by assigned contractor and by
// status for the open pool.
type OrderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status int       `gorm:"index"`

	CustomerID        *uuid.UUID               `gorm:"type:uuid;index"`
	CustomerContactID *uuid.UUID               `gorm:"type:uuid"`
	CustomerContact   *catalogrepo.ContactDTO  `gorm:"foreignKey:CustomerContactID"`
	DriverContactID   *uuid.UUID               `gorm:"type:uuid"`
	DriverContact     *catalogrepo.ContactDTO  `gorm:"foreignKey:DriverContactID"`
	MasterID          *uuid.UUID               `gorm:"type:uuid;index"`
	AddressID         uuid.UUID                `gorm:"type:uuid"`
	Address           catalogrepo.AddressDTO   `gorm:"foreignKey:AddressID"`

	Latitude  *float64
	Longitude *float64

	Description         string
	NeedEvacuator       bool
	NeedFieldTechnician bool

	ChatID       *uuid.UUID `gorm:"type:uuid"`
	CloneOrderID *uuid.UUID `gorm:"type:uuid"`
	Hidden       bool       `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Vehicles []VehicleDTO `gorm:"foreignKey:OrderID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// VehicleDTO represents one vehicle assignment row within an order.
type VehicleDTO struct {
	ID           uuid.UUID               `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID               `gorm:"type:uuid;index"`
	VehicleID    uuid.UUID               `gorm:"type:uuid"`
	Vehicle      catalogrepo.VehicleDTO  `gorm:"foreignKey:VehicleID"`
	LicensePlate string
	VIN          string `gorm:"column:vin"`
	Mileage      int

	Jobs []JobDTO `gorm:"foreignKey:OrderVehicleID"`
}

// TableName specifies the database table name for vehicle assignments.
func (VehicleDTO) TableName() string {
	return "order_vehicles"
}

// JobDTO represents one job row: a category, optionally scoped to a task.
type JobDTO struct {
	ID             uuid.UUID                  `gorm:"type:uuid;primaryKey"`
	OrderVehicleID uuid.UUID                  `gorm:"type:uuid;index"`
	CategoryID     uuid.UUID                  `gorm:"type:uuid"`
	Category       catalogrepo.JobCategoryDTO `gorm:"foreignKey:CategoryID"`
	TaskID         *uuid.UUID                 `gorm:"type:uuid"`
	Task           *catalogrepo.TaskDTO       `gorm:"foreignKey:TaskID"`
}

// TableName specifies the database table name for job rows.
func (JobDTO) TableName() string {
	return "order_jobs"
}

// HistoryDTO represents one immutable status-transition record.
type HistoryDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;index"`
	Status    int
	MasterID  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

// TableName specifies the database table name for history records.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order aggregate to its database representation,
// composition included.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		Status:              int(aggregate.Status()),
		CustomerID:          uuidPtr(aggregate.CustomerID()),
		MasterID:            uuidPtr(aggregate.MasterID()),
		AddressID:           aggregate.Address().ID().Bytes(),
		Description:         aggregate.Description(),
		NeedEvacuator:       aggregate.NeedEvacuator(),
		NeedFieldTechnician: aggregate.NeedFieldTechnician(),
		ChatID:              uuidPtr(aggregate.ChatID()),
		CloneOrderID:        uuidPtr(aggregate.CloneOrderID()),
		Hidden:              aggregate.Hidden(),
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
	}
	dto.Latitude, dto.Longitude = aggregate.Coordinates()

	if contact := aggregate.CustomerContact(); contact != nil {
		raw := contact.ID().Bytes()
		dto.CustomerContactID = &raw
	}
	if contact := aggregate.DriverContact(); contact != nil {
		raw := contact.ID().Bytes()
		dto.DriverContactID = &raw
	}

	for _, assignment := range aggregate.Vehicles() {
		dto.Vehicles = append(dto.Vehicles, vehicleFromDomain(aggregate.ID(), assignment))
	}

	return dto
}

func vehicleFromDomain(orderID kernel.UUID, assignment *order.VehicleAssignment) VehicleDTO {
	dto := VehicleDTO{
		ID:           assignment.ID().Bytes(),
		OrderID:      orderID.Bytes(),
		VehicleID:    assignment.Vehicle().ID().Bytes(),
		LicensePlate: assignment.LicensePlate(),
		VIN:          assignment.VIN(),
		Mileage:      assignment.Mileage(),
	}

	for _, job := range assignment.Jobs() {
		jobDTO := JobDTO{
			ID:             job.ID().Bytes(),
			OrderVehicleID: assignment.ID().Bytes(),
			CategoryID:     job.Category().ID().Bytes(),
		}
		if task := job.Task(); task != nil {
			raw := task.ID().Bytes()
			jobDTO.TaskID = &raw
		}
		dto.Jobs = append(dto.Jobs, jobDTO)
	}

	return dto
}

func historyFromDomain(entry order.HistoryEntry) HistoryDTO {
	return HistoryDTO{
		ID:        entry.ID().Bytes(),
		OrderID:   entry.OrderID().Bytes(),
		Status:    int(entry.Status()),
		MasterID:  uuidPtr(entry.MasterID()),
		CreatedAt: entry.CreatedAt(),
	}
}

// toDomain converts a fully preloaded DTO back to the order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	address, err := catalogrepo.AddressToDomain(dto.Address)
	if err != nil {
		return nil, err
	}

	params := order.RestoreOrderParams{
		ID:                  id,
		Status:              order.Status(dto.Status),
		Address:             address,
		Latitude:            dto.Latitude,
		Longitude:           dto.Longitude,
		Description:         dto.Description,
		NeedEvacuator:       dto.NeedEvacuator,
		NeedFieldTechnician: dto.NeedFieldTechnician,
		Hidden:              dto.Hidden,
		CreatedAt:           dto.CreatedAt,
		UpdatedAt:           dto.UpdatedAt,
	}

	if params.CustomerID, err = kernelPtr(dto.CustomerID); err != nil {
		return nil, err
	}
	if params.MasterID, err = kernelPtr(dto.MasterID); err != nil {
		return nil, err
	}
	if params.ChatID, err = kernelPtr(dto.ChatID); err != nil {
		return nil, err
	}
	if params.CloneOrderID, err = kernelPtr(dto.CloneOrderID); err != nil {
		return nil, err
	}

	if dto.CustomerContact != nil {
		contact, contactErr := catalogrepo.ContactToDomain(*dto.CustomerContact)
		if contactErr != nil {
			return nil, contactErr
		}
		params.CustomerContact = &contact
	}
	if dto.DriverContact != nil {
		contact, contactErr := catalogrepo.ContactToDomain(*dto.DriverContact)
		if contactErr != nil {
			return nil, contactErr
		}
		params.DriverContact = &contact
	}

	for _, vehicleDTO := range dto.Vehicles {
		assignment, vehicleErr := vehicleToDomain(vehicleDTO)
		if vehicleErr != nil {
			return nil, vehicleErr
		}
		params.Vehicles = append(params.Vehicles, assignment)
	}

	return order.RestoreOrder(params)
}

func vehicleToDomain(dto VehicleDTO) (*order.VehicleAssignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicle, err := catalogrepo.VehicleToDomain(dto.Vehicle)
	if err != nil {
		return nil, err
	}

	jobs := make([]order.JobAssignment, 0, len(dto.Jobs))
	for _, jobDTO := range dto.Jobs {
		job, jobErr := jobToDomain(jobDTO)
		if jobErr != nil {
			return nil, jobErr
		}
		jobs = append(jobs, job)
	}

	return order.RestoreVehicleAssignment(id, vehicle, dto.LicensePlate, dto.VIN, dto.Mileage, jobs)
}

func jobToDomain(dto JobDTO) (order.JobAssignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.JobAssignment{}, err
	}

	category, err := catalogrepo.CategoryToDomain(dto.Category)
	if err != nil {
		return order.JobAssignment{}, err
	}

	var task *catalog.Task
	if dto.Task != nil {
		restored, taskErr := catalogrepo.TaskToDomain(*dto.Task)
		if taskErr != nil {
			return order.JobAssignment{}, taskErr
		}
		task = &restored
	}

	return order.NewJobAssignment(id, category, task)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelPtr(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
