// Package catalog contains the deduplicated reference entities a repair
// order is composed from: job categories, tasks, vehicles, contacts and
// addresses. Each entity carries a natural key; resolving an entity by its
// natural key either finds the existing row or produces a new one, so the
// order aggregate never accumulates duplicate reference rows.
package catalog

import (
	"fmt"
	"strings"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/errs"
)

// VehicleType distinguishes the two kinds of serviced vehicles.
type VehicleType string

const (
	VehicleTypeTruck   VehicleType = "truck"
	VehicleTypeTrailer VehicleType = "trailer"
)

// Validate checks that the vehicle type is one of the defined kinds.
func (t VehicleType) Validate() error {
	if t != VehicleTypeTruck && t != VehicleTypeTrailer {
		return errs.NewValueIsInvalidErrorWithCause("vehicle type", fmt.Errorf("%q is not a valid vehicle type", t))
	}
	return nil
}

// JobCategory is a coarse repair domain (e.g. "brakes").
// Natural key: the external numeric category id.
type JobCategory struct {
	id         kernel.UUID
	categoryID int
}

// NewJobCategory creates a job category reference.
// The external category id must be positive.
func NewJobCategory(id kernel.UUID, categoryID int) (JobCategory, error) {
	if err := id.Validate(); err != nil {
		return JobCategory{}, err
	}
	if categoryID <= 0 {
		return JobCategory{}, errs.NewValueIsInvalidErrorWithCause(
			"category id", fmt.Errorf("%d is not greater than 0", categoryID))
	}
	return JobCategory{id: id, categoryID: categoryID}, nil
}

// ID returns the category's unique identifier.
func (c JobCategory) ID() kernel.UUID { return c.id }

// CategoryID returns the external numeric category id (the natural key).
func (c JobCategory) CategoryID() int { return c.categoryID }

// Task is a specific agreed repair item within a job category.
// Natural key: the task name.
type Task struct {
	id     kernel.UUID
	name   string
	agreed bool
}

// NewTask creates a task reference. The name must not be empty.
func NewTask(id kernel.UUID, name string, agreed bool) (Task, error) {
	if err := id.Validate(); err != nil {
		return Task{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Task{}, errs.NewValueIsRequiredError("task name")
	}
	return Task{id: id, name: name, agreed: agreed}, nil
}

// ID returns the task's unique identifier.
func (t Task) ID() kernel.UUID { return t.id }

// Name returns the task name (the natural key).
func (t Task) Name() string { return t.name }

// Agreed reports whether the customer has agreed to the task.
func (t Task) Agreed() bool { return t.agreed }

// Vehicle is a catalog vehicle description shared by orders.
// Natural key: brand + model + type + trailer type. Model and trailer type
// are optional; an empty string means "not specified".
type Vehicle struct {
	id          kernel.UUID
	brand       string
	model       string
	vehicleType VehicleType
	trailerType string
}

// NewVehicle creates a vehicle reference. Brand and a valid type are required.
func NewVehicle(id kernel.UUID, brand, model string, vehicleType VehicleType, trailerType string) (Vehicle, error) {
	if err := id.Validate(); err != nil {
		return Vehicle{}, err
	}
	if strings.TrimSpace(brand) == "" {
		return Vehicle{}, errs.NewValueIsRequiredError("vehicle brand")
	}
	if err := vehicleType.Validate(); err != nil {
		return Vehicle{}, err
	}
	return Vehicle{
		id:          id,
		brand:       brand,
		model:       model,
		vehicleType: vehicleType,
		trailerType: trailerType,
	}, nil
}

// ID returns the vehicle's unique identifier.
func (v Vehicle) ID() kernel.UUID { return v.id }

// Brand returns the vehicle brand.
func (v Vehicle) Brand() string { return v.brand }

// Model returns the vehicle model, empty when not specified.
func (v Vehicle) Model() string { return v.model }

// Type returns the vehicle type.
func (v Vehicle) Type() VehicleType { return v.vehicleType }

// TrailerType returns the trailer type, empty when not specified.
func (v Vehicle) TrailerType() string { return v.trailerType }

// HasSameKey reports whether two vehicles share the same natural key.
func (v Vehicle) HasSameKey(other Vehicle) bool {
	return v.brand == other.brand &&
		v.model == other.model &&
		v.vehicleType == other.vehicleType &&
		v.trailerType == other.trailerType
}

// Contact is a person reachable by phone. Natural key: the phone number.
// Contacts identify anonymous customers and order drivers.
type Contact struct {
	id    kernel.UUID
	name  string
	phone string
}

// NewContact creates a contact reference. The phone number is required.
func NewContact(id kernel.UUID, name, phone string) (Contact, error) {
	if err := id.Validate(); err != nil {
		return Contact{}, err
	}
	if strings.TrimSpace(phone) == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact phone")
	}
	return Contact{id: id, name: name, phone: phone}, nil
}

// ID returns the contact's unique identifier.
func (c Contact) ID() kernel.UUID { return c.id }

// Name returns the contact's display name.
func (c Contact) Name() string { return c.name }

// Phone returns the contact's phone number (the natural key).
func (c Contact) Phone() string { return c.phone }

// Address locates an order geographically for contractor matching.
// Natural key: street + city + region. Street and city are optional.
type Address struct {
	id     kernel.UUID
	street string
	city   string
	region string
}

// NewAddress creates an address reference. The region is required because
// contractor matching and notification fan-out are region-scoped.
func NewAddress(id kernel.UUID, street, city, region string) (Address, error) {
	if err := id.Validate(); err != nil {
		return Address{}, err
	}
	if strings.TrimSpace(region) == "" {
		return Address{}, errs.NewValueIsRequiredError("address region")
	}
	return Address{id: id, street: street, city: city, region: region}, nil
}

// ID returns the address's unique identifier.
func (a Address) ID() kernel.UUID { return a.id }

// Street returns the street line, empty when not specified.
func (a Address) Street() string { return a.street }

// City returns the city, empty when not specified.
func (a Address) City() string { return a.city }

// Region returns the region.
func (a Address) Region() string { return a.region }
