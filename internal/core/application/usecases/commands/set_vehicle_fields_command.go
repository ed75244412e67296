package commands

import (
	"errors"
	"fmt"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/errs"
	"autoservice/internal/pkg/guard"
)

var ErrSetVehicleFieldsCommandIsNotConstructed = errors.New(
	"SetVehicleFieldsCommand must be created via NewSetVehicleFieldsCommand constructor",
)

// SetVehicleFieldsCommand represents an update of the order-specific fields
// of one vehicle: license plate, VIN and mileage.
type SetVehicleFieldsCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	vehicleID    kernel.UUID
	licensePlate string
	vin          string
	mileage      int
	userID       kernel.UUID
	role         kernel.Role

	guard guard.ConstructorGuard
}

// NewSetVehicleFieldsCommand creates a command updating one vehicle's
// fields on behalf of userID acting as role.
func NewSetVehicleFieldsCommand(
	orderID, vehicleID kernel.UUID,
	licensePlate, vin string,
	mileage int,
	userID kernel.UUID,
	role kernel.Role,
) (SetVehicleFieldsCommand, error) {
	cmd := SetVehicleFieldsCommand{
		licensePlate: licensePlate,
		vin:          vin,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(orderID, vehicleID),
		cmd.setUser(userID, role),
		cmd.setMileage(mileage),
	); err != nil {
		return SetVehicleFieldsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetVehicleFieldsCommand) Validate() error {
	return c.guard.Validate(ErrSetVehicleFieldsCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c SetVehicleFieldsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// VehicleID returns the vehicle assignment to update.
func (c SetVehicleFieldsCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

// LicensePlate returns the new license plate, possibly empty.
func (c SetVehicleFieldsCommand) LicensePlate() string {
	return c.licensePlate
}

// VIN returns the new VIN, possibly empty.
func (c SetVehicleFieldsCommand) VIN() string {
	return c.vin
}

// Mileage returns the new mileage.
func (c SetVehicleFieldsCommand) Mileage() int {
	return c.mileage
}

// UserID returns the acting user.
func (c SetVehicleFieldsCommand) UserID() kernel.UUID {
	return c.userID
}

// Role returns the acting user's role.
func (c SetVehicleFieldsCommand) Role() kernel.Role {
	return c.role
}

func (c *SetVehicleFieldsCommand) setIDs(orderID, vehicleID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), vehicleID.Validate()); err != nil {
		return err
	}

	c.orderID = orderID
	c.vehicleID = vehicleID
	return nil
}

func (c *SetVehicleFieldsCommand) setUser(userID kernel.UUID, role kernel.Role) error {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return err
	}

	c.userID = userID
	c.role = role
	return nil
}

func (c *SetVehicleFieldsCommand) setMileage(mileage int) error {
	if mileage < 0 {
		return errs.NewValueIsInvalidErrorWithCause("mileage", fmt.Errorf("%d is negative", mileage))
	}

	c.mileage = mileage
	return nil
}
