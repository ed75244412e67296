package commands

import (
	"errors"
	"fmt"
	"strings"

	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/errs"
	"autoservice/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrRegionIsRequired     = errors.New("region is required")
	ErrRequesterIsInvalid   = errors.New("exactly one of customer id and contact phone is required")
	ErrVehiclesAreRequired  = errors.New("at least one vehicle is required")
	ErrVehicleSpecIsInvalid = errors.New("vehicle spec is invalid")
)

// JobSpec is the requested scope for one job category: the external
// category id plus the task names, possibly empty.
type JobSpec struct {
	CategoryID int
	Tasks      []string
}

// VehicleSpec describes one vehicle to attach to the order, with its
// catalog natural key, order-specific fields and job scope.
type VehicleSpec struct {
	Brand        string
	Model        string
	VehicleType  string
	TrailerType  string
	LicensePlate string
	VIN          string
	Mileage      int
	Jobs         []JobSpec
}

// CreateOrderParams carries everything needed to place a repair order.
// Exactly one of CustomerID and ContactPhone identifies the requester:
// registered customers order by id, anonymous ones by contact.
type CreateOrderParams struct {
	OrderID             kernel.UUID
	CustomerID          *kernel.UUID
	ContactName         string
	ContactPhone        string
	DriverName          string
	DriverPhone         string
	Street              string
	City                string
	Region              string
	Latitude            *float64
	Longitude           *float64
	Description         string
	NeedEvacuator       bool
	NeedFieldTechnician bool
	Vehicles            []VehicleSpec
}

// CreateOrderCommand represents a request to place a new repair order with
// its full vehicle/job composition.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderParams{
//	    OrderID:      kernel.NewUUID(),
//	    ContactPhone: "+79990001122",
//	    Region:       "Tver Oblast",
//	    Vehicles: []VehicleSpec{{
//	        Brand: "Volvo", VehicleType: "truck",
//	        Jobs:  []JobSpec{{CategoryID: 3}},
//	    }},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	params CreateOrderParams

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new repair order.
// Validates the requester rule, the region, and every vehicle spec.
func NewCreateOrderCommand(params CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(params.OrderID),
		validateRequester(params),
		validateRegion(params.Region),
		validateVehicles(params.Vehicles),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.params = params
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Params returns the order placement parameters.
func (c CreateOrderCommand) Params() CreateOrderParams {
	return c.params
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.params.OrderID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.params.OrderID = orderID
	return nil
}

func validateRequester(params CreateOrderParams) error {
	if (params.CustomerID == nil) == (strings.TrimSpace(params.ContactPhone) == "") {
		return ErrRequesterIsInvalid
	}
	if params.CustomerID != nil {
		return params.CustomerID.Validate()
	}
	return nil
}

func validateRegion(region string) error {
	if strings.TrimSpace(region) == "" {
		return ErrRegionIsRequired
	}
	return nil
}

func validateVehicles(vehicles []VehicleSpec) error {
	if len(vehicles) == 0 {
		return ErrVehiclesAreRequired
	}

	for i, spec := range vehicles {
		if strings.TrimSpace(spec.Brand) == "" {
			return fmt.Errorf("%w: vehicle %d has no brand", ErrVehicleSpecIsInvalid, i)
		}
		if err := catalog.VehicleType(spec.VehicleType).Validate(); err != nil {
			return fmt.Errorf("%w: vehicle %d: %w", ErrVehicleSpecIsInvalid, i, err)
		}
		if spec.Mileage < 0 {
			return errs.NewValueIsInvalidErrorWithCause("mileage", fmt.Errorf("%d is negative", spec.Mileage))
		}
		for _, job := range spec.Jobs {
			if job.CategoryID <= 0 {
				return errs.NewValueIsInvalidErrorWithCause(
					"category id", fmt.Errorf("%d is not greater than 0", job.CategoryID))
			}
		}
	}

	return nil
}
