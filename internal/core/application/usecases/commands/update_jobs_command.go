package commands

import (
	"errors"
	"fmt"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/errs"
	"autoservice/internal/pkg/guard"
)

var ErrUpdateJobsCommandIsNotConstructed = errors.New(
	"UpdateJobsCommand must be created via NewUpdateJobsCommand constructor",
)

// UpdateJobsCommand represents a contractor's diagnosis proposal: the full
// replacement job scope for one vehicle of an order. Passing a category
// with no tasks keeps the category requested but unscoped.
type UpdateJobsCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	vehicleID kernel.UUID
	jobs      []JobSpec
	userID    kernel.UUID
	role      kernel.Role

	guard guard.ConstructorGuard
}

// NewUpdateJobsCommand creates a command replacing the job scope of one
// vehicle. The jobs slice is the full desired set, not a delta.
func NewUpdateJobsCommand(
	orderID, vehicleID kernel.UUID,
	jobs []JobSpec,
	userID kernel.UUID,
	role kernel.Role,
) (UpdateJobsCommand, error) {
	cmd := UpdateJobsCommand{
		jobs:  jobs,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(orderID, vehicleID),
		cmd.setUser(userID, role),
		validateJobs(jobs),
	); err != nil {
		return UpdateJobsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateJobsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateJobsCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateJobsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// VehicleID returns the vehicle assignment whose scope is replaced.
func (c UpdateJobsCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

// Jobs returns the full replacement job scope.
func (c UpdateJobsCommand) Jobs() []JobSpec {
	return c.jobs
}

// UserID returns the acting user.
func (c UpdateJobsCommand) UserID() kernel.UUID {
	return c.userID
}

// Role returns the acting user's role.
func (c UpdateJobsCommand) Role() kernel.Role {
	return c.role
}

func (c *UpdateJobsCommand) setIDs(orderID, vehicleID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), vehicleID.Validate()); err != nil {
		return err
	}

	c.orderID = orderID
	c.vehicleID = vehicleID
	return nil
}

func (c *UpdateJobsCommand) setUser(userID kernel.UUID, role kernel.Role) error {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return err
	}

	c.userID = userID
	c.role = role
	return nil
}

func validateJobs(jobs []JobSpec) error {
	for _, job := range jobs {
		if job.CategoryID <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"category id", fmt.Errorf("%d is not greater than 0", job.CategoryID))
		}
	}
	return nil
}
