package commands

import (
	"errors"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"
	"autoservice/internal/pkg/guard"
)

var ErrSetStatusCommandIsNotConstructed = errors.New(
	"SetStatusCommand must be created via NewSetStatusCommand constructor",
)

// SetStatusCommand represents a role-gated status change request on an
// order. The target whitelist and the acceptance special case are enforced
// by the domain; the command only validates its own shape.
type SetStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	userID  kernel.UUID
	role    kernel.Role

	guard guard.ConstructorGuard
}

// NewSetStatusCommand creates a command to change an order's status on
// behalf of userID acting as role.
func NewSetStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	userID kernel.UUID,
	role kernel.Role,
) (SetStatusCommand, error) {
	cmd := SetStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setUser(userID, role),
	); err != nil {
		return SetStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c SetStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c SetStatusCommand) Target() order.Status {
	return c.target
}

// UserID returns the acting user.
func (c SetStatusCommand) UserID() kernel.UUID {
	return c.userID
}

// Role returns the acting user's role.
func (c SetStatusCommand) Role() kernel.Role {
	return c.role
}

func (c *SetStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *SetStatusCommand) setUser(userID kernel.UUID, role kernel.Role) error {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return err
	}

	c.userID = userID
	c.role = role
	return nil
}
