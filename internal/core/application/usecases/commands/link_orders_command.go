package commands

import (
	"errors"
	"strings"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/errs"
	"autoservice/internal/pkg/guard"
)

var ErrLinkOrdersCommandIsNotConstructed = errors.New(
	"LinkOrdersCommand must be created via NewLinkOrdersCommand constructor",
)

// LinkOrdersCommand represents a request to attach a newly registered
// customer to the anonymous orders they placed earlier, matched by the
// contact phone.
type LinkOrdersCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	phone      string

	guard guard.ConstructorGuard
}

// NewLinkOrdersCommand creates a command linking the customer's anonymous
// orders by phone.
func NewLinkOrdersCommand(customerID kernel.UUID, phone string) (LinkOrdersCommand, error) {
	cmd := LinkOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setPhone(phone),
	); err != nil {
		return LinkOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LinkOrdersCommand) Validate() error {
	return c.guard.Validate(ErrLinkOrdersCommandIsNotConstructed)
}

// CustomerID returns the registered customer.
func (c LinkOrdersCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Phone returns the contact phone the anonymous orders were placed with.
func (c LinkOrdersCommand) Phone() string {
	return c.phone
}

func (c *LinkOrdersCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *LinkOrdersCommand) setPhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return errs.NewValueIsRequiredError("phone")
	}

	c.phone = phone
	return nil
}
