package kernel

import (
	"fmt"

	"autoservice/internal/pkg/errs"
)

// Role identifies which side of a repair order a user acts on.
// It is a closed variant: every order operation is performed either by the
// customer who requested the repair or by the contractor ("master") who
// services it. Permission tables elsewhere in the domain are indexed by Role.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleCustomer is the party that creates repair orders and pays for them.
	RoleCustomer

	// RoleContractor is the service provider ("master") that accepts and
	// fulfills repair orders.
	RoleContractor
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "unknown",
		RoleCustomer:   "customer",
		RoleContractor: "contractor",
	}
}

// RoleFromString parses a role from its wire representation.
// Accepts "customer" and "contractor"; anything else is invalid.
func RoleFromString(s string) (Role, error) {
	switch s {
	case "customer":
		return RoleCustomer, nil
	case "contractor":
		return RoleContractor, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
	}
}

// Validate checks that the Role is one of the two defined parties.
func (r Role) Validate() error {
	if r != RoleCustomer && r != RoleContractor {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lower-case name of the role.
// Implements fmt.Stringer; safe on any Role value.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}
