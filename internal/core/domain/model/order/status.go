package order

import (
	"errors"
	"fmt"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/errs"
)

// ErrStatusChangeNotAllowed is returned when the requested target status is
// not in the caller role's whitelist.
var ErrStatusChangeNotAllowed = errors.New("status change is not allowed for this role")

// Status represents the lifecycle state of a repair order.
//
// The machine is a flat per-role whitelist, not a transition-adjacency
// graph: any status a role may set can be requested from any current
// status. The two exceptions are acceptance (in_progress is only reachable
// from a created, unassigned order via Order.Accept) and cancellation,
// which is a separate clone-then-reset operation rather than a transition
// to Cancelled.
//
// Role whitelists:
//   - customer:   created, customer_approval, completed
//   - contractor: in_progress, accepted_on_maintenance,
//     problem_diagnosis_by_contractor
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status. The order sits in the open pool
	// waiting for a contractor to accept it.
	Created

	// InProgress means a contractor accepted the order: funds were
	// reserved, the contractor assigned, and a chat provisioned when the
	// customer is known.
	InProgress

	// AcceptedOnMaintenance means the vehicle arrived at the contractor's
	// workshop.
	AcceptedOnMaintenance

	// ProblemDiagnosisByContractor means the contractor diagnosed the
	// vehicle and proposed a task scope for the customer to review.
	ProblemDiagnosisByContractor

	// CustomerApproval means the customer agreed to the proposed scope.
	CustomerApproval

	// Cancelled marks an immutable snapshot row produced by cancellation.
	// No operation is permitted on a cancelled order.
	Cancelled

	// Completed is the final state of a fulfilled order.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                      "unknown",
		Created:                      "created",
		InProgress:                   "in_progress",
		AcceptedOnMaintenance:        "accepted_on_maintenance",
		ProblemDiagnosisByContractor: "problem_diagnosis_by_contractor",
		CustomerApproval:             "customer_approval",
		Cancelled:                    "cancelled",
		Completed:                    "completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:                      "created",
		InProgress:                   "in_progress",
		AcceptedOnMaintenance:        "accepted_on_maintenance",
		ProblemDiagnosisByContractor: "problem_diagnosis_by_contractor",
		CustomerApproval:             "customer_approval",
		Cancelled:                    "cancelled",
		Completed:                    "completed",
	}
}

// getRoleTargets returns the flat whitelist of target statuses each role may
// request through a status change.
func getRoleTargets() map[kernel.Role]map[Status]bool {
	return map[kernel.Role]map[Status]bool{
		kernel.RoleCustomer: {
			Created:          true,
			CustomerApproval: true,
			Completed:        true,
		},
		kernel.RoleContractor: {
			InProgress:                   true,
			AcceptedOnMaintenance:        true,
			ProblemDiagnosisByContractor: true,
		},
	}
}

// StatusFromString parses the persisted/wire representation of a status.
//
// Returns:
//   - the matching Status for one of the seven valid snake_case names
//   - (Unknown, error) for anything else, including "unknown" itself
func StatusFromString(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", value))
}

// Validate checks if the Status value is one of the seven defined states.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status, "unknown" for invalid
// values. This representation is used for persistence and the API surface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ValidateTargetFor checks that role may request a change to this status.
//
// Returns:
//   - nil if the status is in the role's whitelist
//   - ErrStatusChangeNotAllowed otherwise
func (s Status) ValidateTargetFor(role kernel.Role) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !getRoleTargets()[role][s] {
		return ErrStatusChangeNotAllowed
	}
	return nil
}

// ValidateCanHaveMaster validates the consistency between order status and
// contractor assignment.
//
// Business rules:
//   - Created and Cancelled orders must not have a contractor assigned
//   - every other status requires an assigned contractor
func (s Status) ValidateCanHaveMaster(master bool) error {
	engaged := s != Created && s != Cancelled

	if master && !engaged {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a master", s.String()),
		)
	}

	if !master && engaged {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no master", s.String()),
		)
	}

	return nil
}

// IsTerminal reports whether the status ends the order row's lifecycle.
// Cancellation spawns a fresh Created row instead of reviving this one.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Completed
}
