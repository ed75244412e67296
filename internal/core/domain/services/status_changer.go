package services

import (
	"time"

	"autoservice/internal/core/domain/model/account"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"
)

// TransitionResult reports what a successful status change produced beyond
// the order mutation itself.
type TransitionResult struct {
	// NeedChat is true when the transition was an acceptance of an order
	// with a known customer and no chat yet: the caller must provision a
	// chat and attach it before committing.
	NeedChat bool

	// History is the audit record the caller must persist with the order.
	History order.HistoryEntry
}

// StatusChanger is the domain service that validates and applies role-gated
// status changes on an order.
//
// Key responsibilities:
//   - enforcing the per-role target whitelist
//   - the acceptance special case: contractor assignment plus fund
//     reservation from the contractor's account
//   - producing the history record every successful transition appends
//
// The caller owns the transaction: it loads the order (and, for an
// acceptance, the contractor's account) under row locks, invokes
// ChangeStatus, provisions the chat when asked to, and commits everything
// as one atomic unit. Any error leaves the caller obliged to roll back.
type StatusChanger struct {
	unitPrice int
}

// NewStatusChanger creates a StatusChanger pricing acceptances at unitPrice
// per requested job category.
func NewStatusChanger(unitPrice int) StatusChanger {
	return StatusChanger{unitPrice: unitPrice}
}

// ChangeStatus applies a status change requested by userID acting as role.
//
// For target statuses other than in_progress the user must pass the order's
// access guard and the target must be in the role's whitelist.
//
// For target = in_progress (acceptance) the order must be open and
// unassigned; acct must be the acting contractor's account, already locked
// by the caller, and is debited the order's cost.
//
// Returns:
//   - TransitionResult with the history record and the chat provisioning
//     flag on success
//   - order.ErrStatusChangeNotAllowed, order.ErrAccessDenied,
//     order.ErrOrderAlreadyInProgress or account.ErrInsufficientFunds on
//     the corresponding rule violation
func (s StatusChanger) ChangeStatus(
	o *order.Order,
	target order.Status,
	role kernel.Role,
	userID kernel.UUID,
	acct *account.Account,
	now time.Time,
) (TransitionResult, error) {
	if err := o.Validate(); err != nil {
		return TransitionResult{}, err
	}
	if err := target.ValidateTargetFor(role); err != nil {
		return TransitionResult{}, err
	}

	if target == order.InProgress {
		if err := s.accept(o, userID, acct, now); err != nil {
			return TransitionResult{}, err
		}
	} else {
		if err := o.CheckAccess(role, userID); err != nil {
			return TransitionResult{}, err
		}
		if err := o.SetStatus(target, now); err != nil {
			return TransitionResult{}, err
		}
	}

	history, err := order.NewHistoryEntry(kernel.NewUUID(), o.ID(), o.Status(), o.MasterID(), now)
	if err != nil {
		return TransitionResult{}, err
	}

	return TransitionResult{
		History:  history,
		NeedChat: target == order.InProgress && o.HasCustomer() && o.ChatID() == nil,
	}, nil
}

// Cancel executes the clone-then-reset cancellation for the owning
// customer: it snapshots the order into a new cancelled row and returns the
// original to the open pool with the contractor's task proposals wiped.
//
// Returns:
//   - the cancelled snapshot plus its history record on success
//   - order.ErrAccessDenied when userID does not own the order or acts as a
//     contractor
//   - order.ErrCancelOrderNotAllowed when the order never left created
func (s StatusChanger) Cancel(
	o *order.Order,
	role kernel.Role,
	userID kernel.UUID,
	now time.Time,
) (*order.Order, order.HistoryEntry, error) {
	if err := o.Validate(); err != nil {
		return nil, order.HistoryEntry{}, err
	}
	if role != kernel.RoleCustomer {
		return nil, order.HistoryEntry{}, order.ErrAccessDenied
	}
	if err := o.CheckAccess(role, userID); err != nil {
		return nil, order.HistoryEntry{}, err
	}

	clone, err := o.CloneForCancel(kernel.NewUUID(), now)
	if err != nil {
		return nil, order.HistoryEntry{}, err
	}
	// Reopen wipes the assignment; the history row keeps the contractor the
	// order was cancelled away from.
	masterID := o.MasterID()
	if err = o.Reopen(now); err != nil {
		return nil, order.HistoryEntry{}, err
	}

	history, err := order.NewHistoryEntry(kernel.NewUUID(), clone.ID(), order.Cancelled, masterID, now)
	if err != nil {
		return nil, order.HistoryEntry{}, err
	}

	return clone, history, nil
}

func (s StatusChanger) accept(o *order.Order, masterID kernel.UUID, acct *account.Account, now time.Time) error {
	if err := acct.Validate(); err != nil {
		return err
	}
	if !acct.OwnerID().IsEqual(masterID) {
		return order.ErrAccessDenied
	}

	if err := o.Accept(masterID, now); err != nil {
		return err
	}

	return acct.Reserve(o.Cost(s.unitPrice))
}
