package order

import (
	"errors"
	"time"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/errs"
)

// HistoryEntry is an immutable audit record appended after every successful
// status transition. Entries capture the resulting status and the
// contractor at that moment (nil while the order was unassigned) and are
// never updated or deleted.
type HistoryEntry struct {
	id        kernel.UUID
	orderID   kernel.UUID
	status    Status
	masterID  *kernel.UUID
	createdAt time.Time
}

// NewHistoryEntry creates an audit record for a status transition.
func NewHistoryEntry(
	id, orderID kernel.UUID,
	status Status,
	masterID *kernel.UUID,
	at time.Time,
) (HistoryEntry, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return HistoryEntry{}, err
	}
	if at.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("timestamp")
	}

	return HistoryEntry{
		id:        id,
		orderID:   orderID,
		status:    status,
		masterID:  masterID,
		createdAt: at,
	}, nil
}

// ID returns the entry's unique identifier.
func (h HistoryEntry) ID() kernel.UUID { return h.id }

// OrderID returns the order the entry belongs to.
func (h HistoryEntry) OrderID() kernel.UUID { return h.orderID }

// Status returns the status the order held after the transition.
func (h HistoryEntry) Status() Status { return h.status }

// MasterID returns the contractor assigned at the time of the transition,
// nil when the order was unassigned.
func (h HistoryEntry) MasterID() *kernel.UUID { return h.masterID }

// CreatedAt returns the transition timestamp.
func (h HistoryEntry) CreatedAt() time.Time { return h.createdAt }
