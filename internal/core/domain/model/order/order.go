package order

import (
	"errors"
	"time"

	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderAlreadyInProgress is returned when a contractor tries to accept
	// an order that is no longer in the open pool. This is what the loser of
	// a concurrent acceptance race observes after the row lock is released.
	ErrOrderAlreadyInProgress = errors.New("order is already taken by another contractor")

	// ErrCancelOrderNotAllowed is returned when cancelling an order that
	// never left the Created status: there is nothing to cancel.
	ErrCancelOrderNotAllowed = errors.New("order has not been accepted and cannot be cancelled")

	// ErrAccessDenied is returned when the acting user fails the ownership
	// or assignment guard for the order.
	ErrAccessDenied = errors.New("access to the order is denied")

	// ErrDuplicateVin is returned when a VIN is already used by another
	// vehicle within the same order.
	ErrDuplicateVin = errors.New("vin already exists in this order")
)

// Order is the repair-request aggregate root. It owns the status lifecycle,
// the contractor assignment, the linked chat reference and the vehicle/job
// composition.
//
// Invariants:
//   - status is exactly one of the seven defined states
//   - a contractor is assigned if and only if the status has progressed
//     past Created/Cancelled
//   - exactly one of {registered customer, anonymous contact} identifies
//     the requester
//   - a vehicle appears at most once per order; a VIN is unique within
//     the order
//
// Mutating operations on a persisted order must run under the order's row
// lock so concurrent acceptance and cancellation serialize.
type Order struct {
	id kernel.UUID

	status Status

	// customerID is the owning registered customer, nil for anonymous orders
	customerID *kernel.UUID

	// customerContact identifies an anonymous requester until a registered
	// customer is linked
	customerContact *catalog.Contact

	// driverContact is the person accompanying the vehicle, optional
	driverContact *catalog.Contact

	// masterID is the assigned contractor, nil until accepted
	masterID *kernel.UUID

	address   catalog.Address
	latitude  *float64
	longitude *float64

	description         string
	needEvacuator       bool
	needFieldTechnician bool

	// chatID links the customer/contractor chat, nil until provisioned
	chatID *kernel.UUID

	// cloneOrderID points a cancellation snapshot back at its source order
	cloneOrderID *kernel.UUID

	// hidden keeps the row out of public listings
	hidden bool

	createdAt time.Time
	updatedAt time.Time

	vehicles []*VehicleAssignment

	isConstructed bool
}

// NewOrder creates an order in the Created status with no vehicles attached
// yet. Exactly one of customerID and customerContact must be set: orders
// are placed either by a registered customer or anonymously by contact.
func NewOrder(
	id kernel.UUID,
	customerID *kernel.UUID,
	customerContact *catalog.Contact,
	driverContact *catalog.Contact,
	address catalog.Address,
	description string,
	needEvacuator, needFieldTechnician bool,
	now time.Time,
) (*Order, error) {
	order := &Order{
		status:              Created,
		driverContact:       driverContact,
		description:         description,
		needEvacuator:       needEvacuator,
		needFieldTechnician: needFieldTechnician,
		createdAt:           now,
		updatedAt:           now,
		isConstructed:       true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setRequester(customerID, customerContact),
		order.setAddress(address),
	); err != nil {
		return nil, err
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("creation time")
	}

	return order, nil
}

// RestoreOrderParams carries the full persisted state of an order.
type RestoreOrderParams struct {
	ID                  kernel.UUID
	Status              Status
	CustomerID          *kernel.UUID
	CustomerContact     *catalog.Contact
	DriverContact       *catalog.Contact
	MasterID            *kernel.UUID
	Address             catalog.Address
	Latitude            *float64
	Longitude           *float64
	Description         string
	NeedEvacuator       bool
	NeedFieldTechnician bool
	ChatID              *kernel.UUID
	CloneOrderID        *kernel.UUID
	Hidden              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Vehicles            []*VehicleAssignment
}

// RestoreOrder reconstructs an order from persistent storage, revalidating
// the aggregate invariants.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	order := &Order{
		driverContact:       params.DriverContact,
		masterID:            params.MasterID,
		latitude:            params.Latitude,
		longitude:           params.Longitude,
		description:         params.Description,
		needEvacuator:       params.NeedEvacuator,
		needFieldTechnician: params.NeedFieldTechnician,
		chatID:              params.ChatID,
		cloneOrderID:        params.CloneOrderID,
		hidden:              params.Hidden,
		createdAt:           params.CreatedAt,
		updatedAt:           params.UpdatedAt,
		vehicles:            params.Vehicles,
		isConstructed:       true,
	}

	if err := errors.Join(
		order.setID(params.ID),
		params.Status.Validate(),
		params.Status.ValidateCanHaveMaster(params.MasterID != nil),
		order.setAddress(params.Address),
	); err != nil {
		return nil, err
	}
	if params.CreatedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("creation time")
	}

	// linked orders carry both the owner and the original anonymous contact,
	// so restore skips the exactly-one requester rule that NewOrder enforces
	if params.CustomerID == nil && params.CustomerContact == nil {
		return nil, errs.NewValueIsRequiredError("requester")
	}
	order.status = params.Status
	order.customerID = params.CustomerID
	order.customerContact = params.CustomerContact

	return order, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// CustomerID returns the owning registered customer, nil for anonymous orders.
func (o *Order) CustomerID() *kernel.UUID { return o.customerID }

// CustomerContact returns the anonymous requester contact, nil when the
// order was placed by a registered customer.
func (o *Order) CustomerContact() *catalog.Contact { return o.customerContact }

// DriverContact returns the accompanying driver's contact, nil when not set.
func (o *Order) DriverContact() *catalog.Contact { return o.driverContact }

// MasterID returns the assigned contractor, nil until accepted.
func (o *Order) MasterID() *kernel.UUID { return o.masterID }

// Address returns the order's service address.
func (o *Order) Address() catalog.Address { return o.address }

// Coordinates returns the optional geo position, nils when not set.
func (o *Order) Coordinates() (latitude, longitude *float64) {
	return o.latitude, o.longitude
}

// Description returns the customer's free-text problem description.
func (o *Order) Description() string { return o.description }

// NeedEvacuator reports whether the vehicle must be towed in.
func (o *Order) NeedEvacuator() bool { return o.needEvacuator }

// NeedFieldTechnician reports whether on-site service was requested.
func (o *Order) NeedFieldTechnician() bool { return o.needFieldTechnician }

// ChatID returns the linked chat, nil until provisioned.
func (o *Order) ChatID() *kernel.UUID { return o.chatID }

// CloneOrderID returns the source order of a cancellation snapshot, nil for
// regular orders.
func (o *Order) CloneOrderID() *kernel.UUID { return o.cloneOrderID }

// Hidden reports whether the order is excluded from public listings.
func (o *Order) Hidden() bool { return o.hidden }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Vehicles returns a copy of the vehicle assignment list. The assignments
// themselves are shared; mutate them through the aggregate only.
func (o *Order) Vehicles() []*VehicleAssignment {
	vehicles := make([]*VehicleAssignment, len(o.vehicles))
	copy(vehicles, o.vehicles)
	return vehicles
}

// HasCustomer reports whether a registered customer owns the order. Chat
// provisioning requires a known customer identity.
func (o *Order) HasCustomer() bool { return o.customerID != nil }

// CheckAccess guards operations on the order: a customer may act only on
// orders they own, a contractor only on orders assigned to them, and nobody
// may act on a cancelled snapshot.
func (o *Order) CheckAccess(role kernel.Role, userID kernel.UUID) error {
	if o.status == Cancelled {
		return ErrAccessDenied
	}

	switch role {
	case kernel.RoleCustomer:
		if o.customerID == nil || !o.customerID.IsEqual(userID) {
			return ErrAccessDenied
		}
	case kernel.RoleContractor:
		if o.masterID == nil || !o.masterID.IsEqual(userID) {
			return ErrAccessDenied
		}
	default:
		return ErrAccessDenied
	}

	return nil
}

// Accept assigns the accepting contractor and moves the order to
// InProgress. Only a Created, unassigned order can be accepted; the caller
// must hold the order's row lock so the loser of a concurrent acceptance
// observes the winner's assignment and fails with ErrOrderAlreadyInProgress.
func (o *Order) Accept(masterID kernel.UUID, now time.Time) error {
	if err := masterID.Validate(); err != nil {
		return err
	}
	if o.status != Created || o.masterID != nil {
		return ErrOrderAlreadyInProgress
	}

	o.status = InProgress
	o.masterID = &masterID
	o.touch(now)
	return nil
}

// SetStatus moves the order to target. InProgress is only reachable through
// Accept. Moving back to Created releases the contractor and the chat so
// the order re-enters the open pool; every other target requires an
// assigned contractor.
func (o *Order) SetStatus(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == InProgress {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", errors.New("in_progress is only reachable through acceptance"))
	}

	if target == Created {
		o.masterID = nil
		o.chatID = nil
	}
	if err := target.ValidateCanHaveMaster(o.masterID != nil); err != nil {
		return err
	}

	o.status = target
	o.touch(now)
	return nil
}

// AttachChat links the provisioned chat to the order. A chat is created at
// most once per order and only after acceptance.
func (o *Order) AttachChat(chatID kernel.UUID) error {
	if err := chatID.Validate(); err != nil {
		return err
	}
	if o.status == Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"chat", errors.New("chat cannot be attached before acceptance"))
	}
	if o.chatID != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"chat", errors.New("order already has a chat"))
	}

	o.chatID = &chatID
	return nil
}

// LinkCustomer attaches a registered customer to an order that was placed
// anonymously. The matched contact stops identifying the requester.
func (o *Order) LinkCustomer(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	if o.customerID != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"customer", errors.New("order already has an owner"))
	}

	o.customerID = &customerID
	return nil
}

// SetCoordinates sets the optional geo position of the service address.
func (o *Order) SetCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, -90, 90)
	}
	if longitude < -180 || longitude > 180 {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, -180, 180)
	}

	o.latitude = &latitude
	o.longitude = &longitude
	return nil
}

// AttachVehicle links a vehicle assignment to the order. Attaching a
// vehicle whose natural key is already linked is a no-op, so callers may
// safely resubmit the same composition.
func (o *Order) AttachVehicle(assignment *VehicleAssignment) error {
	if assignment == nil {
		return errs.NewValueIsRequiredError("vehicle assignment")
	}

	for _, existing := range o.vehicles {
		if existing.vehicle.HasSameKey(assignment.vehicle) {
			return nil
		}
	}
	if assignment.vin != "" && o.vinTaken(assignment.vin, assignment.id) {
		return ErrDuplicateVin
	}

	o.vehicles = append(o.vehicles, assignment)
	return nil
}

// ReplaceJobs replaces the full job scope of one attached vehicle.
func (o *Order) ReplaceJobs(vehicleID kernel.UUID, specs []JobSpec, now time.Time) error {
	assignment, err := o.findVehicle(vehicleID)
	if err != nil {
		return err
	}
	if err := assignment.ReplaceJobs(specs); err != nil {
		return err
	}

	o.touch(now)
	return nil
}

// SetVehicleFields updates the license plate, VIN and mileage of one
// attached vehicle. A VIN already used by another vehicle in the same
// order fails with ErrDuplicateVin.
func (o *Order) SetVehicleFields(
	vehicleID kernel.UUID,
	licensePlate, vin string,
	mileage int,
	now time.Time,
) error {
	assignment, err := o.findVehicle(vehicleID)
	if err != nil {
		return err
	}
	if vin != "" && o.vinTaken(vin, assignment.id) {
		return ErrDuplicateVin
	}
	if err := assignment.setFields(licensePlate, vin, mileage); err != nil {
		return err
	}

	o.touch(now)
	return nil
}

// CloneForCancel snapshots the order into a new Cancelled row that keeps
// the vehicle and job composition verbatim and points back at the source
// order. The snapshot is hidden from public listings, holds no contractor
// or chat, and is never mutated afterwards. An order still in Created has
// nothing to cancel and fails with ErrCancelOrderNotAllowed.
func (o *Order) CloneForCancel(cloneID kernel.UUID, now time.Time) (*Order, error) {
	if err := cloneID.Validate(); err != nil {
		return nil, err
	}
	if o.status == Created {
		return nil, ErrCancelOrderNotAllowed
	}

	sourceID := o.id
	clone := &Order{
		id:                  cloneID,
		status:              Cancelled,
		customerID:          o.customerID,
		customerContact:     o.customerContact,
		driverContact:       o.driverContact,
		address:             o.address,
		latitude:            o.latitude,
		longitude:           o.longitude,
		description:         o.description,
		needEvacuator:       o.needEvacuator,
		needFieldTechnician: o.needFieldTechnician,
		cloneOrderID:        &sourceID,
		hidden:              true,
		createdAt:           o.createdAt,
		updatedAt:           now,
		isConstructed:       true,
	}
	for _, assignment := range o.vehicles {
		clone.vehicles = append(clone.vehicles, assignment.clone())
	}

	return clone, nil
}

// Reopen returns a just-snapshotted order to the open pool: status back to
// Created, contractor and chat released, and the contractor's task
// proposals wiped while the customer's requested categories stay.
func (o *Order) Reopen(now time.Time) error {
	if o.status == Created {
		return ErrCancelOrderNotAllowed
	}

	for _, assignment := range o.vehicles {
		if err := assignment.ClearTasks(); err != nil {
			return err
		}
	}

	o.status = Created
	o.masterID = nil
	o.chatID = nil
	o.touch(now)
	return nil
}

func (o *Order) findVehicle(vehicleID kernel.UUID) (*VehicleAssignment, error) {
	for _, assignment := range o.vehicles {
		if assignment.id.IsEqual(vehicleID) {
			return assignment, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("vehicle assignment", vehicleID.String())
}

func (o *Order) vinTaken(vin string, exceptAssignmentID kernel.UUID) bool {
	for _, assignment := range o.vehicles {
		if assignment.id.IsEqual(exceptAssignmentID) {
			continue
		}
		if assignment.vin == vin {
			return true
		}
	}
	return false
}

func (o *Order) touch(now time.Time) {
	if !now.IsZero() {
		o.updatedAt = now
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRequester(customerID *kernel.UUID, contact *catalog.Contact) error {
	if (customerID == nil) == (contact == nil) {
		return errs.NewValueIsInvalidErrorWithCause("requester",
			errors.New("exactly one of customer id and anonymous contact must be set"))
	}
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return err
		}
	}

	o.customerID = customerID
	o.customerContact = contact
	return nil
}

func (o *Order) setAddress(address catalog.Address) error {
	if err := address.ID().Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("address", err)
	}
	o.address = address
	return nil
}
