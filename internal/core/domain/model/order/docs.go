// Package order provides domain entities and business logic for repair-order
// management. It implements the Order aggregate root with its status
// lifecycle, vehicle/job composition and role-projected read models.
//
// The package includes:
//   - Order: the aggregate root owning status, contractor assignment, chat
//     reference and the vehicle composition
//   - Status: the seven-state lifecycle with per-role target whitelists
//   - VehicleAssignment / JobAssignment: the priced scope of one vehicle
//   - HistoryEntry: the immutable status-transition audit trail
//
// Key business rules:
//   - a contractor is assigned if and only if the order progressed past
//     created/cancelled
//   - acceptance is only possible on a created, unassigned order and runs
//     under the order's row lock
//   - cancellation snapshots the order into a cancelled clone and returns
//     the original to the open pool with task proposals wiped
//   - a VIN is unique within an order; a vehicle appears once per order
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
