// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the repair-order system. It implements
// complex business workflows that don't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - StatusChanger: the role-gated status transition engine, including the
//     acceptance special case (fund reservation, chat provisioning flag) and
//     the clone-then-reset cancellation
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
