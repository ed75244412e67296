// Package kernel provides core domain primitives shared by every aggregate
// of the repair-order system.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison capabilities
//   - Role: a closed variant distinguishing the two acting parties (customer and contractor)
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
