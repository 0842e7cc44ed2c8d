// Package types defines the inventory entities, the Store interface, and the
// sentinel errors shared by every backend and by the operation layer.
//
// Entities are plain value types with no I/O. Backends own the authoritative
// copy of every item; callers always receive hydrated copies.
package types
