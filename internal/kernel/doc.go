// Package kernel owns the shared kernel state and the generic dispatch
// surface.
//
// Ownership boundary:
// - authenticated message construction and identity
// - user table, service registry, driver handles
// - the task registry contract consumed by orchestration
// All mutable tables live on one Kern value and are reached only through
// synchronized entry points; the table lock is never held across a
// suspension point.
package kernel
