// Package task owns the task model and the cooperative task registry.
//
// Ownership boundary:
// - task record shape and lifecycle states
// - monotonic id assignment
// - the single run permit that serializes cooperative execution
// - kill signaling
package task
