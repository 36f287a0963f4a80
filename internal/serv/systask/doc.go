// Package systask owns the task orchestration service.
//
// Ownership boundary:
// - combinator recognition inside message payloads
// - sub-task fan-out and result threading through the task registry
// - the kill signal pair
// Multi-step behavior arrives here as data; this service is the interpreter
// that drives it to completion.
package systask
