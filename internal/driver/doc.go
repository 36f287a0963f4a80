// Package driver owns the hardware boundary consumed by the kernel.
//
// Ownership boundary:
// - device interfaces: terminal, display, clock, random source, memory query
// - per-device error sentinels
// - console stand-in implementations for host processes
package driver
