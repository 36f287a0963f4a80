package kernel

import "errors"

var (
	ErrMemoryOut       = errors.New("kernel: out of memory")
	ErrEncodeFault     = errors.New("kernel: identity encode fault")
	ErrUserNotFound    = errors.New("kernel: user not found")
	ErrServiceNotFound = errors.New("kernel: service not found")
	ErrServiceExists   = errors.New("kernel: service already registered")
	ErrNoTaskRegistry  = errors.New("kernel: no task registry attached")
	ErrParse           = errors.New("kernel: parse")
	ErrDriver          = errors.New("kernel: driver")
)
