package kernel

import (
	"context"

	"github.com/korvin-os/korvin/internal/unit"
)

// TaskRun is the run descriptor of a task: a payload and the service it is
// dispatched to.
type TaskRun struct {
	Payload unit.Unit
	Serv    string
}

// TaskSig is a registry-routed task signal.
type TaskSig int

const (
	// SigKill requests best-effort termination; the registry decides
	// liveness.
	SigKill TaskSig = iota
)

// TaskRegistry is the contract the scheduler requires from the external task
// registry. The scheduler never assigns ids and never looks past these
// operations.
type TaskRegistry interface {
	// Register creates a task and returns its id. Ids are assigned
	// monotonically and never reused.
	Register(owner, name string, run TaskRun) (int, error)

	// Await suspends the calling cooperative task until the named task
	// completes, then yields its outcome. A killed task yields no message
	// and no error. Await is a suspension point: the caller's run permit is
	// surrendered for its duration.
	Await(ctx context.Context, id int) (*Msg, error)

	// Wait blocks until the named task completes, for callers outside the
	// cooperative context.
	Wait(ctx context.Context, id int) (*Msg, error)

	// Signal delivers sig to the named task, best effort.
	Signal(id int, sig TaskSig) error
}
