package task

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/korvin-os/korvin/internal/kernel"
	"github.com/korvin-os/korvin/internal/unit"
)

var ErrTaskNotFound = errors.New("task: not found")

// Task is one scheduled cooperative activity.
type Task struct {
	Owner    string
	Name     string
	ID       int
	ParentID int
	Run      kernel.TaskRun
}

// State is a task lifecycle phase.
type State int

const (
	StateRunning State = iota
	StateDone
	StateKilled
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	case StateKilled:
		return "killed"
	}
	return "unknown"
}

// Dispatcher is the kernel surface a task needs to execute its run
// descriptor. *kernel.Kern satisfies it.
type Dispatcher interface {
	Msg(ath string, u unit.Unit) (kernel.Msg, error)
	Send(ctx context.Context, serv string, msg kernel.Msg) (*kernel.Msg, error)
}

type taskEntry struct {
	task   Task
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	// written once, before done is closed
	res    *kernel.Msg
	err    error
	killed bool
}

// Registry runs tasks as goroutines gated by a single run permit: a task
// holds the permit while executing and surrenders it at every suspension
// point, so between suspension points execution is atomic with respect to
// every other task. Ids are assigned monotonically and never reused.
//
// A task record is destroyed once its outcome is consumed through Await or
// Wait. Detached tasks, which nothing consumes, keep their records for
// State and Lookup.
type Registry struct {
	disp Dispatcher
	log  zerolog.Logger

	// gate is the run permit: full while some task executes.
	gate chan struct{}

	mu     sync.Mutex
	nextID int
	cur    int
	tasks  map[int]*taskEntry
}

func NewRegistry(d Dispatcher, log zerolog.Logger) *Registry {
	return &Registry{
		disp:   d,
		log:    log.With().Str("comp", "task").Logger(),
		gate:   make(chan struct{}, 1),
		nextID: 1,
		tasks:  make(map[int]*taskEntry),
	}
}

// Register creates a task for run and schedules it. The parent is whichever
// task holds the run permit at call time; registration itself never blocks
// on the permit.
func (r *Registry) Register(owner, name string, run kernel.TaskRun) (int, error) {
	ctx, cancel := context.WithCancel(context.Background())

	r.mu.Lock()
	id := r.nextID
	r.nextID++
	e := &taskEntry{
		task: Task{
			Owner:    owner,
			Name:     name,
			ID:       id,
			ParentID: r.cur,
			Run:      run,
		},
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	r.tasks[id] = e
	r.mu.Unlock()

	r.log.Debug().Int("id", id).Int("parent", e.task.ParentID).
		Str("owner", owner).Str("serv", run.Serv).Msg("task registered")

	go r.run(e)
	return id, nil
}

func (r *Registry) run(e *taskEntry) {
	r.acquire(e.task.ID)
	defer r.release()

	res, err := r.exec(e)

	r.mu.Lock()
	state := StateDone
	if e.killed {
		e.res, e.err = nil, nil
		state = StateKilled
	} else {
		e.res, e.err = res, err
	}
	r.mu.Unlock()
	close(e.done)

	r.log.Debug().Int("id", e.task.ID).Str("state", state.String()).
		Err(err).Msg("task finished")
}

func (r *Registry) exec(e *taskEntry) (*kernel.Msg, error) {
	msg, err := r.disp.Msg(e.task.Owner, e.task.Run.Payload)
	if err != nil {
		return nil, err
	}
	return r.disp.Send(e.ctx, e.task.Run.Serv, msg)
}

// Await yields until the named task completes, then destroys its record. It
// is a suspension point: the caller's run permit is surrendered while
// waiting and reacquired before returning. A killed task yields no message
// and no error.
func (r *Registry) Await(ctx context.Context, id int) (*kernel.Msg, error) {
	r.mu.Lock()
	e, ok := r.tasks[id]
	caller := r.cur
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}

	r.release()
	defer r.acquire(caller)

	select {
	case <-e.done:
		r.drop(id)
		return e.res, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Wait blocks until the named task completes, then destroys its record. It
// never touches the run permit; it is for callers outside the cooperative
// context, such as the process bootstrap.
func (r *Registry) Wait(ctx context.Context, id int) (*kernel.Msg, error) {
	r.mu.Lock()
	e, ok := r.tasks[id]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	select {
	case <-e.done:
		r.drop(id)
		return e.res, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *Registry) drop(id int) {
	r.mu.Lock()
	delete(r.tasks, id)
	r.mu.Unlock()
}

// Signal delivers sig to the named task. Kill is best effort: an unknown or
// already finished id is not an error.
func (r *Registry) Signal(id int, sig kernel.TaskSig) error {
	r.mu.Lock()
	e, ok := r.tasks[id]
	if ok && sig == kernel.SigKill {
		e.killed = true
	}
	r.mu.Unlock()
	if !ok {
		r.log.Debug().Int("id", id).Msg("signal for unknown task dropped")
		return nil
	}
	if sig == kernel.SigKill {
		r.log.Info().Int("id", id).Msg("task killed")
		e.cancel()
	}
	return nil
}

// State reports the lifecycle phase of the named task.
func (r *Registry) State(id int) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.tasks[id]
	if !ok {
		return StateDone
	}
	select {
	case <-e.done:
		if e.killed {
			return StateKilled
		}
		return StateDone
	default:
		if e.killed {
			return StateKilled
		}
		return StateRunning
	}
}

// Lookup returns the task record for id.
func (r *Registry) Lookup(id int) (Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.tasks[id]
	if !ok {
		return Task{}, false
	}
	return e.task, true
}

func (r *Registry) acquire(id int) {
	r.gate <- struct{}{}
	r.mu.Lock()
	r.cur = id
	r.mu.Unlock()
}

func (r *Registry) release() {
	r.mu.Lock()
	r.cur = 0
	r.mu.Unlock()
	<-r.gate
}
