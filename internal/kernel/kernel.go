package kernel

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/korvin-os/korvin/internal/driver"
	"github.com/korvin-os/korvin/internal/unit"
)

// User is an authenticated principal known to the kernel.
type User struct {
	Name string
}

// Service handles one named dispatch target. Handle may suspend transitively
// through the task registry; it must not retain msg past its return.
type Service interface {
	Handle(ctx context.Context, k *Kern, msg Msg) (*Msg, error)
}

// Drivers bundles the hardware boundary handles.
type Drivers struct {
	CLI  driver.CLI
	Disp driver.Disp
	Time driver.Time
	Rnd  driver.Rnd
	Mem  driver.Mem
}

// Config assembles a kernel instance.
type Config struct {
	Encoder IdentityEncoder
	Drivers Drivers
	Logger  zerolog.Logger
}

// Kern is the single owner of all shared mutable kernel state.
type Kern struct {
	mu    sync.Mutex
	users []User
	servs map[string]Service
	tasks TaskRegistry

	enc      IdentityEncoder
	drv      Drivers
	log      zerolog.Logger
	instance string
}

func New(cfg Config) *Kern {
	k := &Kern{
		servs:    make(map[string]Service),
		enc:      cfg.Encoder,
		drv:      cfg.Drivers,
		instance: uuid.NewString(),
	}
	k.log = cfg.Logger.With().Str("kern", k.instance).Logger()
	return k
}

// Instance returns the kernel instance id used in logs.
func (k *Kern) Instance() string { return k.instance }

// Log returns the kernel-scoped logger. The pointer keeps the logger
// addressable for the zerolog level methods.
func (k *Kern) Log() *zerolog.Logger { return &k.log }

// Drivers returns the hardware boundary handles.
func (k *Kern) Drivers() Drivers { return k.drv }

// Tasks returns the attached task registry.
func (k *Kern) Tasks() TaskRegistry { return k.tasks }

// SetTasks attaches the task registry. Called once during bootstrap, before
// any dispatch.
func (k *Kern) SetTasks(r TaskRegistry) { k.tasks = r }

// RegisterUser adds a principal to the user table.
func (k *Kern) RegisterUser(u User) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.users = append(k.users, u)
	k.log.Info().Str("user", u.Name).Msg("user registered")
}

// RegisterService binds name to a handler. The registry is closed after
// bootstrap; duplicate names are rejected.
func (k *Kern) RegisterService(name string, s Service) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.servs[name]; ok {
		return fmt.Errorf("%w: %s", ErrServiceExists, name)
	}
	k.servs[name] = s
	k.log.Info().Str("serv", name).Msg("service registered")
	return nil
}

// Msg builds an authenticated message for owner ath. The identity is the
// encoded fingerprint of the rendered payload.
func (k *Kern) Msg(ath string, u unit.Unit) (Msg, error) {
	k.mu.Lock()
	found := false
	for _, usr := range k.users {
		if usr.Name == ath {
			found = true
			break
		}
	}
	k.mu.Unlock()
	if !found {
		return Msg{}, fmt.Errorf("%w: %s", ErrUserNotFound, ath)
	}

	hash, err := k.enc.Encode(u.String())
	if err != nil {
		return Msg{}, fmt.Errorf("%w: %w", ErrEncodeFault, err)
	}
	return Msg{Ath: ath, Unit: u, Hash: hash}, nil
}

// Send dispatches msg to the named service. The handler runs on the calling
// goroutine; the table lock is released before it executes.
func (k *Kern) Send(ctx context.Context, serv string, msg Msg) (*Msg, error) {
	k.mu.Lock()
	s, ok := k.servs[serv]
	k.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, serv)
	}

	k.log.Debug().Str("serv", serv).Str("ath", msg.Ath).Str("hsh", msg.Hash).Msg("send")
	return s.Handle(ctx, k, msg)
}

// minFreeMem is the memory headroom required before the root task starts.
const minFreeMem = 64 << 10

// Start parses entry text, registers it as the root task routed through the
// scheduler and returns the task id. Parse failure is lifted to a kernel
// error here, at the point text becomes a Unit, and the memory driver gates
// the whole bootstrap.
func (k *Kern) Start(ath, entry string) (int, error) {
	if k.tasks == nil {
		return 0, ErrNoTaskRegistry
	}
	if k.drv.Mem != nil {
		free, err := k.drv.Mem.Free()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrDriver, err)
		}
		if free < minFreeMem {
			return 0, fmt.Errorf("%w: %d bytes free", ErrMemoryOut, free)
		}
	}
	u, err := unit.Parse(entry)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return k.tasks.Register(ath, "init", TaskRun{Payload: u, Serv: "sys.task"})
}
