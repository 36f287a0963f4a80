package etcchrono

import (
	"context"
	"testing"
	"time"

	"github.com/korvin-os/korvin/internal/identity"
	"github.com/korvin-os/korvin/internal/kernel"
	"github.com/korvin-os/korvin/internal/testutil/testlog"
	"github.com/korvin-os/korvin/internal/unit"
)

type fakeClock struct {
	waited []time.Duration
	uptime time.Duration
}

func (f *fakeClock) Wait(d time.Duration) error { f.waited = append(f.waited, d); return nil }

func (f *fakeClock) WaitCtx(ctx context.Context, d time.Duration) error {
	f.waited = append(f.waited, d)
	return ctx.Err()
}

func (f *fakeClock) Uptime() (time.Duration, error) { return f.uptime, nil }

func newKern(t *testing.T, clk *fakeClock) *kernel.Kern {
	t.Helper()
	k := kernel.New(kernel.Config{
		Encoder: identity.SHA3{},
		Drivers: kernel.Drivers{Time: clk},
		Logger:  testlog.Start(t),
	})
	k.RegisterUser(kernel.User{Name: "super"})
	return k
}

func send(t *testing.T, k *kernel.Kern, text string) *kernel.Msg {
	t.Helper()
	u, err := unit.Parse(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	msg, err := k.Msg("super", u)
	if err != nil {
		t.Fatalf("msg: %v", err)
	}
	res, err := New().Handle(context.Background(), k, msg)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	return res
}

func TestWait(t *testing.T) {
	clk := &fakeClock{}
	k := newKern(t, clk)

	if res := send(t, k, "{wait:250}"); res != nil {
		t.Fatalf("wait must be silent, got %s", res)
	}
	if len(clk.waited) != 1 || clk.waited[0] != 250*time.Millisecond {
		t.Fatalf("waited %v", clk.waited)
	}
}

func TestUptime(t *testing.T) {
	clk := &fakeClock{uptime: 1500 * time.Millisecond}
	k := newKern(t, clk)

	res := send(t, k, "{up:t}")
	if res == nil {
		t.Fatal("up must reply")
	}
	ms, ok := res.Unit.FindInt(res.Unit, []string{"up"})
	if !ok || ms != 1500 {
		t.Fatalf("uptime reply: %s", res.Unit)
	}
	if res.Ath != "super" {
		t.Fatalf("ath %q", res.Ath)
	}
}

func TestUnrecognizedPayloadIsSilent(t *testing.T) {
	clk := &fakeClock{}
	k := newKern(t, clk)

	if res := send(t, k, "{other:t}"); res != nil {
		t.Fatalf("got %s", res)
	}
	if len(clk.waited) != 0 {
		t.Fatalf("waited %v", clk.waited)
	}
}
