package gfx2d

import (
	"context"
	"testing"

	"github.com/korvin-os/korvin/internal/identity"
	"github.com/korvin-os/korvin/internal/kernel"
	"github.com/korvin-os/korvin/internal/testutil/testlog"
	"github.com/korvin-os/korvin/internal/unit"
)

type fakeDisp struct {
	filled  []uint32
	flushes int
}

func (f *fakeDisp) Res() (int, int, error) { return 2, 1, nil }

func (f *fakeDisp) SetPixel(x, y int, color uint32) error { return nil }

func (f *fakeDisp) Blit(x, y, w, h int, img []uint32) error { return nil }

func (f *fakeDisp) Fill(fn func(x, y int) uint32) error {
	w, h, _ := f.Res()
	f.filled = f.filled[:0]
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.filled = append(f.filled, fn(x, y))
		}
	}
	return nil
}

func (f *fakeDisp) Flush() error { f.flushes++; return nil }

func (f *fakeDisp) FlushRegion(x, y, w, h int) error { return nil }

func TestFill(t *testing.T) {
	disp := &fakeDisp{}
	k := kernel.New(kernel.Config{
		Encoder: identity.SHA3{},
		Drivers: kernel.Drivers{Disp: disp},
		Logger:  testlog.Start(t),
	})
	k.RegisterUser(kernel.User{Name: "super"})

	u, err := unit.Parse("{fill:16711680}")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	msg, err := k.Msg("super", u)
	if err != nil {
		t.Fatalf("msg: %v", err)
	}
	res, err := New().Handle(context.Background(), k, msg)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if res != nil {
		t.Fatalf("fill must be silent, got %s", res)
	}

	if disp.flushes != 1 {
		t.Fatalf("flushes %d", disp.flushes)
	}
	for i, c := range disp.filled {
		if c != 0xff0000 {
			t.Fatalf("pixel %d: %#x", i, c)
		}
	}
	if len(disp.filled) != 2 {
		t.Fatalf("filled %d pixels", len(disp.filled))
	}
}
