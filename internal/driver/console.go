package driver

import (
	"bufio"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"
)

// ConsoleCLI is a line-oriented terminal over stdio.
type ConsoleCLI struct {
	Out io.Writer
	In  *bufio.Reader
}

func NewConsoleCLI() *ConsoleCLI {
	return &ConsoleCLI{Out: os.Stdout, In: bufio.NewReader(os.Stdin)}
}

func (c *ConsoleCLI) Write(p []byte) (int, error) {
	n, err := c.Out.Write(p)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrCLIWrite, err)
	}
	return n, nil
}

func (c *ConsoleCLI) Clear() error {
	if _, err := io.WriteString(c.Out, "\x1b[2J\x1b[H"); err != nil {
		return fmt.Errorf("%w: %w", ErrCLIClear, err)
	}
	return nil
}

func (c *ConsoleCLI) GetKey(block bool) (TermKey, bool, error) {
	if !block {
		return TermKey{}, false, nil
	}
	r, _, err := c.In.ReadRune()
	if err != nil {
		return TermKey{}, false, fmt.Errorf("%w: %w", ErrCLIGetKey, err)
	}
	if r == 0x1b {
		return TermKey{Special: "esc"}, true, nil
	}
	return TermKey{Rune: r}, true, nil
}

func (c *ConsoleCLI) Res() (int, int, error) { return 80, 25, nil }

// NullDisp discards all drawing. It stands in where no framebuffer exists.
type NullDisp struct {
	W, H int
}

func NewNullDisp() *NullDisp { return &NullDisp{W: 640, H: 480} }

func (d *NullDisp) Res() (int, int, error) {
	if d.W <= 0 || d.H <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrDispResolution, d.W, d.H)
	}
	return d.W, d.H, nil
}

func (d *NullDisp) SetPixel(x, y int, color uint32) error {
	if x < 0 || y < 0 || x >= d.W || y >= d.H {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrDispSetPixel, x, y, d.W, d.H)
	}
	return nil
}

func (d *NullDisp) Blit(x, y, w, h int, img []uint32) error {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > d.W || y+h > d.H {
		return fmt.Errorf("%w: %dx%d at (%d, %d) outside %dx%d", ErrDispSetPixel, w, h, x, y, d.W, d.H)
	}
	if len(img) < w*h {
		return fmt.Errorf("%w: %d pixels for a %dx%d block", ErrDispSetPixel, len(img), w, h)
	}
	return nil
}

func (d *NullDisp) Fill(f func(x, y int) uint32) error {
	for y := 0; y < d.H; y++ {
		for x := 0; x < d.W; x++ {
			f(x, y)
		}
	}
	return nil
}

func (d *NullDisp) Flush() error { return nil }

func (d *NullDisp) FlushRegion(x, y, w, h int) error {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > d.W || y+h > d.H {
		return fmt.Errorf("%w: region %dx%d at (%d, %d) outside %dx%d", ErrDispFlush, w, h, x, y, d.W, d.H)
	}
	return nil
}

// Clock is a host monotonic clock.
type Clock struct {
	start time.Time
}

func NewClock() *Clock { return &Clock{start: time.Now()} }

func (c *Clock) Wait(d time.Duration) error {
	time.Sleep(d)
	return nil
}

func (c *Clock) WaitCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrTimeWait, ctx.Err())
	}
}

func (c *Clock) Uptime() (time.Duration, error) {
	if c.start.IsZero() {
		return 0, fmt.Errorf("%w: clock never started", ErrTimeUptime)
	}
	return time.Since(c.start), nil
}

// HostRnd reads from the host CSPRNG.
type HostRnd struct{}

func (HostRnd) Bytes(p []byte) error {
	if _, err := rand.Read(p); err != nil {
		return fmt.Errorf("%w: %w", ErrRndBytes, err)
	}
	return nil
}

// HostMem reports memory headroom from the Go runtime: bytes already
// obtained from the host but not in use by the heap.
type HostMem struct{}

func (HostMem) Free() (uint64, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.Sys - ms.HeapInuse, nil
}
