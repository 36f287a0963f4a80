package driver

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrCLIClear  = errors.New("driver: cli clear")
	ErrCLIWrite  = errors.New("driver: cli write")
	ErrCLIGetKey = errors.New("driver: cli get key")

	ErrDispResolution = errors.New("driver: display resolution")
	ErrDispSetPixel   = errors.New("driver: display set pixel")
	ErrDispFlush      = errors.New("driver: display flush")

	ErrTimeWait   = errors.New("driver: time wait")
	ErrTimeUptime = errors.New("driver: time uptime")

	ErrRndBytes = errors.New("driver: random bytes")
)

// TermKey is one decoded terminal key event.
type TermKey struct {
	// Rune is set for printable keys.
	Rune rune
	// Special names a non-printable key: "esc", "up", "down", "left", "right".
	Special string
}

// CLI is a character terminal.
type CLI interface {
	io.Writer

	Clear() error
	// GetKey reads one key event. With block=false it returns ok=false
	// immediately when no key is pending.
	GetKey(block bool) (TermKey, bool, error)
	Res() (w, h int, err error)
}

// Disp is a pixel framebuffer.
type Disp interface {
	Res() (w, h int, err error)
	SetPixel(x, y int, color uint32) error
	Blit(x, y, w, h int, img []uint32) error
	// Fill paints the whole surface through f(x, y).
	Fill(f func(x, y int) uint32) error
	Flush() error
	FlushRegion(x, y, w, h int) error
}

// Time is a monotonic clock.
type Time interface {
	// Wait blocks the calling goroutine for d.
	Wait(d time.Duration) error
	// WaitCtx blocks for d or until ctx is canceled.
	WaitCtx(ctx context.Context, d time.Duration) error
	Uptime() (time.Duration, error)
}

// Rnd is a random byte source.
type Rnd interface {
	Bytes(p []byte) error
}

// Mem reports free memory.
type Mem interface {
	Free() (uint64, error)
}
