// Package gfx2d owns the 2d graphics service.
package gfx2d

import (
	"context"
	"fmt"

	"github.com/korvin-os/korvin/internal/kernel"
	"github.com/korvin-os/korvin/internal/unit"
)

// ServPath is the dispatch name of the graphics service.
const ServPath = "gfx.2d"

// Serv paints the display.
//
// Payload shapes:
//
//	{fill:<int>}  flood the whole surface with one color and flush
type Serv struct{}

func New() *Serv { return &Serv{} }

func (s *Serv) Handle(ctx context.Context, k *kernel.Kern, msg kernel.Msg) (*kernel.Msg, error) {
	disp := k.Drivers().Disp

	var col int32
	if !unit.MapOf(unit.SE(unit.Value(unit.Str("fill")), unit.SlotInt(&col))).MatchAt(msg.Unit, msg.Unit) {
		return nil, nil
	}

	if err := disp.Fill(func(x, y int) uint32 { return uint32(col) }); err != nil {
		return nil, fmt.Errorf("%w: %w", kernel.ErrDriver, err)
	}
	if err := disp.Flush(); err != nil {
		return nil, fmt.Errorf("%w: %w", kernel.ErrDriver, err)
	}
	return nil, nil
}
