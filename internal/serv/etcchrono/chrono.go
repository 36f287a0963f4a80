// Package etcchrono owns the clock service.
package etcchrono

import (
	"context"
	"fmt"
	"time"

	"github.com/korvin-os/korvin/internal/kernel"
	"github.com/korvin-os/korvin/internal/unit"
)

// ServPath is the dispatch name of the clock service.
const ServPath = "etc.chrono"

// Serv suspends the requesting task on the monotonic clock.
//
// Payload shapes:
//
//	{wait:<int>}  wait <int> milliseconds
//	{up:t}        reply with uptime in milliseconds under key up
type Serv struct{}

func New() *Serv { return &Serv{} }

func (s *Serv) Handle(ctx context.Context, k *kernel.Kern, msg kernel.Msg) (*kernel.Msg, error) {
	clk := k.Drivers().Time

	var ms int32
	if unit.MapOf(unit.SE(unit.Value(unit.Str("wait")), unit.SlotInt(&ms))).MatchAt(msg.Unit, msg.Unit) {
		if err := clk.WaitCtx(ctx, time.Duration(ms)*time.Millisecond); err != nil {
			return nil, fmt.Errorf("%w: %w", kernel.ErrDriver, err)
		}
		return nil, nil
	}

	var up bool
	if unit.MapOf(unit.SE(unit.Value(unit.Str("up")), unit.SlotBool(&up))).MatchAt(msg.Unit, msg.Unit) && up {
		d, err := clk.Uptime()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", kernel.ErrDriver, err)
		}
		out, err := k.Msg(msg.Ath, unit.Map(unit.E(unit.Str("up"), unit.Int(int32(d.Milliseconds())))))
		if err != nil {
			return nil, err
		}
		return &out, nil
	}

	return nil, nil
}
