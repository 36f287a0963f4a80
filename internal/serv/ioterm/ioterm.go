// Package ioterm owns the character terminal service.
package ioterm

import (
	"context"
	"fmt"
	"io"

	"github.com/korvin-os/korvin/internal/kernel"
	"github.com/korvin-os/korvin/internal/unit"
)

// ServPath is the dispatch name of the terminal service.
const ServPath = "io.term"

// Serv writes rendered units to the terminal driver.
//
// Payload shapes:
//
//	{say:<unit>}  render <unit> and write it with a trailing newline
//	{msg:<unit>}  same as say
//	{cls:t}       clear the terminal first
type Serv struct{}

func New() *Serv { return &Serv{} }

func (s *Serv) Handle(ctx context.Context, k *kernel.Kern, msg kernel.Msg) (*kernel.Msg, error) {
	cli := k.Drivers().CLI

	var cls bool
	if unit.MapOf(unit.SE(unit.Value(unit.Str("cls")), unit.SlotBool(&cls))).MatchAt(msg.Unit, msg.Unit) && cls {
		if err := cli.Clear(); err != nil {
			return nil, fmt.Errorf("%w: %w", kernel.ErrDriver, err)
		}
	}

	var say unit.Unit
	sch := unit.MapOf(unit.SE(
		unit.OneOf(unit.Value(unit.Str("say")), unit.Value(unit.Str("msg"))),
		unit.SlotAny(&say),
	))
	if !sch.MatchAt(msg.Unit, msg.Unit) {
		return nil, nil
	}

	text := say.String()
	if str, ok := say.AsStr(); ok {
		text = str
	}
	if _, err := io.WriteString(cli, text+"\n"); err != nil {
		return nil, fmt.Errorf("%w: %w", kernel.ErrDriver, err)
	}
	return nil, nil
}
