package systask

import (
	"context"

	"github.com/korvin-os/korvin/internal/kernel"
	"github.com/korvin-os/korvin/internal/unit"
)

// ServPath is the dispatch name of the orchestration service.
const ServPath = "sys.task"

// Serv interprets control-flow combinators embedded in message payloads.
// Exactly one combinator applies per invocation; recognition happens in a
// fixed order and the first structural match wins.
type Serv struct{}

func New() *Serv { return &Serv{} }

// outcome is what a recognized combinator leaves behind: the (possibly
// updated) owner identity and, for payload-producing combinators, a result
// payload.
type outcome struct {
	ath        string
	payload    unit.Unit
	hasPayload bool
}

func (s *Serv) Handle(ctx context.Context, k *kernel.Kern, msg kernel.Msg) (*kernel.Msg, error) {
	orig := msg.Unit

	u, ath, err := readStep(ctx, k, msg.Ath, orig, orig)
	if err != nil {
		return nil, err
	}

	out, err := s.dispatch(ctx, k, ath, orig, u)
	if err != nil {
		return nil, err
	}
	if out != nil {
		payload := u
		if out.hasPayload {
			payload = out.payload
		}
		m, err := k.Msg(out.ath, payload)
		if err != nil {
			return nil, err
		}
		return &m, nil
	}

	// already final
	if ath == msg.Ath && u.Equal(msg.Unit) {
		return &msg, nil
	}
	m, err := k.Msg(ath, u)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Serv) dispatch(ctx context.Context, k *kernel.Kern, ath string, orig, u unit.Unit) (*outcome, error) {
	steps := []func(context.Context, *kernel.Kern, string, unit.Unit, unit.Unit) (*outcome, error){
		s.runLoop,
		s.runSep,
		s.runChain,
		s.runSim,
		s.runQueue,
		s.runStack,
		s.runSignal,
	}
	for _, step := range steps {
		out, err := step(ctx, k, ath, orig, u)
		if err != nil {
			return nil, err
		}
		if out != nil {
			return out, nil
		}
	}
	return nil, nil
}

// runLoop drives task.loop: a (count, body) pair whose head evaluates to a
// non-negative int performs exactly count sequential evaluate-steps on body,
// threading the owner identity from each iteration into the next. Any other
// body, a stream pair included, loops without bound and ends only through a
// kill of the surrounding task.
func (s *Serv) runLoop(ctx context.Context, k *kernel.Kern, ath string, orig, u unit.Unit) (*outcome, error) {
	body, ok := combinatorBody(orig, u, "task.loop")
	if !ok {
		return nil, nil
	}

	if cntU, inner, isPair := body.AsPair(); isPair {
		cv, nath, err := readStep(ctx, k, ath, orig, cntU)
		if err != nil {
			return nil, err
		}
		if n, isInt := cv.AsInt(); isInt && n >= 0 {
			ath = nath
			k.Log().Debug().Int32("count", n).Msg("task.loop")
			for i := int32(0); i < n; i++ {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				_, nath, err := readStep(ctx, k, ath, orig, inner)
				if err != nil {
					return nil, err
				}
				ath = nath
			}
			return &outcome{ath: ath}, nil
		}
		// no count in the head, so the pair is itself the loop body
		ath = nath
	}

	k.Log().Debug().Msg("task.loop unbounded")
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		_, nath, err := readStep(ctx, k, ath, orig, body)
		if err != nil {
			return nil, err
		}
		ath = nath
	}
}

// runSep registers the inner stream as an independent task and returns
// immediately: no waiting, no ordering guarantee.
func (s *Serv) runSep(ctx context.Context, k *kernel.Kern, ath string, orig, u unit.Unit) (*outcome, error) {
	body, ok := combinatorBody(orig, u, "task.sep")
	if !ok {
		return nil, nil
	}
	if payload, serv, _, ok := asStream(orig, body); ok {
		if _, err := k.Tasks().Register(ath, ServPath, kernel.TaskRun{Payload: payload, Serv: serv}); err != nil {
			return nil, err
		}
		k.Log().Debug().Str("serv", serv).Msg("task.sep")
	}
	return &outcome{ath: ath}, nil
}

// runChain walks the service list under key "task": each hop runs the
// current working payload against one service, waits for the result, merges
// the result payload on top of the previous one and adopts the result's
// identity. The starting payload is the whole combinator map unless an
// explicit one sits under key "msg".
func (s *Serv) runChain(ctx context.Context, k *kernel.Kern, ath string, orig, u unit.Unit) (*outcome, error) {
	lstU, ok := u.AsMapFind("task")
	if !ok {
		return nil, nil
	}
	lv, ath, err := readStep(ctx, k, ath, orig, lstU)
	if err != nil {
		return nil, err
	}
	lst, ok := lv.AsList()
	if !ok {
		return nil, nil
	}

	work := u
	if m, ok := u.AsMapFind("msg"); ok {
		work, ath, err = readStep(ctx, k, ath, orig, m)
		if err != nil {
			return nil, err
		}
	}

	for _, hop := range lst {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sv, nath, err := readStep(ctx, k, ath, orig, hop)
		if err != nil {
			return nil, err
		}
		serv, ok := sv.AsStr()
		if !ok {
			return nil, nil
		}
		ath = nath

		id, err := k.Tasks().Register(ath, ServPath, kernel.TaskRun{Payload: work, Serv: serv})
		if err != nil {
			return nil, err
		}
		k.Log().Debug().Str("serv", serv).Int("id", id).Msg("task chain hop")

		res, err := k.Tasks().Await(ctx, id)
		if err != nil {
			return nil, err
		}
		if res == nil {
			// a silent hop ends the chain with what has been merged so far
			break
		}
		work = work.Merge(res.Unit)
		ath = res.Ath
	}
	return &outcome{ath: ath, payload: work, hasPayload: true}, nil
}

// runSim registers every stream entry of the list independently, waiting on
// none of them.
func (s *Serv) runSim(ctx context.Context, k *kernel.Kern, ath string, orig, u unit.Unit) (*outcome, error) {
	body, ok := combinatorBody(orig, u, "task.sim")
	if !ok {
		return nil, nil
	}
	lv, ath, err := readStep(ctx, k, ath, orig, body)
	if err != nil {
		return nil, err
	}
	lst, ok := lv.AsList()
	if !ok {
		return nil, nil
	}
	for _, el := range lst {
		if payload, serv, _, ok := asStream(orig, el); ok {
			if _, err := k.Tasks().Register(ath, ServPath, kernel.TaskRun{Payload: payload, Serv: serv}); err != nil {
				return nil, err
			}
			k.Log().Debug().Str("serv", serv).Msg("task.sim entry")
		}
	}
	return &outcome{ath: ath}, nil
}

// runQueue performs the generic evaluate-step on each payload in strict
// sequence, threading the identity forward and discarding each step's
// payload result.
func (s *Serv) runQueue(ctx context.Context, k *kernel.Kern, ath string, orig, u unit.Unit) (*outcome, error) {
	body, ok := combinatorBody(orig, u, "task.que")
	if !ok {
		return nil, nil
	}
	lv, ath, err := readStep(ctx, k, ath, orig, body)
	if err != nil {
		return nil, err
	}
	lst, ok := lv.AsList()
	if !ok {
		return nil, nil
	}
	k.Log().Debug().Int("len", len(lst)).Msg("task.que")
	for _, el := range lst {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		_, nath, err := readStep(ctx, k, ath, orig, el)
		if err != nil {
			return nil, err
		}
		ath = nath
	}
	return &outcome{ath: ath}, nil
}

// runStack evaluates each payload of the list, then runs it as a task
// against the one fixed destination service, strictly in order, waiting for
// each completion before issuing the next.
func (s *Serv) runStack(ctx context.Context, k *kernel.Kern, ath string, orig, u unit.Unit) (*outcome, error) {
	body, ok := combinatorBody(orig, u, "task.stk")
	if !ok {
		return nil, nil
	}
	lstU, serv, _, ok := asStream(orig, body)
	if !ok {
		return nil, nil
	}
	lv, ath, err := readStep(ctx, k, ath, orig, lstU)
	if err != nil {
		return nil, err
	}
	lst, ok := lv.AsList()
	if !ok {
		return nil, nil
	}
	k.Log().Debug().Str("serv", serv).Int("len", len(lst)).Msg("task.stk")
	for _, el := range lst {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		payload, nath, err := readStep(ctx, k, ath, orig, el)
		if err != nil {
			return nil, err
		}
		ath = nath

		id, err := k.Tasks().Register(ath, ServPath, kernel.TaskRun{Payload: payload, Serv: serv})
		if err != nil {
			return nil, err
		}
		res, err := k.Tasks().Await(ctx, id)
		if err != nil {
			return nil, err
		}
		if res != nil {
			ath = res.Ath
		}
	}
	return &outcome{ath: ath}, nil
}

// runSignal recognizes the (kill, id) pair and delivers a kill to the
// registry for that id, leaving the payload untouched.
func (s *Serv) runSignal(ctx context.Context, k *kernel.Kern, ath string, orig, u unit.Unit) (*outcome, error) {
	sigU, idU, ok := u.AsPair()
	if !ok {
		return nil, nil
	}
	sig, ok := resolveRef(orig, sigU).AsStr()
	if !ok || sig != "kill" {
		return nil, nil
	}
	id, ok := resolveRef(orig, idU).AsInt()
	if !ok {
		return nil, nil
	}
	k.Log().Debug().Int32("id", id).Msg("kill signal")
	if err := k.Tasks().Signal(int(id), kernel.SigKill); err != nil {
		return nil, err
	}
	return &outcome{ath: ath}, nil
}
