package systask

import (
	"context"

	"github.com/korvin-os/korvin/internal/kernel"
	"github.com/korvin-os/korvin/internal/unit"
)

// resolveRef follows a Ref against the document root; anything else passes
// through. An unresolved ref is left as-is for the caller to reject.
func resolveRef(root, u unit.Unit) unit.Unit {
	if path, ok := u.AsRef(); ok {
		if v, found := root.Find(root, path); found {
			return v
		}
	}
	return u
}

// asStream destructures the stream form (payload service) or
// (payload (service address)) after ref resolution. The service and address
// positions must resolve to strings.
func asStream(root, u unit.Unit) (payload unit.Unit, serv, addr string, ok bool) {
	u = resolveRef(root, u)
	a, b, isPair := u.AsPair()
	if !isPair {
		return unit.Unit{}, "", "", false
	}
	dst := resolveRef(root, b)
	if s, isStr := dst.AsStr(); isStr {
		return a, s, "", true
	}
	if sU, aU, isPair := dst.AsPair(); isPair {
		s, okS := resolveRef(root, sU).AsStr()
		ad, okA := resolveRef(root, aU).AsStr()
		if okS && okA {
			return a, s, ad, true
		}
	}
	return unit.Unit{}, "", "", false
}

// combinatorBody extracts the body of a named combinator from either surface
// syntax: a map entry keyed by the combinator name, or a (name, body) pair.
func combinatorBody(root, u unit.Unit, name string) (unit.Unit, bool) {
	if v, ok := u.AsMapFind(name); ok {
		return v, true
	}
	if a, b, ok := u.AsPair(); ok {
		if s, isStr := resolveRef(root, a).AsStr(); isStr && s == name {
			return b, true
		}
	}
	return unit.Unit{}, false
}

// readStep is the generic evaluate-step every combinator recurses toward: it
// resolves a Ref against the document root and, when the value is a stream
// form, performs exactly one dispatch through the kernel's send surface,
// yielding the result payload and identity. Everything else is already
// final.
func readStep(ctx context.Context, k *kernel.Kern, ath string, root, u unit.Unit) (unit.Unit, string, error) {
	u = resolveRef(root, u)

	payload, serv, _, ok := asStream(root, u)
	if !ok {
		return u, ath, nil
	}

	m, err := k.Msg(ath, payload)
	if err != nil {
		return unit.Unit{}, "", err
	}
	res, err := k.Send(ctx, serv, m)
	if err != nil {
		return unit.Unit{}, "", err
	}
	if res == nil {
		return payload, ath, nil
	}
	return res.Unit, res.Ath, nil
}
