package kernel

import (
	"fmt"

	"github.com/korvin-os/korvin/internal/unit"
)

// Msg pairs an authenticated owner with a Unit payload and the payload's
// content fingerprint. It is computed once at construction and never
// re-validated.
type Msg struct {
	Ath  string
	Unit unit.Unit
	Hash string
}

// String renders the wire/display form.
func (m Msg) String() string {
	return fmt.Sprintf("{ath:%s msg:%s hsh:%s}", m.Ath, m.Unit, m.Hash)
}

// IdentityEncoder computes the opaque content fingerprint of rendered
// payload text.
type IdentityEncoder interface {
	Encode(text string) (string, error)
}
