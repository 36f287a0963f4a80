// Package identity computes message content fingerprints. The concrete
// algorithm is a collaborator behind kernel.IdentityEncoder; this package
// holds the default.
package identity

import (
	"encoding/base64"

	"golang.org/x/crypto/sha3"
)

// SHA3 fingerprints rendered payload text with SHA3-256 and encodes the
// digest as standard base64.
type SHA3 struct{}

func (SHA3) Encode(text string) (string, error) {
	h := sha3.Sum256([]byte(text))
	return base64.StdEncoding.EncodeToString(h[:]), nil
}
