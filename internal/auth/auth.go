// Package auth is the shared-secret gate in front of the viewer. There is no
// per-user identity, only one configured secret.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Gate checks a supplied secret against a salted SHA-256 hex digest.
// The stored digest is sha256(salt + secret).
type Gate struct {
	salt   string
	digest string
}

// New creates a gate. An empty digest disables it.
func New(salt, digest string) Gate {
	return Gate{salt: salt, digest: digest}
}

// Enabled reports whether a digest is configured at all.
func (g Gate) Enabled() bool {
	return g.digest != ""
}

// Verify reports whether the secret matches the configured digest.
// A disabled gate accepts everything.
func (g Gate) Verify(secret string) bool {
	if !g.Enabled() {
		return true
	}
	sum := sha256.Sum256([]byte(g.salt + secret))
	got := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(got), []byte(g.digest)) == 1
}

// Digest computes the hex digest for a new secret, for writing into the
// config file.
func Digest(salt, secret string) string {
	sum := sha256.Sum256([]byte(salt + secret))
	return hex.EncodeToString(sum[:])
}
