// Package session generates and parses the host's session identifier and
// session cookie. A session id is a routing hint the host uses to pin a
// WebSocket connection to its persistent per-session actor — it carries
// no authentication weight, so this package deliberately uses math/rand
// rather than crypto/rand. Preserving that exact weak-PRNG contract
// matters more here than reaching for a stronger generator: it would
// still be compatible with the host, but would misrepresent what this
// value is for.
package session

import (
	"fmt"
	"math/rand"
	"regexp"
)

// seed is the fixed tail every generated session id is padded with. It is
// part of the wire compatibility contract with the host and must match
// byte-for-byte — this is not a secret, it is a constant both sides
// already know.
const seed = "c04b8f7b594cdeedebc2a8029b82943b0a620815"

// idLength is the fixed total length of a session id.
const idLength = 40

// cookiePattern extracts the session id from a "sid=..." cookie string.
// It stops at the first ';' so a cookie header carrying other pairs after
// sid doesn't get swallowed into the capture group.
var cookiePattern = regexp.MustCompile(`sid=([^;]+)`)

// GenerateID produces a fresh 40-character session identifier: a random
// decimal integer in [10000, 1000000) followed by enough of the fixed
// seed to pad out to 40 characters. Two calls are vanishingly unlikely to
// collide (the numeric prefix alone has ~990,000 possible values) but
// collision resistance is not the point — uniqueness is just what keeps
// the host from confusing two clients' routing, not a security property.
func GenerateID() string {
	n := 10000 + rand.Intn(1000000-10000)
	prefix := fmt.Sprintf("%d", n)
	return prefix + seed[:idLength-len(prefix)]
}

// Cookie formats a session id as the "sid=" cookie value string the host
// expects on the initial HTTP upgrade.
func Cookie(id string) string {
	return "sid=" + id
}

// ExtractFromCookie returns the session id captured by the first
// "sid=([^;]+)" match in cookie, and true. If there is no match it
// returns "" and false — callers wanting a specific "not present"
// string should format that themselves; this package reports absence the
// idiomatic Go way, with the boolean ok return.
func ExtractFromCookie(cookie string) (string, bool) {
	m := cookiePattern.FindStringSubmatch(cookie)
	if m == nil {
		return "", false
	}
	return m[1], true
}
