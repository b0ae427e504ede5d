// Package frame implements the transport-level JSON envelope that wraps
// Wire3 message bytes for the wire, and the classifier that turns an
// inbound text frame into one of the four shapes the connection state
// machine and leader-avoidance loop react to.
package frame

import (
	"encoding/base64"
	"encoding/json"

	"github.com/risa-org/hostsock/wire3"
)

// Outbound is the JSON shape sent to the host for every application
// message: t is always the literal "ToBackend", s/c identify the
// session and connection, and b is the base64 of the Wire3-encoded
// message.
type Outbound struct {
	T string `json:"t"`
	S string `json:"s"`
	C string `json:"c"`
	B string `json:"b"`
}

// EncodeOutbound builds the outbound envelope for payload, tagged with
// tag, addressed to sessionID/connectionID, and returns it marshaled as
// JSON bytes ready to hand to the socket as a single text frame.
func EncodeOutbound(payload, sessionID, connectionID string, tag byte) ([]byte, error) {
	b := wire3.EncodeMessage(payload, tag)
	env := Outbound{
		T: "ToBackend",
		S: sessionID,
		C: connectionID,
		B: base64.StdEncoding.EncodeToString(b),
	}
	return json.Marshal(env)
}
