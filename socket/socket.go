// Package socket defines the minimal contract the connection state
// machine needs from an underlying WebSocket implementation, and
// provides both the real implementation (over nhooyr.io/websocket) and
// an in-memory test double. Nothing above this package knows the
// concrete transport it's talking to — it only ever sees the Socket
// interface: "the underlying WebSocket transport" is an external
// collaborator whose interface is only
// named).
package socket

import "errors"

// ErrClosed is returned from Send when the socket is no longer active.
var ErrClosed = errors.New("socket closed")

// DisconnectReason classifies why a socket stopped delivering frames.
// Socket-level errors never themselves trigger leader-avoidance — the
// reason exists purely for logging/observability at the connection layer.
type DisconnectReason int

const (
	ReasonUnknown DisconnectReason = iota
	ReasonNetworkError
	ReasonClosedClean
)

// DisconnectEvent is delivered exactly once on the channel returned by
// Disconnected(), whatever the cause.
type DisconnectEvent struct {
	Reason DisconnectReason
	Err    error
}

// Socket is the contract the connection state machine depends on. Every
// frame it exchanges with the host is an already-framed JSON text
// payload (see package frame) — Socket moves opaque bytes, it does not
// interpret them.
type Socket interface {
	// Send writes one text frame to the remote side. Returns ErrClosed
	// if the socket is no longer active.
	Send(frame []byte) error

	// Receive returns the channel of incoming text frames. The channel
	// is closed when the socket closes, for any reason.
	Receive() <-chan []byte

	// Disconnected returns a channel that emits exactly one
	// DisconnectEvent when the socket closes.
	Disconnected() <-chan DisconnectEvent

	// Close shuts the socket down. Safe to call more than once.
	Close() error
}
