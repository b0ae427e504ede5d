package client

import (
	"context"
	"time"

	"github.com/risa-org/hostsock/history"
	"github.com/risa-org/hostsock/metrics"
	"github.com/risa-org/hostsock/socket"
)

// Dialer opens the underlying WebSocket. The default wraps
// socket.Dial; tests substitute a Dialer that hands back a
// *socket.Fake instead of touching the network.
type Dialer interface {
	Dial(ctx context.Context, url string, protocols []string, header map[string][]string) (socket.Socket, error)
}

type websocketDialer struct{}

func (websocketDialer) Dial(ctx context.Context, url string, protocols []string, header map[string][]string) (socket.Socket, error) {
	return socket.Dial(ctx, url, protocols, header)
}

// Options configures a Client. The zero value is not meant to be used
// directly — call DefaultOptions and override what you need.
type Options struct {
	// URL is the WebSocket endpoint to dial.
	URL string
	// Protocols are offered as WebSocket subprotocols.
	Protocols []string

	// Debug enables debug-level logging. Warn/error entries are always
	// emitted regardless of this setting.
	Debug bool

	// Tag is the message codec's discriminator byte (duVariant in the
	// host's terms). DefaultTag (0) is correct for the common
	// single-constructor case.
	Tag byte

	// MaxRetries bounds the leader-avoidance loop: once retryCount
	// exceeds MaxRetries the client gives up and transitions to CLOSED.
	MaxRetries int

	// RetryBaseDelay, RetryMaxDelay parameterize the jittered
	// exponential backoff computed by package leader.
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration

	// InitialDelayMax bounds the jitter applied before the very first
	// connect attempt.
	InitialDelayMax time.Duration

	// SessionID and Cookie let a caller pin the initial session instead
	// of generating a fresh one. Both empty means generate fresh.
	SessionID string
	Cookie    string

	// InjectCookieHeader adds a "Cookie: sid=<SessionID>" header to the
	// dial request. Off by default: most Go embedders of this adapter
	// are not sitting inside a browser's cookie jar, and unconditionally
	// injecting a header would surprise a caller who manages cookies
	// itself.
	InjectCookieHeader bool

	// Dialer overrides how the underlying WebSocket is opened. Nil uses
	// the real implementation.
	Dialer Dialer

	// Metrics, if non-nil, receives connection-lifecycle and
	// leader-avoidance counters. Supplemental — never consulted by
	// protocol logic.
	Metrics *metrics.Metrics

	// History, if non-nil, records a RotationRecord for every election
	// frame: a session rotation for a self-election, and a note with
	// OldSessionID == NewSessionID for an election of another client.
	// Supplemental, debug-only.
	History *history.Store
}

// DefaultOptions returns the conservative defaults: debug=false, Tag=0,
// maxRetries=10, retryBaseDelay=2000ms, retryMaxDelay=15000ms,
// initialDelayMax=1000ms.
func DefaultOptions(url string) Options {
	return Options{
		URL:             url,
		Debug:           false,
		Tag:             0,
		MaxRetries:      10,
		RetryBaseDelay:  2000 * time.Millisecond,
		RetryMaxDelay:   15000 * time.Millisecond,
		InitialDelayMax: 1000 * time.Millisecond,
	}
}

func (o Options) dialer() Dialer {
	if o.Dialer != nil {
		return o.Dialer
	}
	return websocketDialer{}
}
