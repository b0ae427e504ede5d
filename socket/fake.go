package socket

import "sync"

// Fake is an in-memory Socket test double. Tests push frames the
// simulated host "sends" via Push, and inspect what the client sent via
// Sent. It follows the same single-close, channel-per-concern shape as
// WebSocket so a test can swap one for the other without touching
// anything above the Socket interface.
type Fake struct {
	mu         sync.Mutex
	sent       [][]byte
	incoming   chan []byte
	disconnect chan DisconnectEvent
	closeOnce  sync.Once
	closed     bool
}

// NewFake returns a ready-to-use Fake with no frames queued.
func NewFake() *Fake {
	return &Fake{
		incoming:   make(chan []byte, 64),
		disconnect: make(chan DisconnectEvent, 1),
	}
}

// Push delivers frame to the client as if the host had sent it.
func (f *Fake) Push(frame []byte) {
	f.incoming <- frame
}

// CloseRemote simulates the host closing the connection: the incoming
// channel closes and a DisconnectEvent is emitted, matching what a real
// Socket does when its read loop ends.
func (f *Fake) CloseRemote(event DisconnectEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	close(f.incoming)
	select {
	case f.disconnect <- event:
	default:
	}
}

// Sent returns every frame handed to Send so far, in order.
func (f *Fake) Sent() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *Fake) Send(frame []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	cp := make([]byte, len(frame))
	copy(cp, frame)
	f.sent = append(f.sent, cp)
	return nil
}

func (f *Fake) Receive() <-chan []byte {
	return f.incoming
}

func (f *Fake) Disconnected() <-chan DisconnectEvent {
	return f.disconnect
}

// Closed reports whether Close or CloseRemote has run.
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Close simulates the client hanging up. Like the real WebSocket, whose
// read loop ends when Close runs and reports a clean disconnect, Close
// here still produces a DisconnectEvent (unless CloseRemote already did) — callers
// that only ever watch Disconnected() to learn the socket is done don't
// need to special-case who initiated the close.
func (f *Fake) Close() error {
	f.closeOnce.Do(func() {
		f.mu.Lock()
		wasClosed := f.closed
		f.closed = true
		f.mu.Unlock()
		if !wasClosed {
			close(f.incoming)
			select {
			case f.disconnect <- DisconnectEvent{Reason: ReasonClosedClean}:
			default:
			}
		}
	})
	return nil
}
