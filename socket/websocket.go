package socket

import (
	"context"
	"sync"

	"nhooyr.io/websocket"
)

// WebSocket implements Socket over a real nhooyr.io/websocket
// connection. Frames are exchanged as text messages — the caller is
// responsible for framing/unframing the JSON envelope (package frame);
// this type moves bytes only.
type WebSocket struct {
	conn       *websocket.Conn
	incoming   chan []byte
	disconnect chan DisconnectEvent
	closeOnce  sync.Once
	ctx        context.Context
	cancel     context.CancelFunc
}

// Dial opens a WebSocket connection to url, offering protocols as
// WebSocket subprotocols and attaching header as the upgrade request's
// headers (used to carry the "sid=" cookie when
// Options.InjectCookieHeader is set).
func Dial(ctx context.Context, url string, protocols []string, header map[string][]string) (*WebSocket, error) {
	opts := &websocket.DialOptions{
		Subprotocols: protocols,
	}
	if len(header) > 0 {
		h := make(map[string][]string, len(header))
		for k, v := range header {
			h[k] = v
		}
		opts.HTTPHeader = h
	}

	conn, _, err := websocket.Dial(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}

// New wraps an already-dialed *websocket.Conn in a Socket.
func New(conn *websocket.Conn) *WebSocket {
	ctx, cancel := context.WithCancel(context.Background())
	w := &WebSocket{
		conn:       conn,
		incoming:   make(chan []byte, 64),
		disconnect: make(chan DisconnectEvent, 1),
		ctx:        ctx,
		cancel:     cancel,
	}
	go w.readLoop()
	return w
}

func (w *WebSocket) Send(frame []byte) error {
	if err := w.conn.Write(w.ctx, websocket.MessageText, frame); err != nil {
		return ErrClosed
	}
	return nil
}

func (w *WebSocket) Receive() <-chan []byte {
	return w.incoming
}

func (w *WebSocket) Disconnected() <-chan DisconnectEvent {
	return w.disconnect
}

func (w *WebSocket) Close() error {
	var err error
	w.closeOnce.Do(func() {
		// Close the connection before canceling ctx: canceling the context
		// a pending Read waits on makes the library fail the connection
		// with a policy-violation status instead of a normal closure.
		err = w.conn.Close(websocket.StatusNormalClosure, "closed")
		w.cancel()
	})
	return err
}

func (w *WebSocket) readLoop() {
	defer func() {
		close(w.incoming)
		w.Close()
	}()

	for {
		_, data, err := w.conn.Read(w.ctx)
		if err != nil {
			w.signalDisconnect(err)
			return
		}
		w.incoming <- data
	}
}

// signalDisconnect classifies why the read loop stopped. Normal closure
// and going-away are both clean closes; a canceled context means Close
// was called locally, also clean.
func (w *WebSocket) signalDisconnect(err error) {
	event := DisconnectEvent{}

	status := websocket.CloseStatus(err)
	switch {
	case status == websocket.StatusNormalClosure,
		status == websocket.StatusGoingAway,
		w.ctx.Err() != nil:
		event.Reason = ReasonClosedClean
	default:
		event.Reason = ReasonNetworkError
		event.Err = err
	}

	select {
	case w.disconnect <- event:
	default:
	}
}
