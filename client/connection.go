// Package client implements the connection state machine and
// leader-avoidance loop that together make up the public surface of
// this adapter. Everything mutable
// about a Client is owned by one goroutine — the loop started by
// New — and reached from the outside only through Send/Close and
// read-only property getters, per the "single logical task" scheduling
// model.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/risa-org/hostsock/frame"
	"github.com/risa-org/hostsock/history"
	"github.com/risa-org/hostsock/internal/logging"
	"github.com/risa-org/hostsock/leader"
	"github.com/risa-org/hostsock/metrics"
	"github.com/risa-org/hostsock/session"
	"github.com/risa-org/hostsock/socket"
)

// ErrNotOpen is returned by Send when the connection is not CONNECTING
// or OPEN.
var ErrNotOpen = errors.New("hostsock: connection not open")

// dialOutcome carries a Dial's result back to the loop goroutine. Dial
// always runs in its own goroutine (see beginConnect) so the loop stays
// free to service Send/Close while a connect attempt is in flight — the
// same "awaiting the next event" suspension point as a frame or
// disconnect, just for the socket that doesn't exist yet.
type dialOutcome struct {
	sock socket.Socket
	err  error
}

// Client is a WebSocket-like surface over the host's protocol: binary
// Wire3 payloads, a session/cookie discipline, and a leader-avoidance
// reconnect loop that runs transparently underneath Send/Close.
type Client struct {
	opts     Options
	handlers Handlers
	dialer   Dialer
	logger   logging.Logger
	metrics  *metrics.Metrics
	history  *history.Store
	tracer   trace.Tracer

	requests   chan request
	dialResult chan dialOutcome
	done       chan struct{}
	doneOnce   sync.Once

	// Fields below this point are read and written exclusively by run()
	// and the functions it calls directly — never from Send/Close.
	sock         socket.Socket
	dialCancel   context.CancelFunc
	connectSpan  trace.Span
	queue        Queue
	retryCount   int
	setupCalled  bool
	closeCode    int
	closeReason  string
	terminated   bool
	pendingTimer <-chan time.Time

	// mu guards the externally-readable properties, since Send/Close
	// callers and the loop goroutine both touch them.
	mu           sync.RWMutex
	state        State
	sessionID    string
	cookie       string
	clientID     string
	connectionID string
	leaderID     string

	bufferedAmount atomic.Int64
}

// New constructs a Client and starts its event loop in a background
// goroutine. The very first connect attempt is delayed by a uniform
// random jitter in [0, InitialDelayMax) to spread simultaneous clients'
// handshake arrivals.
func New(opts Options, handlers Handlers) *Client {
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = session.GenerateID()
	}
	cookie := opts.Cookie
	if cookie == "" {
		cookie = session.Cookie(sessionID)
	}

	c := &Client{
		opts:       opts,
		handlers:   handlers,
		dialer:     opts.dialer(),
		logger:     logging.New(opts.Debug),
		metrics:    opts.Metrics,
		history:    opts.History,
		tracer:     otel.Tracer("github.com/risa-org/hostsock/client"),
		requests:   make(chan request, 16),
		dialResult: make(chan dialOutcome, 1),
		done:       make(chan struct{}),
		state:      StateConnecting,
		sessionID:  sessionID,
		cookie:     cookie,
	}

	go c.run(leader.InitialJitter(opts.InitialDelayMax))
	return c
}

// --- public read-only properties ---

func (c *Client) URL() string { return c.opts.URL }

func (c *Client) ReadyState() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) BufferedAmount() int64 { return c.bufferedAmount.Load() }

func (c *Client) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

func (c *Client) ClientID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clientID
}

func (c *Client) ConnectionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connectionID
}

func (c *Client) LeaderID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.leaderID
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.metrics.SetState(int(s))
}

// --- public mutators: Send/Close hand their work to the loop as a
// request (Close also sets CLOSING itself) ---

// Send frames data as a Wire3 message and delivers it according to
// §4.10: dropped silently while leader-avoidance is in progress, queued
// while CONNECTING, sent immediately while OPEN, and rejected with
// ErrNotOpen otherwise.
func (c *Client) Send(data string) error {
	result := make(chan error, 1)
	select {
	case c.requests <- request{send: &sendRequest{data: data, result: result}}:
	case <-c.done:
		return ErrNotOpen
	}
	select {
	case err := <-result:
		return err
	case <-c.done:
		return ErrNotOpen
	}
}

// Close transitions the connection to CLOSING immediately — the caller
// observes the new ReadyState synchronously — and asks the loop to tear
// down the underlying socket, which happens asynchronously.
func (c *Client) Close(code int, reason string) {
	c.mu.Lock()
	if c.state == StateClosed || c.state == StateClosing {
		c.mu.Unlock()
		return
	}
	c.state = StateClosing
	c.mu.Unlock()
	c.metrics.SetState(int(StateClosing))

	select {
	case c.requests <- request{close: &closeRequest{code: code, reason: reason}}:
	case <-c.done:
	}
}

func (c *Client) finish() {
	c.doneOnce.Do(func() { close(c.done) })
}

// --- the event loop ---

func (c *Client) run(initialJitter time.Duration) {
	timer := time.NewTimer(initialJitter)
	c.loop(timer.C)
}

// loop is the single logical task owning all Client state: every
// transition except Close's move to CLOSING happens here, fed by the
// timer, dial-result and request channels besides the current socket's
// own channels. timerC fires for both the
// initial-connect jitter and every subsequent reconnect backoff — they
// are the same kind of suspension point.
func (c *Client) loop(timerC <-chan time.Time) {
	defer c.finish()

	for {
		var frameCh <-chan []byte
		var discCh <-chan socket.DisconnectEvent
		if c.sock != nil {
			frameCh = c.sock.Receive()
			discCh = c.sock.Disconnected()
		}

		select {
		case <-timerC:
			timerC = nil
			c.beginConnect()

		case res := <-c.dialResult:
			c.handleDialResult(res)

		case req := <-c.requests:
			c.handleRequest(req)

		case f, ok := <-frameCh:
			if !ok {
				continue // the matching DisconnectEvent will arrive separately
			}
			c.handleFrame(f)

		case ev := <-discCh:
			c.handleDisconnect(ev)
		}

		if c.terminated {
			return
		}
		if t := c.pendingTimer; t != nil {
			timerC = t
			c.pendingTimer = nil
		}
	}
}

// beginConnect kicks off a connect attempt asynchronously: the actual
// Dial call runs in its own goroutine so the loop goroutine never
// blocks on network I/O. Only one dial is ever in flight at a time,
// since beginConnect is only invoked from the loop itself (on the
// initial jitter timer or a reconnect backoff timer).
func (c *Client) beginConnect() {
	c.setState(StateConnecting)
	c.metrics.ConnectAttempt()

	header := map[string][]string{}
	if c.opts.InjectCookieHeader {
		c.mu.RLock()
		header["Cookie"] = []string{c.cookie}
		c.mu.RUnlock()
	}

	c.mu.RLock()
	sessionID := c.sessionID
	c.mu.RUnlock()
	spanCtx, span := c.tracer.Start(context.Background(), "hostsock.connect",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("hostsock.session_id", sessionID),
			attribute.Int("hostsock.retry_count", c.retryCount),
		),
	)
	c.connectSpan = span

	ctx, cancel := context.WithCancel(spanCtx)
	c.dialCancel = cancel

	dialer := c.dialer
	url := c.opts.URL
	protocols := c.opts.Protocols
	go func() {
		sock, err := dialer.Dial(ctx, url, protocols, header)
		if ctx.Err() != nil {
			// Close/teardown canceled us before the dial finished — the
			// loop is gone or has moved on, so nobody will ever read
			// this through handleDialResult. Close a successfully-dialed
			// socket ourselves instead of leaking it.
			if err == nil {
				_ = sock.Close()
			}
			return
		}
		c.dialResult <- dialOutcome{sock: sock, err: err}
	}()
}

func (c *Client) handleDialResult(res dialOutcome) {
	c.dialCancel = nil
	span := c.connectSpan
	c.connectSpan = nil

	if res.err != nil {
		c.logger.Error("dial failed", logging.Field{Key: "error", Value: res.err})
		c.handlers.fireError(res.err)
		if span != nil {
			span.RecordError(res.err)
			span.SetStatus(codes.Error, res.err.Error())
			span.End()
		}
		c.setState(StateClosed)
		c.terminated = true
		return
	}

	if span != nil {
		span.End()
	}
	c.sock = res.sock
	c.setState(StateOpen)
	for _, f := range c.queue.Drain() {
		c.bufferedAmount.Add(-int64(len(f)))
		if err := c.sock.Send(f); err != nil {
			c.handlers.fireError(err)
		}
	}
}

func (c *Client) handleRequest(req request) {
	switch {
	case req.send != nil:
		req.send.result <- c.doSend(req.send.data)
	case req.close != nil:
		c.doClose(req.close.code, req.close.reason)
	}
}

func (c *Client) doSend(data string) error {
	c.mu.RLock()
	retryCount := c.retryCount
	state := c.state
	sessionID := c.sessionID
	connectionID := c.connectionID
	c.mu.RUnlock()

	if retryCount > 0 && retryCount <= c.opts.MaxRetries {
		// mid-avoidance: drop silently, per §4.10 and the open
		// question in §9 preserving drop-on-retry for compatibility.
		c.logger.Debug("dropping send during leader-avoidance", logging.Field{Key: "retryCount", Value: retryCount})
		c.metrics.MessageDropped()
		return nil
	}

	switch state {
	case StateConnecting:
		env, err := frame.EncodeOutbound(data, sessionID, envelopeConnectionID(sessionID, connectionID), c.opts.Tag)
		if err != nil {
			return err
		}
		c.queue.Push(env)
		c.bufferedAmount.Add(int64(len(env)))
		c.metrics.MessageSent()
		return nil
	case StateOpen:
		env, err := frame.EncodeOutbound(data, sessionID, envelopeConnectionID(sessionID, connectionID), c.opts.Tag)
		if err != nil {
			return err
		}
		if err := c.sock.Send(env); err != nil {
			return err
		}
		c.metrics.MessageSent()
		return nil
	default:
		return ErrNotOpen
	}
}

// envelopeConnectionID implements §4.7's "c (ConnectionId or SessionId
// if unset)" rule for the outbound envelope.
func envelopeConnectionID(sessionID, connectionID string) string {
	if connectionID == "" {
		return sessionID
	}
	return connectionID
}

func (c *Client) doClose(code int, reason string) {
	c.closeCode = code
	c.closeReason = reason
	if c.sock != nil {
		_ = c.sock.Close()
		// the socket's own Disconnected() event completes the
		// transition to CLOSED in handleDisconnect.
		return
	}
	if c.dialCancel != nil {
		c.dialCancel()
		c.dialCancel = nil
	}
	if c.connectSpan != nil {
		c.connectSpan.SetStatus(codes.Error, "closed before dial completed")
		c.connectSpan.End()
		c.connectSpan = nil
	}
	c.setState(StateClosed)
	c.handlers.fireClose(code, reason)
	c.terminated = true
}

func (c *Client) handleFrame(raw []byte) {
	cl := frame.Classify(raw, c.opts.Tag)
	switch cl.Kind {
	case frame.KindElection:
		c.handleElection(cl.LeaderID)
	case frame.KindMessage:
		c.mu.RLock()
		handshakeDone := c.connectionID != ""
		c.mu.RUnlock()
		if !handshakeDone {
			c.logger.Debug("dropping application message received before handshake")
			return
		}
		c.metrics.MessageReceived()
		c.handlers.fireMessage(cl.Text)
	case frame.KindProtocol:
		c.handleProtocol(cl)
	case frame.KindParseError:
		c.logger.Debug("inbound parse error", logging.Field{Key: "raw", Value: string(cl.Raw)})
	}
}

func (c *Client) handleProtocol(cl frame.Classification) {
	if cl.ConnectionID == "" {
		return // nothing actionable; unknown keys are ignored per §6
	}

	c.mu.Lock()
	alreadyHandshook := c.connectionID != ""
	if alreadyHandshook {
		c.mu.Unlock()
		return
	}
	c.connectionID = cl.ConnectionID
	c.clientID = cl.ConnectionID
	retryWasNonzero := c.retryCount > 0
	c.retryCount = 0
	leaderID := c.leaderID
	c.mu.Unlock()

	c.metrics.Handshake()
	if retryWasNonzero {
		c.metrics.SetRetryCount(0)
	}

	c.handlers.fireOpen()
	if !c.setupCalled {
		c.setupCalled = true
		c.handlers.fireSetup(SetupInfo{
			ClientID: cl.ConnectionID,
			LeaderID: leaderID,
			IsLeader: leaderID != "" && leaderID == cl.ConnectionID,
		})
	}
}

func (c *Client) handleElection(newLeaderID string) {
	c.mu.Lock()
	clientID := c.clientID
	previousLeader := c.leaderID
	c.leaderID = newLeaderID
	c.mu.Unlock()

	eval := leader.Evaluate(clientID, newLeaderID, previousLeader)
	c.metrics.Election(eval.IAmLeader)

	if !eval.IAmLeader {
		if c.history != nil {
			c.mu.RLock()
			currentSessionID := c.sessionID
			c.mu.RUnlock()
			c.history.Record(history.RotationRecord{
				OldSessionID: currentSessionID,
				NewSessionID: currentSessionID,
				RetryCount:   c.retryCount,
				At:           time.Now(),
			})
		}
		return
	}

	c.mu.Lock()
	c.retryCount++
	retryCount := c.retryCount
	oldSessionID := c.sessionID
	c.connectionID = ""
	c.clientID = ""
	c.leaderID = ""
	c.mu.Unlock()
	c.metrics.SetRetryCount(retryCount)

	if c.sock != nil {
		_ = c.sock.Close()
		c.sock = nil
	}
	for range c.queue.Drain() {
		// discarded along with the rest of the torn-down connection
	}
	c.bufferedAmount.Store(0)

	if retryCount > c.opts.MaxRetries {
		c.setState(StateClosed)
		c.metrics.LeaderDisconnect()
		c.handlers.fireLeaderDisconnect(retryCount)
		c.terminated = true
		return
	}

	// Rotate the session now, not when the reconnect timer eventually
	// fires: anything queued by doSend during the backoff window must
	// already be stamped with the session the next connection will use,
	// and the history record below needs the new id to key on.
	newSessionID := session.GenerateID()
	c.mu.Lock()
	c.sessionID = newSessionID
	c.cookie = session.Cookie(newSessionID)
	c.mu.Unlock()
	c.setupCalled = false

	delay := leader.Backoff(retryCount, c.opts.RetryBaseDelay, c.opts.RetryMaxDelay)
	c.metrics.ReconnectDelaySeconds(delay.Seconds())
	if c.history != nil {
		c.history.Record(history.RotationRecord{
			OldSessionID: oldSessionID,
			NewSessionID: newSessionID,
			RetryCount:   retryCount,
			Delay:        delay,
			At:           time.Now(),
		})
	}
	c.setState(StateConnecting)
	c.pendingTimer = time.After(delay)
}

func (c *Client) handleDisconnect(ev socket.DisconnectEvent) {
	c.sock = nil
	if ev.Err != nil {
		c.handlers.fireError(ev.Err)
	}

	c.mu.Lock()
	wasClosing := c.state == StateClosing
	c.state = StateClosed
	c.connectionID = ""
	c.clientID = ""
	c.leaderID = ""
	c.mu.Unlock()
	c.metrics.SetState(int(StateClosed))

	if wasClosing {
		c.handlers.fireClose(c.closeCode, c.closeReason)
	} else {
		c.handlers.fireClose(0, fmt.Sprintf("socket closed: %v", ev.Reason))
	}
	c.terminated = true
}
