// Package metrics exposes the adapter's Prometheus instrumentation. A
// *Metrics is optional everywhere it's threaded through — a nil
// receiver on every method here is a documented no-op, so call sites
// never need a nil check of their own.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the counters and gauges the connection lifecycle and
// leader-avoidance loop update. Registering with a caller-supplied
// registerer (rather than the global DefaultRegisterer) keeps this
// package safe to instantiate more than once in a process, e.g. one
// instance per connected client in a test.
type Metrics struct {
	connectAttempts   prometheus.Counter
	handshakes        prometheus.Counter
	elections         prometheus.Counter
	selfElections     prometheus.Counter
	leaderDisconnects prometheus.Counter
	reconnectDelay    prometheus.Histogram
	retryCount        prometheus.Gauge
	state             prometheus.Gauge
	messagesSent      prometheus.Counter
	messagesDropped   prometheus.Counter
	messagesReceived  prometheus.Counter
}

// New creates a Metrics and registers its collectors with reg. Pass
// prometheus.NewRegistry() in tests to avoid collisions with other
// instances registered in the same process.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		connectAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hostsock_connect_attempts_total",
			Help: "Number of times the adapter attempted to open the underlying WebSocket.",
		}),
		handshakes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hostsock_handshakes_total",
			Help: "Number of completed application-level handshakes (connectionId observed).",
		}),
		elections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hostsock_elections_total",
			Help: "Number of election frames observed.",
		}),
		selfElections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hostsock_self_elections_total",
			Help: "Number of election frames that elected this client as leader.",
		}),
		leaderDisconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hostsock_leader_disconnects_total",
			Help: "Number of times leader-avoidance exhausted its retry budget.",
		}),
		reconnectDelay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hostsock_reconnect_delay_seconds",
			Help:    "Scheduled reconnect backoff delay, in seconds, per self-election.",
			Buckets: prometheus.DefBuckets,
		}),
		retryCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hostsock_retry_count",
			Help: "Current leader-avoidance retry counter.",
		}),
		state: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hostsock_connection_state",
			Help: "Current connection state (0=CONNECTING, 1=OPEN, 2=CLOSING, 3=CLOSED).",
		}),
		messagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hostsock_messages_sent_total",
			Help: "Number of application messages accepted by Send for delivery (sent at once, or queued while connecting).",
		}),
		messagesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hostsock_messages_dropped_total",
			Help: "Number of Send calls silently dropped while leader-avoidance is in progress.",
		}),
		messagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hostsock_messages_received_total",
			Help: "Number of application messages delivered to OnMessage.",
		}),
	}
	reg.MustRegister(
		m.connectAttempts,
		m.handshakes,
		m.elections,
		m.selfElections,
		m.leaderDisconnects,
		m.reconnectDelay,
		m.retryCount,
		m.state,
		m.messagesSent,
		m.messagesDropped,
		m.messagesReceived,
	)
	return m
}

func (m *Metrics) ConnectAttempt() {
	if m == nil {
		return
	}
	m.connectAttempts.Inc()
}

func (m *Metrics) Handshake() {
	if m == nil {
		return
	}
	m.handshakes.Inc()
}

func (m *Metrics) Election(selfElected bool) {
	if m == nil {
		return
	}
	m.elections.Inc()
	if selfElected {
		m.selfElections.Inc()
	}
}

func (m *Metrics) LeaderDisconnect() {
	if m == nil {
		return
	}
	m.leaderDisconnects.Inc()
}

func (m *Metrics) ReconnectDelaySeconds(seconds float64) {
	if m == nil {
		return
	}
	m.reconnectDelay.Observe(seconds)
}

func (m *Metrics) SetRetryCount(n int) {
	if m == nil {
		return
	}
	m.retryCount.Set(float64(n))
}

func (m *Metrics) SetState(state int) {
	if m == nil {
		return
	}
	m.state.Set(float64(state))
}

func (m *Metrics) MessageSent() {
	if m == nil {
		return
	}
	m.messagesSent.Inc()
}

func (m *Metrics) MessageDropped() {
	if m == nil {
		return
	}
	m.messagesDropped.Inc()
}

func (m *Metrics) MessageReceived() {
	if m == nil {
		return
	}
	m.messagesReceived.Inc()
}
