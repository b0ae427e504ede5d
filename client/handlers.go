package client

// SetupInfo is the payload delivered to Handlers.OnSetup once per
// connection attempt, at the handshake.
type SetupInfo struct {
	ClientID string
	LeaderID string // empty means "not yet known"
	IsLeader bool
}

// Handlers is the capability set of callback slots a caller installs,
// replacing nullable function-field assignment with a struct of
// independently-nilable fields (§9's "polymorphic sinks" redesign
// hint). Every field may be left nil; firing a nil handler is always a
// safe no-op.
type Handlers struct {
	OnOpen             func()
	OnMessage          func(data string)
	OnClose            func(code int, reason string)
	OnError            func(err error)
	OnSetup            func(info SetupInfo)
	OnLeaderDisconnect func(retryCount int)
}

func (h Handlers) fireOpen() {
	if h.OnOpen != nil {
		h.OnOpen()
	}
}

func (h Handlers) fireMessage(data string) {
	if h.OnMessage != nil {
		h.OnMessage(data)
	}
}

func (h Handlers) fireClose(code int, reason string) {
	if h.OnClose != nil {
		h.OnClose(code, reason)
	}
}

func (h Handlers) fireError(err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}

func (h Handlers) fireSetup(info SetupInfo) {
	if h.OnSetup != nil {
		h.OnSetup(info)
	}
}

func (h Handlers) fireLeaderDisconnect(retryCount int) {
	if h.OnLeaderDisconnect != nil {
		h.OnLeaderDisconnect(retryCount)
	}
}
