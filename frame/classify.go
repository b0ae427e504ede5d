package frame

import (
	"encoding/base64"
	"encoding/json"

	"github.com/risa-org/hostsock/wire3"
)

// Kind identifies which of the four shapes an inbound frame classified
// as. Go has no sum type, so the variant's payload fields
// live together on Classification and only the ones relevant to Kind
// are populated.
type Kind int

const (
	KindParseError Kind = iota
	KindElection
	KindMessage
	KindProtocol
)

func (k Kind) String() string {
	switch k {
	case KindParseError:
		return "parse-error"
	case KindElection:
		return "election"
	case KindMessage:
		return "message"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Classification is the result of classifying one inbound text frame.
// Only the fields relevant to Kind are meaningful.
type Classification struct {
	Kind Kind

	LeaderID string // KindElection

	Text string // KindMessage: the decoded application payload

	SessionID    string // KindMessage, KindProtocol
	ConnectionID string // KindMessage, KindProtocol

	Raw json.RawMessage // KindParseError: the raw bytes that failed to parse; KindProtocol: the parsed frame, for handshake inspection
}

// inboundFrame is the wire shape of a received frame. Pointer fields let
// Classify tell "key absent" apart from "key present with an empty
// string" — §4.7 only checks presence of "t"=="e" and presence of "b",
// never emptiness.
type inboundFrame struct {
	T *string `json:"t"`
	L *string `json:"l"`
	B *string `json:"b"`
	S *string `json:"s"`
	C *string `json:"c"`
}

// Classify turns one inbound text frame into a Classification. It never
// returns an error — every failure mode (malformed JSON, malformed
// base64, a message whose tag doesn't match expectedTag) is reified as a
// Classification value instead, per §4.7's "the classifier never
// throws."
func Classify(raw []byte, expectedTag byte) Classification {
	var in inboundFrame
	if err := json.Unmarshal(raw, &in); err != nil {
		return Classification{Kind: KindParseError, Raw: raw}
	}

	if in.T != nil && *in.T == "e" {
		return Classification{Kind: KindElection, LeaderID: deref(in.L)}
	}

	if in.B != nil {
		if decoded, ok := decodeMessageField(*in.B, expectedTag); ok {
			return Classification{
				Kind:         KindMessage,
				Text:         decoded,
				SessionID:    deref(in.S),
				ConnectionID: deref(in.C),
			}
		}
		// base64 or message-codec mismatch: fall through to protocol,
		// same as "b" being absent entirely (§4.7 step 4).
	}

	return Classification{
		Kind:         KindProtocol,
		SessionID:    deref(in.S),
		ConnectionID: deref(in.C),
		Raw:          json.RawMessage(raw),
	}
}

func decodeMessageField(b64 string, expectedTag byte) (string, bool) {
	decoded, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", false
	}
	return wire3.DecodeMessage(decoded, expectedTag)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
