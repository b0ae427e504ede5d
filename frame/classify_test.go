package frame

import (
	"encoding/base64"
	"testing"

	"github.com/risa-org/hostsock/wire3"
)

func encodedB64(payload string, tag byte) string {
	return base64.StdEncoding.EncodeToString(wire3.EncodeMessage(payload, tag))
}

func TestClassifyElection(t *testing.T) {
	raw := []byte(`{"t":"e","l":"client-42"}`)
	got := Classify(raw, 0)
	if got.Kind != KindElection {
		t.Fatalf("Kind = %v, want KindElection", got.Kind)
	}
	if got.LeaderID != "client-42" {
		t.Errorf("LeaderID = %q, want %q", got.LeaderID, "client-42")
	}
}

func TestClassifyElectionWithoutLeaderID(t *testing.T) {
	raw := []byte(`{"t":"e"}`)
	got := Classify(raw, 0)
	if got.Kind != KindElection {
		t.Fatalf("Kind = %v, want KindElection", got.Kind)
	}
	if got.LeaderID != "" {
		t.Errorf("LeaderID = %q, want empty", got.LeaderID)
	}
}

func TestClassifyMessage(t *testing.T) {
	b64 := encodedB64("payload-text", 5)
	raw := []byte(`{"s":"sess-1","c":"conn-1","b":"` + b64 + `"}`)
	got := Classify(raw, 5)
	if got.Kind != KindMessage {
		t.Fatalf("Kind = %v, want KindMessage", got.Kind)
	}
	if got.Text != "payload-text" {
		t.Errorf("Text = %q, want %q", got.Text, "payload-text")
	}
	if got.SessionID != "sess-1" || got.ConnectionID != "conn-1" {
		t.Errorf("SessionID/ConnectionID = %q/%q", got.SessionID, got.ConnectionID)
	}
}

func TestClassifyMessageTagMismatchFallsBackToProtocol(t *testing.T) {
	b64 := encodedB64("payload-text", 5)
	raw := []byte(`{"s":"sess-1","c":"conn-1","b":"` + b64 + `"}`)
	got := Classify(raw, 9) // expecting a different tag than was encoded
	if got.Kind != KindProtocol {
		t.Fatalf("Kind = %v, want KindProtocol", got.Kind)
	}
	if got.SessionID != "sess-1" || got.ConnectionID != "conn-1" {
		t.Errorf("SessionID/ConnectionID = %q/%q", got.SessionID, got.ConnectionID)
	}
}

func TestClassifyInvalidBase64FallsBackToProtocol(t *testing.T) {
	raw := []byte(`{"s":"sess-1","c":"conn-1","b":"not-valid-base64!!"}`)
	got := Classify(raw, 0)
	if got.Kind != KindProtocol {
		t.Fatalf("Kind = %v, want KindProtocol", got.Kind)
	}
}

func TestClassifyProtocolWithoutB(t *testing.T) {
	raw := []byte(`{"t":"someOtherType","s":"sess-1","c":"conn-1"}`)
	got := Classify(raw, 0)
	if got.Kind != KindProtocol {
		t.Fatalf("Kind = %v, want KindProtocol", got.Kind)
	}
	if got.SessionID != "sess-1" || got.ConnectionID != "conn-1" {
		t.Errorf("SessionID/ConnectionID = %q/%q", got.SessionID, got.ConnectionID)
	}
	if string(got.Raw) != string(raw) {
		t.Errorf("Raw = %s, want %s", got.Raw, raw)
	}
}

func TestClassifyParseError(t *testing.T) {
	raw := []byte(`not json at all`)
	got := Classify(raw, 0)
	if got.Kind != KindParseError {
		t.Fatalf("Kind = %v, want KindParseError", got.Kind)
	}
	if string(got.Raw) != string(raw) {
		t.Errorf("Raw = %s, want %s", got.Raw, raw)
	}
}

func TestClassifyEmptyObjectIsProtocol(t *testing.T) {
	raw := []byte(`{}`)
	got := Classify(raw, 0)
	if got.Kind != KindProtocol {
		t.Fatalf("Kind = %v, want KindProtocol", got.Kind)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindParseError: "parse-error",
		KindElection:   "election",
		KindMessage:    "message",
		KindProtocol:   "protocol",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
