package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRecordAndLookup(t *testing.T) {
	s := NewStore(time.Minute, time.Minute)
	rec := RotationRecord{
		OldSessionID: "old-1",
		NewSessionID: "new-1",
		RetryCount:   1,
		Delay:        2 * time.Second,
		At:           time.Unix(0, 0),
	}
	s.Record(rec)

	got, ok := s.Lookup("new-1")
	require.True(t, ok, "expected record to be present")
	assert.Equal(t, rec, got)
}

func TestStoreLookupMissing(t *testing.T) {
	s := NewStore(time.Minute, time.Minute)
	_, ok := s.Lookup("nope")
	assert.False(t, ok, "expected ok=false for missing key")
}

func TestStoreLen(t *testing.T) {
	s := NewStore(time.Minute, time.Minute)
	require.Equal(t, 0, s.Len())

	s.Record(RotationRecord{NewSessionID: "a"})
	s.Record(RotationRecord{NewSessionID: "b"})
	assert.Equal(t, 2, s.Len())
}

func TestStoreEntriesExpire(t *testing.T) {
	s := NewStore(20*time.Millisecond, 10*time.Millisecond)
	s.Record(RotationRecord{NewSessionID: "short-lived"})

	_, ok := s.Lookup("short-lived")
	require.True(t, ok, "expected record to be present immediately after recording")

	time.Sleep(100 * time.Millisecond)
	_, ok = s.Lookup("short-lived")
	assert.False(t, ok, "expected record to have expired")
}
