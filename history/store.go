// Package history keeps a short-lived, debug-only record of leader
// rotations for a connection. It is supplemental: nothing in the
// connection state machine or
// leader-avoidance loop ever reads it back — it exists purely so a
// caller can inspect recent rotation activity, e.g. from a debug
// endpoint or a CLI.
package history

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// RotationRecord describes one election frame: for a self-election, the
// session rotation and the reconnect it triggered; for an election of
// another client, a note with OldSessionID == NewSessionID and no Delay.
type RotationRecord struct {
	OldSessionID string
	NewSessionID string
	RetryCount   int
	Delay        time.Duration
	At           time.Time
}

// Store is a TTL-bounded, thread-safe log of RotationRecords, keyed by
// NewSessionID. Entries expire on their own — nothing needs to remember
// to prune them, which matters because a long-lived client with an
// exhausted retry budget should not accumulate rotation history
// forever.
type Store struct {
	cache *cache.Cache
}

// NewStore creates a Store whose entries expire after ttl and are swept
// every cleanupInterval.
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	return &Store{cache: cache.New(ttl, cleanupInterval)}
}

// Record stores r under its NewSessionID, replacing any earlier record
// with the same NewSessionID.
func (s *Store) Record(r RotationRecord) {
	s.cache.SetDefault(r.NewSessionID, r)
}

// Lookup returns the RotationRecord for sessionID, if it hasn't
// expired.
func (s *Store) Lookup(sessionID string) (RotationRecord, bool) {
	v, ok := s.cache.Get(sessionID)
	if !ok {
		return RotationRecord{}, false
	}
	return v.(RotationRecord), true
}

// Len returns the number of unexpired records currently held.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
