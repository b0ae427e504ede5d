package client

import (
	"bytes"
	"testing"
)

func TestQueuePushAndDrainPreservesOrder(t *testing.T) {
	var q Queue
	q.Push([]byte("a"))
	q.Push([]byte("b"))
	q.Push([]byte("c"))

	if got := q.Len(); got != 3 {
		t.Fatalf("Len = %d, want 3", got)
	}

	drained := q.Drain()
	if len(drained) != 3 {
		t.Fatalf("Drain returned %d frames, want 3", len(drained))
	}
	for i, want := range []string{"a", "b", "c"} {
		if !bytes.Equal(drained[i], []byte(want)) {
			t.Errorf("drained[%d] = %q, want %q", i, drained[i], want)
		}
	}
}

func TestQueueDrainEmptiesIt(t *testing.T) {
	var q Queue
	q.Push([]byte("x"))
	q.Drain()

	if got := q.Len(); got != 0 {
		t.Fatalf("Len after Drain = %d, want 0", got)
	}
	if drained := q.Drain(); len(drained) != 0 {
		t.Fatalf("second Drain returned %d frames, want 0", len(drained))
	}
}

func TestQueueLenOnEmpty(t *testing.T) {
	var q Queue
	if got := q.Len(); got != 0 {
		t.Fatalf("Len = %d, want 0", got)
	}
}
