package wire3

import "testing"

// zigzag round-trips are exercised indirectly through TestVarintSignedRoundTrip
// in varint_test.go; these tests pin down the boundary values so a
// regression in the map itself fails close to the cause.

func TestZigzagEncodeBoundaries(t *testing.T) {
	cases := []struct {
		n    int64
		want uint64
	}{
		{0, 0},
		{1, 2},
		{-1, 1},
		{100, 200},
		{-100, 199},
		{107, 214},
		{108, 216},
	}
	for _, c := range cases {
		got := zigzagEncode(c.n)
		if got != c.want {
			t.Errorf("zigzagEncode(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestZigzagRoundTrip(t *testing.T) {
	// the documented safe round-trip range is [-2^52, 2^52]
	const bound = int64(1) << 52
	samples := []int64{0, 1, -1, 107, 108, -108, bound, -bound, bound - 1, -(bound - 1)}
	for _, n := range samples {
		u := zigzagEncode(n)
		got := zigzagDecode(u)
		if got != n {
			t.Errorf("zigzagDecode(zigzagEncode(%d)) = %d, want %d", n, got, n)
		}
	}
}

func TestZigzagOrderPreservingOnNonNegatives(t *testing.T) {
	prev := zigzagEncode(0)
	for n := int64(1); n < 10000; n++ {
		got := zigzagEncode(n)
		if got <= prev {
			t.Fatalf("zigzag not monotonic at n=%d: got %d after %d", n, got, prev)
		}
		prev = got
	}
}
