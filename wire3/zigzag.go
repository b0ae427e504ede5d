package wire3

// zigzagEncode maps a signed 64-bit integer to an unsigned one so that
// small-magnitude negatives stay small on the wire instead of inflating
// into the high end of the uint64 range. Non-negative n maps to 2n;
// negative n maps to -2n-1. The shift form (n<<1)^(n>>63) is equivalent
// for the full int64 range, but the host's own implementation works in
// double-precision floats, so round-tripping is only guaranteed for
// |n| <= 2^52 (see zigzagDecode and the varint boundary this package
// implements).
func zigzagEncode(n int64) uint64 {
	if n >= 0 {
		return uint64(n) * 2
	}
	return uint64(-n)*2 - 1
}

// zigzagDecode reverses zigzagEncode: odd u came from a negative n, even u
// came from a non-negative n.
func zigzagDecode(u uint64) int64 {
	if u%2 == 0 {
		return int64(u / 2)
	}
	return -int64((u + 1) / 2)
}
