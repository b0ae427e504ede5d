package wire3

import (
	"encoding/binary"
	"math"
)

// Range boundaries from the wire format's byte-range table. Named so the
// encoder and decoder agree on the same literals instead of repeating
// magic numbers in two places.
const (
	oneByteMax      = 215
	twoByteMin      = 216
	twoByteMarkerMax = 251
	twoByteMax      = 9431
	threeByteMarker = 252
	fourByteMarker  = 253
	fiveByteMarker  = 254
	floatMarker     = 255

	threeByteMax = 1<<16 - 1 // 65535
	fourByteMax  = 1<<24 - 1
	fiveByteMax  = 1<<32 - 1

	// maxExactInt is the largest integer a float64 can represent without
	// loss of precision (2^53). Encoding a value above this bound in the
	// 9-byte float64 form is a documented precondition violation, not a
	// runtime-checked one.
	maxExactInt = 1 << 53
)

// EncodeUvarint encodes a non-negative integer using the range-partitioned
// form: the smallest of the six layouts that can represent n, with the
// lexicographically smallest leading byte within that layout (this
// encoder never produces anything but the canonical form). Returns
// ErrNegativeInput if n is negative.
func EncodeUvarint(n int64) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeInput
	}
	return encodeUvarintValue(uint64(n)), nil
}

func encodeUvarintValue(n uint64) []byte {
	switch {
	case n <= oneByteMax:
		return []byte{byte(n)}

	case n <= twoByteMax:
		offset := n - twoByteMin
		return []byte{byte(twoByteMin + offset/256), byte(offset % 256)}

	case n <= threeByteMax:
		buf := make([]byte, 3)
		buf[0] = threeByteMarker
		binary.BigEndian.PutUint16(buf[1:], uint16(n))
		return buf

	case n <= fourByteMax:
		buf := make([]byte, 4)
		buf[0] = fourByteMarker
		buf[1] = byte(n >> 16)
		buf[2] = byte(n >> 8)
		buf[3] = byte(n)
		return buf

	case n <= fiveByteMax:
		buf := make([]byte, 5)
		buf[0] = fiveByteMarker
		binary.BigEndian.PutUint32(buf[1:], uint32(n))
		return buf

	default:
		buf := make([]byte, 9)
		buf[0] = floatMarker
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(float64(n)))
		return buf
	}
}

// DecodeUvarint reads one encoded unsigned integer from the front of buf
// and returns its value, the number of bytes consumed, and an error. The
// first byte alone determines the layout (and therefore bytesRead).
// Every byte value 0-255 selects one of the six layouts, so the
// ErrInvalidMarker branch is never reached.
func DecodeUvarint(buf []byte) (uint64, int, error) {
	if len(buf) < 1 {
		return 0, 0, ErrTruncated
	}
	b0 := buf[0]

	switch {
	case b0 <= oneByteMax:
		return uint64(b0), 1, nil

	case b0 >= twoByteMin && b0 <= twoByteMarkerMax:
		// b0 in [216, 251]
		if len(buf) < 2 {
			return 0, 0, ErrTruncated
		}
		return uint64(twoByteMin) + uint64(b0-twoByteMin)*256 + uint64(buf[1]), 2, nil

	case b0 == threeByteMarker:
		if len(buf) < 3 {
			return 0, 0, ErrTruncated
		}
		return uint64(binary.BigEndian.Uint16(buf[1:3])), 3, nil

	case b0 == fourByteMarker:
		if len(buf) < 4 {
			return 0, 0, ErrTruncated
		}
		v := uint64(buf[1])<<16 | uint64(buf[2])<<8 | uint64(buf[3])
		return v, 4, nil

	case b0 == fiveByteMarker:
		if len(buf) < 5 {
			return 0, 0, ErrTruncated
		}
		return uint64(binary.BigEndian.Uint32(buf[1:5])), 5, nil

	case b0 == floatMarker:
		if len(buf) < 9 {
			return 0, 0, ErrTruncated
		}
		f := math.Float64frombits(binary.LittleEndian.Uint64(buf[1:9]))
		return uint64(math.Floor(f)), 9, nil

	default:
		return 0, 0, ErrInvalidMarker
	}
}

// EncodeVarint encodes a signed integer by applying the zigzag map and
// then the unsigned varint encoding. Every int64 is accepted — the
// zigzag map never produces a value this package's encoder rejects — but
// a value whose zigzag image exceeds 2^53 may lose precision in the
// 9-byte float64 form.
func EncodeVarint(n int64) []byte {
	return encodeUvarintValue(zigzagEncode(n))
}

// DecodeVarint reverses EncodeVarint: decode the unsigned varint, then
// undo the zigzag map.
func DecodeVarint(buf []byte) (int64, int, error) {
	u, read, err := DecodeUvarint(buf)
	if err != nil {
		return 0, 0, err
	}
	return zigzagDecode(u), read, nil
}
