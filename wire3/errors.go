// Package wire3 implements the host's binary value codec: zigzag integer
// mapping, a range-partitioned variable-length unsigned integer encoding,
// length-prefixed UTF-8 strings, and the single-payload tagged message
// envelope real clients speak on the wire.
package wire3

import "errors"

// ErrNegativeInput is returned when EncodeUvarint is asked to encode a
// negative number. The unsigned varint form has no representation for
// negative values — callers wanting signed integers must go through
// EncodeVarint, which applies the zigzag map first.
var ErrNegativeInput = errors.New("wire3: negative input")

// ErrInvalidMarker is returned by DecodeString when a string's length
// prefix decodes to a negative value. DecodeUvarint never returns it:
// every first byte value selects one of the forms in the range table.
var ErrInvalidMarker = errors.New("wire3: invalid marker")

// ErrTruncated is returned when a buffer ends before the number of bytes
// the leading marker declares have been consumed.
var ErrTruncated = errors.New("wire3: truncated")
