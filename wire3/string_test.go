package wire3

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
)

func TestEncodeStringBoundaryVectors(t *testing.T) {
	got := EncodeString("")
	if !bytes.Equal(got, []byte{0x00}) {
		t.Errorf("EncodeString(\"\") = % X, want [0x00]", got)
	}

	got = EncodeString("hello")
	if got[0] != 0x0A {
		t.Errorf("EncodeString(hello)[0] = %#x, want 0x0A", got[0])
	}
	if string(got[1:]) != "hello" {
		t.Errorf("EncodeString(hello) body = %q, want hello", got[1:])
	}

	got = EncodeString("日本語")
	if got[0] != 0x12 {
		t.Errorf("EncodeString(日本語)[0] = %#x, want 0x12", got[0])
	}
	if len(got)-1 != 9 {
		t.Errorf("EncodeString(日本語) body length = %d, want 9", len(got)-1)
	}
}

func TestStringRoundTrip(t *testing.T) {
	samples := []string{
		"", "a", "hello", "日本語", strings.Repeat("x", 300),
		"emoji 🎉🚀", "\x00\x01 control bytes",
	}
	for _, s := range samples {
		enc := EncodeString(s)
		got, read, err := DecodeString(enc)
		if err != nil {
			t.Fatalf("DecodeString(%q) error: %v", s, err)
		}
		if got != s {
			t.Errorf("DecodeString(EncodeString(%q)) = %q", s, got)
		}
		if read != len(enc) {
			t.Errorf("%q: bytesRead = %d, want %d", s, read, len(enc))
		}
	}
}

func TestStringEncodedLengthFormula(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	lengths := []int{0, 1, 107, 108, 300, 9431, 9432}
	for _, n := range lengths {
		body := make([]byte, n)
		for i := range body {
			body[i] = byte('a' + rng.Intn(26))
		}
		s := string(body)
		enc := EncodeString(s)
		prefixLen := len(EncodeVarint(int64(n)))
		if len(enc) != prefixLen+n {
			t.Errorf("len %d: encoded length %d, want %d", n, len(enc), prefixLen+n)
		}
	}
}

func TestDecodeStringTruncated(t *testing.T) {
	enc := EncodeString("hello")
	_, _, err := DecodeString(enc[:len(enc)-1])
	if err != ErrTruncated {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestConcatenatedStringStream(t *testing.T) {
	values := []string{"", "a", "hello world", "日本語", strings.Repeat("z", 500)}
	var buf []byte
	for _, v := range values {
		buf = append(buf, EncodeString(v)...)
	}
	for _, want := range values {
		got, read, err := DecodeString(buf)
		if err != nil {
			t.Fatalf("DecodeString error: %v", err)
		}
		if got != want {
			t.Errorf("stream decode got %q, want %q", got, want)
		}
		buf = buf[read:]
	}
	if len(buf) != 0 {
		t.Errorf("residual bytes after decoding string stream: %d", len(buf))
	}
}

func TestStringReencodeIdentical(t *testing.T) {
	samples := []string{"", "hi", "日本語", strings.Repeat("q", 1000)}
	for _, s := range samples {
		enc := EncodeString(s)
		decoded, _, err := DecodeString(enc)
		if err != nil {
			t.Fatalf("decode error: %v", err)
		}
		reenc := EncodeString(decoded)
		if !bytes.Equal(enc, reenc) {
			t.Errorf("re-encoding not identical for %q", s)
		}
	}
}
