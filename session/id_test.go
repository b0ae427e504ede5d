package session

import (
	"strconv"
	"strings"
	"testing"
)

func TestGenerateIDLength(t *testing.T) {
	id := GenerateID()
	if len(id) != idLength {
		t.Fatalf("GenerateID() length = %d, want %d", len(id), idLength)
	}
}

func TestGenerateIDLayout(t *testing.T) {
	id := GenerateID()

	// find the longest all-digit prefix
	i := 0
	for i < len(id) && id[i] >= '0' && id[i] <= '9' {
		i++
	}
	if i < 5 || i > 6 {
		t.Fatalf("GenerateID() digit prefix length = %d, want 5 or 6", i)
	}

	n, err := strconv.Atoi(id[:i])
	if err != nil {
		t.Fatalf("digit prefix %q did not parse as an integer: %v", id[:i], err)
	}
	if n < 10000 || n >= 1000000 {
		t.Errorf("numeric prefix %d out of range [10000, 1000000)", n)
	}

	if !strings.HasPrefix(seed, id[i:]) {
		t.Errorf("tail %q is not a prefix of the fixed seed %q", id[i:], seed)
	}
}

func TestGenerateIDCharset(t *testing.T) {
	for i := 0; i < 200; i++ {
		id := GenerateID()
		for _, r := range id {
			if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
				t.Fatalf("GenerateID() contains out-of-charset rune %q in %q", r, id)
			}
		}
	}
}

func TestGenerateIDsAreDistinct(t *testing.T) {
	const draws = 10000
	seen := make(map[string]struct{}, draws)
	collisions := 0
	for i := 0; i < draws; i++ {
		id := GenerateID()
		if _, ok := seen[id]; ok {
			collisions++
		}
		seen[id] = struct{}{}
	}
	// birthday-bound expectation over ~990,000 buckets at 10,000 draws is
	// well under 100 collisions; this is a sanity bound, not an exact model
	if collisions > 100 {
		t.Errorf("unexpectedly many collisions across %d draws: %d", draws, collisions)
	}
}
