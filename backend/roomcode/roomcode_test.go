package roomcode

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		code := Generate()
		if len(code) != Length {
			t.Fatalf("code %q has length %d, want %d", code, len(code), Length)
		}
		for _, r := range code {
			if !strings.ContainsRune(alphabet, r) {
				t.Fatalf("code %q contains %q outside alphabet", code, r)
			}
		}
		seen[code] = struct{}{}
	}
	// 1000 draws from 36^6 should essentially never collide down to a
	// handful of distinct values.
	if len(seen) < 990 {
		t.Fatalf("only %d distinct codes out of 1000", len(seen))
	}
}

func TestGenerateUniqueResamples(t *testing.T) {
	rejections := 0
	code, err := GenerateUnique(func(string) bool {
		if rejections < 5 {
			rejections++
			return false
		}
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejections != 5 {
		t.Fatalf("predicate rejected %d times, want 5", rejections)
	}
	if len(code) != Length {
		t.Fatalf("code %q has length %d, want %d", code, len(code), Length)
	}
}

func TestGenerateUniqueExhausted(t *testing.T) {
	_, err := GenerateUnique(func(string) bool { return false })
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("got %v, want ErrExhausted", err)
	}
}
