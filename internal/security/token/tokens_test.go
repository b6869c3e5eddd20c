package tokens

import (
	"encoding/base64"
	"regexp"
	"testing"
)

var alnumRE = regexp.MustCompile(`^[A-Za-z0-9]+$`)

func TestGenerateAlphanumeric_LengthAndCharset(t *testing.T) {
	for _, n := range []int{1, 16, 32, 64} {
		s, err := GenerateAlphanumeric(n)
		if err != nil {
			t.Fatalf("generate %d: %v", n, err)
		}
		if len(s) != n {
			t.Fatalf("expected len %d, got %d", n, len(s))
		}
		if !alnumRE.MatchString(s) {
			t.Fatalf("non alphanumeric output: %q", s)
		}
	}
}

func TestGenerateAlphanumeric_RejectsNonPositive(t *testing.T) {
	if _, err := GenerateAlphanumeric(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}

func TestGenerateOpaqueToken_DecodesToRequestedBytes(t *testing.T) {
	tok, err := GenerateOpaqueToken(32)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(raw) != 32 {
		t.Fatalf("expected 32 bytes, got %d", len(raw))
	}
}
