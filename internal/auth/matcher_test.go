package auth

import (
	"strings"
	"testing"
)

func TestPlainMatcher(t *testing.T) {
	m := PlainMatcher{}

	encoded, err := m.Encode("1234")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if encoded != "1234" {
		t.Errorf("Encode = %q, want identity", encoded)
	}
	if !m.Match("1234", encoded) {
		t.Error("exact secret rejected")
	}
	if m.Match("1235", encoded) {
		t.Error("wrong secret accepted")
	}
}

func TestBcryptMatcher(t *testing.T) {
	m := BcryptMatcher{}

	encoded, err := m.Encode("s3cret")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasPrefix(encoded, "$2") {
		t.Errorf("Encode = %q, want a bcrypt hash", encoded)
	}
	if encoded == "s3cret" {
		t.Error("secret stored in the clear")
	}
	if !m.Match("s3cret", encoded) {
		t.Error("correct secret rejected")
	}
	if m.Match("wrong", encoded) {
		t.Error("wrong secret accepted")
	}
}

func TestBcryptEncodingsDiffer(t *testing.T) {
	m := BcryptMatcher{}
	a, err := m.Encode("same")
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.Encode("same")
	if err != nil {
		t.Fatal(err)
	}
	// Salted: two encodings of the same secret never collide.
	if a == b {
		t.Error("identical hashes for two Encode calls")
	}
}
