package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	for _, scheme := range []string{SchemeArgon2id, SchemeBcrypt, SchemePBKDF2} {
		t.Run(scheme, func(t *testing.T) {
			h, err := NewHasher(scheme)
			if err != nil {
				t.Fatalf("NewHasher(%q): %v", scheme, err)
			}
			digest, err := h.Hash("Secret123")
			if err != nil {
				t.Fatalf("hash error: %v", err)
			}
			if !h.Verify("Secret123", digest) {
				t.Fatalf("expected password to match")
			}
			if h.Verify("wrong", digest) {
				t.Fatalf("expected password mismatch")
			}

			again, _ := h.Hash("Secret123")
			if again == digest {
				t.Fatalf("expected a fresh salt per hash")
			}
		})
	}
}

func TestDefaultSchemeIsArgon2id(t *testing.T) {
	h, err := NewHasher("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	digest, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if !strings.HasPrefix(digest, "$argon2id$v=19$") {
		t.Fatalf("unexpected digest format: %s", digest)
	}
}

func TestVerifyAcrossSchemes(t *testing.T) {
	bc, _ := NewHasher(SchemeBcrypt)
	legacy, err := bc.Hash("hunter22")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	argon, _ := NewHasher(SchemeArgon2id)
	if !argon.Verify("hunter22", legacy) {
		t.Fatalf("argon2id hasher should still verify bcrypt digests")
	}
}

func TestUnknownSchemeUnavailable(t *testing.T) {
	_, err := NewHasher("md5")
	if !errors.Is(err, ErrSchemeUnavailable) {
		t.Fatalf("expected ErrSchemeUnavailable, got %v", err)
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	h, _ := NewHasher("")
	cases := []string{
		"",
		"invalid-format",
		"$argon2id$v=19$m=65536,t=1,p=4$notbase64!$xx",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$pbkdf2-sha256$i=0$c2FsdA$aGFzaA",
	}
	for _, digest := range cases {
		if h.Verify("pw", digest) {
			t.Errorf("Verify(%q) = true, want false", digest)
		}
	}
	if h.Verify("", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA") {
		t.Errorf("empty password must not verify")
	}
}

func TestHashEmptyPassword(t *testing.T) {
	h, _ := NewHasher("")
	if _, err := h.Hash(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}
