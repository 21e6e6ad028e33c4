package util

import (
	"strings"
	"testing"
)

func TestValidateEmail_Valid(t *testing.T) {
	testCases := []string{"demo@skindx.local", "a.b+c@example.com", "x@y.co"}

	for _, email := range testCases {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) error = %v, want nil", email, err)
		}
	}
}

func TestValidateEmail_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@localhost",
		"Name <user@example.com>",
	}

	for _, email := range testCases {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) error = nil, want error", email)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Demo@SkinDx.Local "); got != "demo@skindx.local" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("12345"); err == nil {
		t.Error("ValidatePassword(short) error = nil, want error")
	}
	if err := ValidatePassword("demo1234"); err != nil {
		t.Errorf("ValidatePassword(demo1234) error = %v, want nil", err)
	}
	if err := ValidatePassword(strings.Repeat("x", MaxPasswordLength+1)); err == nil {
		t.Error("ValidatePassword(long) error = nil, want error")
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"", "+91 90000 12345", "020-1234-5678"}
	for _, p := range valid {
		if err := ValidatePhone(p); err != nil {
			t.Errorf("ValidatePhone(%q) error = %v, want nil", p, err)
		}
	}
	invalid := []string{"12+34", "call me", strings.Repeat("1", 21)}
	for _, p := range invalid {
		if err := ValidatePhone(p); err == nil {
			t.Errorf("ValidatePhone(%q) error = nil, want error", p)
		}
	}
}

func TestValidateName_TooLong(t *testing.T) {
	if err := ValidateName("first name", strings.Repeat("a", 101)); err == nil {
		t.Error("ValidateName() with long string error = nil, want error")
	}
	if err := ValidateName("first name", ""); err != nil {
		t.Errorf("ValidateName(empty) error = %v, want nil", err)
	}
}

func TestValidateFeedback(t *testing.T) {
	if err := ValidateFeedback("Acne", "", ""); err != nil {
		t.Errorf("ValidateFeedback(minimal) error = %v, want nil", err)
	}
	if err := ValidateFeedback("", "", ""); err == nil {
		t.Error("ValidateFeedback(no disease) error = nil, want error")
	}
	if err := ValidateFeedback("Acne", "", "not-an-email"); err == nil {
		t.Error("ValidateFeedback(bad email) error = nil, want error")
	}
}
