package util

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 128
	maxNameLength     = 100
	maxPhoneLength    = 20
	maxDiseaseLength  = 100
	maxCommentsLength = 2000
)

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks a bare address such as "a@b.co".
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if n > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	}
	return nil
}

// ValidateName accepts an empty name; names are optional at signup.
func ValidateName(field, name string) error {
	if utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("%s too long, max %d characters", field, maxNameLength)
	}
	return nil
}

func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if len(phone) > maxPhoneLength {
		return fmt.Errorf("phone too long, max %d characters", maxPhoneLength)
	}
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9', r == ' ', r == '-':
		case r == '+' && i == 0:
		default:
			return fmt.Errorf("phone may only contain digits, spaces, dashes and a leading +")
		}
	}
	return nil
}

// ValidateFeedback checks the free-text parts of a feedback submission.
func ValidateFeedback(disease, comments, email string) error {
	if disease == "" {
		return fmt.Errorf("disease is required")
	}
	if utf8.RuneCountInString(disease) > maxDiseaseLength {
		return fmt.Errorf("disease too long, max %d characters", maxDiseaseLength)
	}
	if utf8.RuneCountInString(comments) > maxCommentsLength {
		return fmt.Errorf("comments too long, max %d characters", maxCommentsLength)
	}
	if email != "" {
		if err := ValidateEmail(email); err != nil {
			return err
		}
	}
	return nil
}
