package crypto

import (
	"errors"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if hash == "admin123" {
		t.Error("Expected hash to differ from plain password")
	}
	if !VerifyPassword(hash, "admin123") {
		t.Error("Expected correct password to verify")
	}
	if VerifyPassword(hash, "admin124") {
		t.Error("Expected wrong password to fail")
	}
	if VerifyPassword("not-a-bcrypt-hash", "admin123") {
		t.Error("Expected malformed hash to fail")
	}
}

func TestIsBcryptHash(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !IsBcryptHash(hash) {
		t.Error("Expected generated hash to be recognized")
	}
	for _, s := range []string{"", "admin123", "$2a$10$short"} {
		if IsBcryptHash(s) {
			t.Errorf("Expected %q not to be a bcrypt hash", s)
		}
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	cases := map[string][]error{
		"Test123!@#":  nil,
		"Str0ng#Pass": nil,
		"Test1!":      {ErrPasswordTooShort},
		"test123!@#":  {ErrPasswordNoUpper},
		"TEST123!@#":  {ErrPasswordNoLower},
		"TestPass!@#": {ErrPasswordNoNumber},
		"TestPass123": {ErrPasswordNoSpecialChar},
		"admin123":    {ErrPasswordNoUpper, ErrPasswordNoSpecialChar},
		"abc":         {ErrPasswordTooShort, ErrPasswordNoUpper, ErrPasswordNoNumber, ErrPasswordNoSpecialChar},
	}
	for password, want := range cases {
		err := ValidatePasswordStrength(password)
		if want == nil {
			if err != nil {
				t.Errorf("ValidatePasswordStrength(%q) = %v, want nil", password, err)
			}
			continue
		}
		for _, w := range want {
			if !errors.Is(err, w) {
				t.Errorf("ValidatePasswordStrength(%q) = %v, want it to include %v", password, err, w)
			}
		}
		if n := len(err.(interface{ Unwrap() []error }).Unwrap()); n != len(want) {
			t.Errorf("ValidatePasswordStrength(%q) broke %d rules, want %d", password, n, len(want))
		}
	}
}
