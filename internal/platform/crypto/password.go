package crypto

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// IsBcryptHash reports whether s is a well-formed bcrypt hash.
func IsBcryptHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

var (
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
	ErrPasswordNoUpper       = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLower       = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoNumber      = errors.New("password must contain at least one number")
	ErrPasswordNoSpecialChar = errors.New("password must contain at least one special character")
)

var strengthRules = []struct {
	re  *regexp.Regexp
	err error
}{
	{regexp.MustCompile(`[A-Z]`), ErrPasswordNoUpper},
	{regexp.MustCompile(`[a-z]`), ErrPasswordNoLower},
	{regexp.MustCompile(`[0-9]`), ErrPasswordNoNumber},
	{regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`), ErrPasswordNoSpecialChar},
}

// ValidatePasswordStrength joins every rule a password breaks; test with errors.Is.
// The API only warns about weak configured credentials; it never rejects them.
func ValidatePasswordStrength(password string) error {
	var errs []error
	if len(password) < 8 {
		errs = append(errs, ErrPasswordTooShort)
	}
	for _, rule := range strengthRules {
		if !rule.re.MatchString(password) {
			errs = append(errs, rule.err)
		}
	}
	return errors.Join(errs...)
}
