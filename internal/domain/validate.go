package domain

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const (
	minUsernameLen = 4
	minPasswordLen = 8
	passwordSymbol = "@#$%^&+=!"

	// ssoSeparator joins issuer and subject in SSO account names. Registered
	// usernames may not contain it.
	ssoSeparator = "|"
)

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9 ().-]+$`)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}

// ValidateUsername checks a registration username.
func ValidateUsername(username string) error {
	if username == "" {
		return invalid("username is required")
	}
	if len([]rune(username)) < minUsernameLen {
		return invalid("username must be at least %d characters", minUsernameLen)
	}
	if strings.Contains(username, ssoSeparator) {
		return invalid("username may not contain %q", ssoSeparator)
	}
	return nil
}

// SSOUsername names the account owned by an identity provider subject. The
// separator keeps it out of the registrable namespace.
func SSOUsername(issuer, subject string) string {
	return issuer + ssoSeparator + subject
}

// ValidatePassword checks a registration password: a minimum length plus at
// least one letter, one digit and one symbol.
func ValidatePassword(password string) error {
	if password == "" {
		return invalid("password is required")
	}
	if len([]rune(password)) < minPasswordLen {
		return invalid("password must be at least %d characters", minPasswordLen)
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !letter {
		return invalid("password must contain a letter")
	}
	if !digit {
		return invalid("password must contain a number")
	}
	if !strings.ContainsAny(password, passwordSymbol) {
		return invalid("password must contain one of %s", passwordSymbol)
	}
	return nil
}

// ValidateWeight checks a weight or goal value.
func ValidateWeight(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid("value must be a number")
	}
	if v <= 0 {
		return invalid("value must be > 0")
	}
	return nil
}

// ValidateDate checks the YYYY-MM-DD shape only; it does not reject
// impossible calendar dates.
func ValidateDate(date string) error {
	if date == "" {
		return invalid("date is required")
	}
	if !datePattern.MatchString(date) {
		return invalid("date must be YYYY-MM-DD")
	}
	return nil
}

// ValidatePhone checks a notification phone number.
func ValidatePhone(phone string) error {
	if phone == "" {
		return invalid("phone is required")
	}
	if !phonePattern.MatchString(phone) {
		return invalid("phone number is not valid")
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 7 || digits > 15 {
		return invalid("phone number is not valid")
	}
	return nil
}
