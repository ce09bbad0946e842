package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9][0-9 -]{6,14}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Password rejects empty credentials and anything past the 72-byte
// bcrypt input limit.
func Password(s string) bool {
	return len(s) >= 6 && len(s) <= 72
}

func Role(s string) (string, bool) {
	if s == "" {
		return "user", true
	}
	return s, s == "user" || s == "admin"
}

// ID parses a positive integer path or body identifier.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n > 0
}

// Qty parses a non-negative stock quantity.
func Qty(n int) bool { return n >= 0 }

// LineQty parses an order line quantity, which must be at least one.
func LineQty(n int) bool { return n >= 1 }

func Price(p float64) bool { return p >= 0 }
