// Package validate implements request-shape validation with typed,
// field-level results. Handlers collect every violation into an
// Errors value and return it in one 400 response instead of failing
// on the first bad field; validation never touches the database.
package validate

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// FieldError reports a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors accumulates field errors for one request body.
type Errors []FieldError

// Add appends a violation.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// OK reports whether no violations were recorded.
func (e Errors) OK() bool { return len(e) == 0 }

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s looks like an email address.
func Email(s string) bool { return emailRE.MatchString(strings.TrimSpace(s)) }

// Username reports whether s is an acceptable login name.
func Username(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= 3 && len(s) <= 50
}

// Password enforces the credential policy: at least 8 characters
// containing both a letter and a digit.
func Password(s string) bool {
	if len(s) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

// Hours reports whether h is a legal timesheet value: between 0.5 and
// 24 inclusive, on a half-hour boundary.
func Hours(h float64) bool {
	if h < 0.5 || h > 24 {
		return false
	}
	scaled := h * 2
	return scaled == math.Trunc(scaled)
}

// Amount reports whether a monetary value is positive and has at most
// two decimal places.
func Amount(a float64) bool {
	if a <= 0 {
		return false
	}
	scaled := math.Round(a * 100)
	return math.Abs(a*100-scaled) < 1e-9
}

// Date parses a YYYY-MM-DD value.
func Date(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	return t, err == nil
}

// Month reports whether m is a calendar month number.
func Month(m int) bool { return m >= 1 && m <= 12 }

// Year bounds payroll years to a sane window.
func Year(y int) bool { return y >= 2000 && y <= 2100 }
