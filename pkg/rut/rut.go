// Package rut validates and formats Chilean RUT identifiers
// (Rol Único Tributario), e.g. "12.345.678-5".
package rut

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalid is returned when a RUT fails its check digit.
var ErrInvalid = errors.New("invalid rut")

const (
	minBody = 7
	maxBody = 8
)

var compact = strings.NewReplacer(".", "", "-", "")

// Clean strips everything but digits and the K check digit, uppercased.
func Clean(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == 'k' || r == 'K':
			sb.WriteByte('K')
		}
	}
	return sb.String()
}

// CheckDigit computes the modulo-11 check digit of a numeric RUT body.
// Multipliers cycle 2..7 from the rightmost digit; a result of 11 maps
// to "0" and 10 to "K".
func CheckDigit(body string) (string, bool) {
	if body == "" {
		return "", false
	}

	sum, mul := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return "", false
		}
		sum += int(c-'0') * mul
		if mul < 7 {
			mul++
		} else {
			mul = 2
		}
	}

	switch dv := 11 - sum%11; dv {
	case 11:
		return "0", true
	case 10:
		return "K", true
	default:
		return strconv.Itoa(dv), true
	}
}

// Validate reports whether s carries a correct check digit.
func Validate(s string) bool {
	c := Clean(s)
	if len(c) < 2 {
		return false
	}
	want, ok := CheckDigit(c[:len(c)-1])
	return ok && c[len(c)-1:] == want
}

// Parse accepts a RUT written with optional dots and dash, requiring a body
// of 7 or 8 digits and a correct check digit, and returns its canonical form.
// Unlike Validate it rejects any other characters.
func Parse(s string) (string, error) {
	c := strings.ToUpper(compact.Replace(strings.TrimSpace(s)))
	if len(c) < minBody+1 || len(c) > maxBody+1 {
		return "", ErrInvalid
	}

	want, ok := CheckDigit(c[:len(c)-1])
	if !ok || c[len(c)-1:] != want {
		return "", ErrInvalid
	}
	return Format(c), nil
}

// Check returns ErrInvalid unless s is a valid RUT.
func Check(s string) error {
	if !Validate(s) {
		return ErrInvalid
	}
	return nil
}

// Format renders s with thousands dots and a dash before the check digit.
// Input too short to carry a check digit is returned cleaned.
func Format(s string) string {
	c := Clean(s)
	if len(c) < 2 {
		return c
	}

	body, dv := c[:len(c)-1], c[len(c)-1:]

	var sb strings.Builder
	lead := len(body) % 3
	if lead > 0 {
		sb.WriteString(body[:lead])
	}
	for i := lead; i < len(body); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(body[i : i+3])
	}

	sb.WriteByte('-')
	sb.WriteString(dv)
	return sb.String()
}
