// Package validation collects field-level request errors so a handler can
// report every violated field at once.
package validation

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AnshRaj112/devconnect-backend/internal/models"
)

const bodyLocation = "body"

// Checker accumulates field errors. The zero value is ready to use.
type Checker struct {
	fields []models.FieldError
}

func (c *Checker) Add(param, msg string) {
	c.fields = append(c.fields, models.FieldError{Msg: msg, Param: param, Location: bodyLocation})
}

// Required fails when value is empty after trimming.
func (c *Checker) Required(param, value, msg string) bool {
	if strings.TrimSpace(value) == "" {
		c.Add(param, msg)
		return false
	}
	return true
}

// MinLength counts runes, not bytes.
func (c *Checker) MinLength(param, value string, n int, msg string) bool {
	if utf8.RuneCountInString(value) < n {
		c.Add(param, msg)
		return false
	}
	return true
}

// MaxBytes counts bytes, matching limits imposed by byte-oriented consumers.
func (c *Checker) MaxBytes(param, value string, n int, msg string) bool {
	if len(value) > n {
		c.Add(param, msg)
		return false
	}
	return true
}

func (c *Checker) Email(param, value, msg string) bool {
	if !IsEmail(value) {
		c.Add(param, msg)
		return false
	}
	return true
}

// Date parses a required date. Both 2006-01-02 and RFC 3339 are accepted.
func (c *Checker) Date(param, value, requiredMsg string) time.Time {
	if !c.Required(param, value, requiredMsg) {
		return time.Time{}
	}
	t, ok := ParseDate(value)
	if !ok {
		c.Add(param, param+" must be a valid date")
	}
	return t
}

// OptionalDate parses value when present.
func (c *Checker) OptionalDate(param, value string) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	t, ok := ParseDate(value)
	if !ok {
		c.Add(param, param+" must be a valid date")
		return nil
	}
	return &t
}

// Err returns a validation AppError listing every collected field, or nil.
func (c *Checker) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return models.NewValidationError(c.fields...)
}

// IsEmail accepts a bare address with a dotted domain, e.g. a@x.com.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
