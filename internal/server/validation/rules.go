// Package validation implements the declarative field rules applied to
// auth requests. Rules are grouped per request kind and evaluated
// exhaustively: every violation is collected before anything is returned.
package validation

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/avetrovs/userhub/internal/server/models"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6

	// The special characters a password must draw from.
	specialChars = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|~`"
)

// Violation is one failed field check.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries every violation found in a single validation pass.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Rule associates a field name with a predicate and the message reported
// when the predicate fails.
type Rule struct {
	Field   string
	Check   func() bool
	Message string
}

// Apply evaluates every rule and returns an *Error listing all failures,
// or nil when everything passes.
func Apply(rules []Rule) error {
	var violations []Violation
	for _, r := range rules {
		if !r.Check() {
			violations = append(violations, Violation{Field: r.Field, Message: r.Message})
		}
	}
	if len(violations) > 0 {
		return &Error{Violations: violations}
	}
	return nil
}

// RegisterInput is the raw registration payload before sanitization.
type RegisterInput struct {
	Username    string `json:"username"`
	FullName    string `json:"fullName"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
}

// LoginInput is the raw login payload.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ValidateRegister runs the full registration rule group against in.
// Fields are trimmed before checking so surrounding whitespace cannot
// defeat the length rules.
func ValidateRegister(in *RegisterInput) error {
	username := strings.TrimSpace(in.Username)
	fullName := strings.TrimSpace(in.FullName)
	country := strings.TrimSpace(in.Country)

	rules := []Rule{
		{"username", func() bool { return utf8.RuneCountInString(username) >= minUsernameLen },
			"username must be at least 3 characters"},
		{"fullName", func() bool { return fullName != "" },
			"full name must not be empty"},
		{"password", func() bool { return utf8.RuneCountInString(in.Password) >= minPasswordLen },
			"password must be at least 6 characters"},
		{"password", func() bool { return containsFunc(in.Password, unicode.IsDigit) },
			"password must contain at least one digit"},
		{"password", func() bool { return containsFunc(in.Password, unicode.IsUpper) },
			"password must contain at least one uppercase letter"},
		{"password", func() bool { return containsFunc(in.Password, unicode.IsLower) },
			"password must contain at least one lowercase letter"},
		{"password", func() bool { return strings.ContainsAny(in.Password, specialChars) },
			"password must contain at least one special character"},
		{"dateOfBirth", func() bool { return validDate(in.DateOfBirth) },
			"date of birth must be a valid YYYY-MM-DD date"},
		{"gender", func() bool { return models.Gender(in.Gender).Valid() },
			"gender must be one of Male, Female or Other"},
		{"country", func() bool { return country != "" },
			"country must not be empty"},
	}

	return Apply(rules)
}

// ValidateLogin checks that both credentials are present.
func ValidateLogin(in *LoginInput) error {
	rules := []Rule{
		{"username", func() bool { return strings.TrimSpace(in.Username) != "" },
			"username is required"},
		{"password", func() bool { return in.Password != "" },
			"password is required"},
	}

	return Apply(rules)
}

// Sanitize trims and HTML-escapes a free-text field before storage.
func Sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

func containsFunc(s string, f func(rune) bool) bool {
	for _, r := range s {
		if f(r) {
			return true
		}
	}
	return false
}

func validDate(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := models.ParseDate(s)
	return err == nil
}
