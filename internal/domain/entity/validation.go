package entity

import (
	"net/mail"
	"regexp"
	"unicode/utf8"
)

// Field limits for user and recipe data.
const (
	MaxEmailLength       = 254
	MaxNameLength        = 150
	MaxRecipeNameLength  = 256
	MaxTagNameLength     = 32
	MaxIngredientNameLen = 128
	MaxUnitLength        = 64

	// reservedUsername collides with the /users/me/ route.
	reservedUsername = "me"
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// ValidateEmail checks that the address is present, parseable and short enough.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	if len(email) > MaxEmailLength {
		return &ValidationError{Field: "email", Message: "is too long"}
	}
	addr, err := mail.ParseAddress(email)
	// 表示名付きの形式 ("Bob <bob@example.com>") は受け付けない
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "is invalid"}
	}
	return nil
}

// ValidateUsername enforces the username character set and reserves "me".
func ValidateUsername(username string) error {
	if username == "" {
		return &ValidationError{Field: "username", Message: "is required"}
	}
	if runeLen(username) > MaxNameLength {
		return &ValidationError{Field: "username", Message: "is too long"}
	}
	if !usernamePattern.MatchString(username) {
		return &ValidationError{Field: "username", Message: "contains invalid characters"}
	}
	if username == reservedUsername {
		return &ValidationError{Field: "username", Message: "cannot be \"me\""}
	}
	return nil
}

// ValidateHexColor accepts colors in #RRGGBB form.
func ValidateHexColor(color string) error {
	if !hexColorPattern.MatchString(color) {
		return &ValidationError{Field: "color", Message: "must be a #RRGGBB hex color"}
	}
	return nil
}

// ValidateSlug accepts letters, digits, '-' and '_'.
func ValidateSlug(slug string) error {
	if slug == "" || !slugPattern.MatchString(slug) {
		return &ValidationError{Field: "slug", Message: "is invalid"}
	}
	return nil
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
