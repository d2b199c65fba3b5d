package errors

import (
	"strings"
	"unicode"
)

// MaxNameLength bounds leg and vertex names.
const MaxNameLength = 64

// ValidateName validates a leg or vertex name.
//
// Names appear as keys of connection maps and inside "a-b" wire strings, so
// the rules are conservative:
//   - No empty or blank names
//   - No control characters
//   - No '-' (the wire separator)
//   - Maximum length of MaxNameLength characters
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidName, "name %q too long (max %d characters)", name, MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name %q contains invalid control characters", name)
		}
	}

	if strings.Contains(name, "-") {
		return New(ErrCodeInvalidName, "name %q cannot contain '-'", name)
	}

	return nil
}

// ValidateSessionID validates a client-supplied session identifier.
// Session ids become file names and storage keys.
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "session id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "session id too long (max 128 characters)")
	}
	for _, r := range id {
		ok := r == '-' || r == '_' || r == '=' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return New(ErrCodeInvalidInput, "session id contains invalid character %q", r)
		}
	}
	return nil
}
