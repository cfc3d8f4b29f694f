package middleware

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
)

// maxUtteranceLength bounds a single chat submission. Blank text is
// allowed through: the session treats it as a no-op, not an error.
const maxUtteranceLength = 4096

// ValidateUtterance validates one submitted utterance.
func ValidateUtterance(text string) error {
	if len(text) > maxUtteranceLength {
		return errors.New("text exceeds maximum length")
	}
	if !utf8.ValidString(text) {
		return errors.New("text must be valid UTF-8")
	}
	return nil
}

// ValidateSessionID validates a session ID.
func ValidateSessionID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid session ID format")
	}
	return nil
}
