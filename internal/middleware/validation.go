package middleware

import (
	"errors"
	"unicode/utf8"
)

// ValidateSessionID validates a client-supplied session identifier.
func ValidateSessionID(id string) error {
	if len(id) > 128 {
		return errors.New("session ID exceeds maximum length")
	}
	if !utf8.ValidString(id) {
		return errors.New("session ID must be valid UTF-8")
	}
	return nil
}

// ValidateMessage validates a chat message. Empty messages are allowed; the
// dialog re-prompts on them rather than rejecting the turn.
func ValidateMessage(message string) error {
	if len(message) > 4096 {
		return errors.New("message exceeds maximum length")
	}
	if !utf8.ValidString(message) {
		return errors.New("message must be valid UTF-8")
	}
	return nil
}

// ValidatePreferences validates a preference selection list.
func ValidatePreferences(prefs []string) error {
	if len(prefs) > 32 {
		return errors.New("too many preferences")
	}
	for _, p := range prefs {
		if len(p) > 64 {
			return errors.New("preference exceeds maximum length")
		}
		if !utf8.ValidString(p) {
			return errors.New("preferences must be valid UTF-8")
		}
	}
	return nil
}
