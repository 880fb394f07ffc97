package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// Bank words are lowercase letters, optionally with interior spaces
// ("ice cream"). Length is capped to keep the tile row renderable.
var wordRegex = regexp.MustCompile(`^[a-z]+( [a-z]+)*$`)

const maxWordLength = 24

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateWord checks that a word is usable in the bank.
func ValidateWord(word string) error {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return ValidationError{Field: "word", Message: "word is required"}
	}
	if len(word) > maxWordLength {
		return ValidationError{Field: "word", Message: fmt.Sprintf("word must be at most %d characters", maxWordLength)}
	}
	if !wordRegex.MatchString(word) {
		return ValidationError{Field: "word", Message: "word may only contain letters and single spaces"}
	}
	return nil
}

// ValidateImageRef checks a picture reference: empty is allowed (the
// game falls back to a keyword lookup), otherwise it must be an http(s)
// URL or a served static path.
func ValidateImageRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "/static/") {
		return nil
	}
	return ValidationError{Field: "image", Message: "image must be an http(s) URL or a /static/ path"}
}

// ValidatePasscode checks the parent passcode used for bank management.
func ValidatePasscode(passcode string) error {
	if passcode == "" {
		return ValidationError{Field: "passcode", Message: "passcode is required"}
	}
	if len(passcode) < 6 {
		return ValidationError{Field: "passcode", Message: "passcode must be at least 6 characters"}
	}
	return nil
}
