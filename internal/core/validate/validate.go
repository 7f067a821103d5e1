// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxUsernameLength bounds display names so the sidebar stays readable.
const MaxUsernameLength = 32

// Username validates a display name is non-empty after trimming whitespace
// and fits in the sidebar.
func Username(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > MaxUsernameLength {
		return fmt.Errorf("name must be at most %d characters", MaxUsernameLength)
	}
	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("name must be a single line")
	}
	return nil
}

// Author validates a stored message author is not blank. Display rules for
// names entered interactively live in Username.
func Author(author string) error {
	if strings.TrimSpace(author) == "" {
		return fmt.Errorf("author is required")
	}
	return nil
}

// MessageBody validates a message body is non-empty after trimming whitespace.
func MessageBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}
