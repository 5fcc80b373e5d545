// Package catalog manages the admin-edited tables: plans with their
// bundled apps, apps, additional services, referrals and site settings.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var ErrConfirmationRequired = errors.New("confirmation required")

// ValidationError names the first field that failed validation
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field}
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
