package cli

import (
	"fmt"
	"strings"
)

// NotFoundError indicates a discount was not found.
type NotFoundError struct {
	ID string // the ID that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("discount %s not found", e.ID)
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string // the field that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// PartialDeleteError indicates some discounts of a bulk delete were not
// deleted.
type PartialDeleteError struct {
	Failed []string // IDs that could not be deleted
	Total  int      // number of IDs attempted
}

func (e *PartialDeleteError) Error() string {
	return fmt.Sprintf("%d of %d discounts failed to delete: %s",
		len(e.Failed), e.Total, strings.Join(e.Failed, ", "))
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
